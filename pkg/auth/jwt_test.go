package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newHMACService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "sentinel-test",
		Expiration: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newHMACService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "treasury", []string{RoleOperator, RoleAnalyst})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("unexpected user ID: %s", claims.UserID)
	}
	if claims.Agency != "treasury" {
		t.Errorf("unexpected agency: %s", claims.Agency)
	}
	if !claims.HasRole(RoleOperator) {
		t.Error("expected operator role")
	}
	if claims.HasRole(RoleAdmin) {
		t.Error("did not expect admin role")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newHMACService(t)
	token, err := svc.GenerateToken(uuid.New(), "treasury", []string{RoleViewer})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other, err := NewJWTService(JWTConfig{
		Secret:     "different-secret",
		Issuer:     "sentinel-test",
		Expiration: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "sentinel-test",
		Expiration: -time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	token, err := svc.GenerateToken(uuid.New(), "treasury", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	token, err := issuer.GenerateToken(uuid.New(), "treasury", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	svc := newHMACService(t)
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected validation to fail for wrong issuer")
	}
}

func TestNewJWTServiceRequiresKeyMaterial(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{Issuer: "x"}); err == nil {
		t.Error("expected error when no key material is configured")
	}
}
