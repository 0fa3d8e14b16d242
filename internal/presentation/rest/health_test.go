package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
	"github.com/Valentinus295/econsentinel/internal/presentation/rest"
)

type stubRegions struct {
	err error
}

func (s *stubRegions) LoadAll(context.Context) ([]model.Region, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.Region{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLiveness(t *testing.T) {
	h := rest.NewHealthHandler(nil, &stubRegions{}, testLogger())

	rec := httptest.NewRecorder()
	h.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "econsentinel", body["service"])
}

func TestReadiness_DatasetOK(t *testing.T) {
	h := rest.NewHealthHandler(nil, &stubRegions{}, testLogger())

	rec := httptest.NewRecorder()
	h.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadiness_DatasetUnavailable(t *testing.T) {
	h := rest.NewHealthHandler(nil, &stubRegions{
		err: fmt.Errorf("%w: parse failure", port.ErrDataUnavailable),
	}, testLogger())

	rec := httptest.NewRecorder()
	h.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DOWN", body["status"])
}
