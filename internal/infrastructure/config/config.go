package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort int
	GRPCPort int

	Dataset  DatasetConfig
	Policy   PolicyConfig
	Provider ProviderConfig
	DB       DBConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	TLS      TLSConfig

	LogLevel  string
	LogFormat string
}

// DatasetConfig locates the region snapshot CSV.
type DatasetConfig struct {
	// Path to the region CSV file.
	Path string
	// BaseRiskColumn is the header of the base risk column. Snapshots from
	// older exports used "Risk_Score"; current exports use "Base_Risk".
	BaseRiskColumn string
}

// PolicyConfig overrides the risk policy constants. Values mirror
// valueobject.DefaultRiskPolicy; operators normally leave them alone.
type PolicyConfig struct {
	FuelTier1      int
	FuelBonus1     float64
	FuelTier2      int
	FuelBonus2     float64
	TaxThreshold   int
	TaxMultiplier  float64
	SubsidyRelief  float64
	MapSizeDivisor float64
}

// ProviderConfig configures the external market lookups.
type ProviderConfig struct {
	// Mode selects the provider set: "static" (dev/CI) or "http".
	Mode string
	// ForexURL is the KES/USD rate endpoint.
	ForexURL string
	// FuelURL is the EPRA pump price endpoint.
	FuelURL string
	// Timeout bounds each upstream call.
	Timeout time.Duration
	// CacheTTL bounds how long a fetched quote is reused.
	CacheTTL time.Duration
}

// DBConfig holds database connection parameters. An empty password means
// run without the archive: simulations still work, runs are not persisted.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds Kafka broker configuration. Empty brokers disable
// event publication.
type KafkaConfig struct {
	Brokers []string
}

// AuthConfig holds JWT validation configuration.
type AuthConfig struct {
	// PublicKeyFile is a PEM-encoded RSA public key path (validator mode).
	PublicKeyFile string
	// Secret enables HMAC-SHA256 mode when no key file is configured.
	Secret string
	Issuer string
}

// TLSConfig holds the gRPC server certificate. Empty paths mean plaintext.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		Dataset: DatasetConfig{
			Path:           getEnv("DATASET_PATH", "data/regions.csv"),
			BaseRiskColumn: getEnv("DATASET_BASE_RISK_COLUMN", "Base_Risk"),
		},
		Policy: PolicyConfig{
			FuelTier1:      getEnvInt("POLICY_FUEL_TIER1", 10),
			FuelBonus1:     getEnvFloat("POLICY_FUEL_BONUS1", 15),
			FuelTier2:      getEnvInt("POLICY_FUEL_TIER2", 25),
			FuelBonus2:     getEnvFloat("POLICY_FUEL_BONUS2", 20),
			TaxThreshold:   getEnvInt("POLICY_TAX_THRESHOLD", 2),
			TaxMultiplier:  getEnvFloat("POLICY_TAX_MULTIPLIER", 1.5),
			SubsidyRelief:  getEnvFloat("POLICY_SUBSIDY_RELIEF", 25),
			MapSizeDivisor: getEnvFloat("POLICY_MAP_SIZE_DIVISOR", 1000),
		},
		Provider: ProviderConfig{
			Mode:     getEnv("PROVIDER_MODE", "static"),
			ForexURL: getEnv("PROVIDER_FOREX_URL", "https://api.exchangerate-api.com/v4/latest/USD"),
			FuelURL:  getEnv("PROVIDER_FUEL_URL", ""),
			Timeout:  time.Duration(getEnvInt("PROVIDER_TIMEOUT_MS", 3000)) * time.Millisecond,
			CacheTTL: time.Duration(getEnvInt("PROVIDER_CACHE_TTL_S", 300)) * time.Second,
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "sentinel"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "sentinel"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
		},
		Auth: AuthConfig{
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Secret:        getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", "econsentinel"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks configuration values that have no sane fallback.
func (c Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if c.Provider.Mode != "static" && c.Provider.Mode != "http" {
		return fmt.Errorf("PROVIDER_MODE must be \"static\" or \"http\", got %q", c.Provider.Mode)
	}
	return nil
}

// ArchiveEnabled reports whether simulation runs should be persisted.
func (c Config) ArchiveEnabled() bool {
	return c.DB.Password != ""
}

// EventsEnabled reports whether domain events should be published.
func (c Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// AuthEnabled reports whether the gRPC API requires tokens.
func (c Config) AuthEnabled() bool {
	return c.Auth.PublicKeyFile != "" || c.Auth.Secret != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func splitNonEmpty(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
