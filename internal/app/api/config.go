package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/kafkabus"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	ArtifactDir       string
	TemplatePath      string
	POSBaseURL        string
	POSTimeout        time.Duration
	KafkaBrokers      string
	KafkaTopic        string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	TLSCertFile       string
	TLSKeyFile        string
}

// LoadConfig reads an optional .env file and the environment, applies
// defaults, and validates basic constraints. Variables already set in the
// environment win over .env entries.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8432"),
		ArtifactDir:       envDefault("ARTIFACT_DIR", "artifacts"),
		TemplatePath:      strings.TrimSpace(os.Getenv("POS_TEMPLATE_PATH")),
		POSBaseURL:        strings.TrimSpace(os.Getenv("POS_BASE_URL")),
		POSTimeout:        5 * time.Second,
		KafkaBrokers:      strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        envDefault("KAFKA_TOPIC", kafkabus.DefaultTopic),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		TLSCertFile:       strings.TrimSpace(os.Getenv("TLS_CERT_FILE")),
		TLSKeyFile:        strings.TrimSpace(os.Getenv("TLS_KEY_FILE")),
	}
	if raw := strings.TrimSpace(os.Getenv("POS_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("POS_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.POSTimeout = time.Duration(seconds) * time.Second
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return Config{}, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return cfg, nil
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
