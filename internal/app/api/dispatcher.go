package api

import (
	"fmt"
	"log/slog"
	"net/http"

	posclient "github.com/Apurer/go-gin-order-bridge/internal/clients/http/pos"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/kafkabus"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/logging"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/posapi"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
)

// BuildDispatcher picks the POS hand-over: the POS HTTP API when
// POS_BASE_URL is set, otherwise a Kafka topic when KAFKA_BROKERS is set,
// otherwise a dispatcher that only logs. The returned func releases it.
func BuildDispatcher(cfg Config, logger *slog.Logger) (relayports.Dispatcher, func(), error) {
	switch {
	case cfg.POSBaseURL != "":
		c, err := posclient.NewClient(cfg.POSBaseURL, &http.Client{Timeout: cfg.POSTimeout})
		if err != nil {
			return nil, nil, fmt.Errorf("POS_BASE_URL: %w", err)
		}
		logger.Info("POS dispatcher configured", slog.String("base_url", cfg.POSBaseURL))
		return posapi.NewDispatcher(c), func() {}, nil
	case cfg.KafkaBrokers != "":
		d, err := kafkabus.NewDispatcher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, fmt.Errorf("KAFKA_BROKERS: %w", err)
		}
		logger.Info("Kafka dispatcher configured", slog.String("topic", cfg.KafkaTopic))
		return d, func() {
			if err := d.Close(); err != nil {
				logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
			}
		}, nil
	default:
		logger.Warn("no POS endpoint configured, orders are logged only")
		return logging.NewDispatcher(logger), func() {}, nil
	}
}
