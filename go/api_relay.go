package bridgeserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	relayhttpmapper "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/http/mapper"
	relayapp "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	storefront "github.com/Apurer/go-gin-order-bridge/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-order-bridge/internal/platform/metrics"
)

// maxBodyBytes bounds webhook and transcode request bodies.
const maxBodyBytes = 1 << 20

// RelayAPI wires HTTP transport with the relay bounded context service.
type RelayAPI struct {
	service relayports.Service
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewRelayAPI creates a RelayAPI backed by the provided service. registry and
// logger may be nil.
func NewRelayAPI(service relayports.Service, registry *metrics.Registry, logger *slog.Logger) RelayAPI {
	return RelayAPI{service: service, metrics: registry, logger: logger}
}

// Post /api/hook
// Receives an order webhook from the storefront. Once the envelope is readable
// the storefront always gets 200 so it does not redeliver; processing failures
// are logged and counted instead.
func (api *RelayAPI) ReceiveOrderHook(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		api.metrics.RecordOutcome(metrics.OutcomeBadEnvelope)
		return
	}
	hook, err := storefront.ParseWebhook(body)
	if err != nil {
		api.metrics.RecordOutcome(metrics.OutcomeBadEnvelope)
		respondEnvelopeError(c, err)
		return
	}

	started := time.Now()
	saved, err := api.service.HandleWebhook(c.Request.Context(), relayhttpmapper.ToWebhookInput(hook))
	api.metrics.ObserveWebhook(time.Since(started).Seconds())
	api.metrics.RecordOutcome(webhookOutcome(err))
	if saved != nil {
		api.metrics.ObserveArtifact(len(saved.Entity.Body))
	}
	if err != nil && api.logger != nil {
		api.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "order webhook acknowledged without artifact",
			slog.String("event_type", hook.Data.EventType),
			slog.String("error", err.Error()))
	}
	c.JSON(http.StatusOK, relayhttpmapper.OK)
}

// Post /api/transcode
// Transforms an order event and returns the POS order without storing it.
func (api *RelayAPI) TranscodeOrder(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	result, err := api.service.Preview(c.Request.Context(), body)
	if err != nil {
		respondRelayServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, relayhttpmapper.FromTranscodeResult(result))
}

// Get /api/artifacts/:orderId
// Returns the stored artifact of a POS order.
func (api *RelayAPI) GetArtifact(c *gin.Context) {
	var orderID int64
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &orderID, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	artifact, err := api.service.GetArtifact(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, relayports.ErrNotFound) {
			respondNotFound(c, "artifact", orderID)
			return
		}
		respondRelayServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, relayhttpmapper.FromArtifact(artifact))
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		respondError(c, http.StatusBadRequest, err)
		return nil, false
	}
	return body, true
}

func webhookOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeStored
	case errors.Is(err, relayapp.ErrInvalidInput):
		return metrics.OutcomeInvalid
	case errors.Is(err, relayapp.ErrMissingDerivedValue):
		return metrics.OutcomeMissingValue
	case errors.Is(err, relayapp.ErrArtifactWrite):
		return metrics.OutcomeWriteFailed
	case errors.Is(err, relayapp.ErrDelivery):
		return metrics.OutcomeDeliveryFailed
	default:
		return metrics.OutcomeError
	}
}
