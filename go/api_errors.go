package bridgeserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	relayapp "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	apierrors "github.com/Apurer/go-gin-order-bridge/internal/shared/errors"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/schema"
)

var relayResponder = apierrors.NewChainedResponder("", schemaProblem, relayProblem)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError answers transport-level failures with RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusRequestEntityTooLarge:
		problem = apierrors.ErrPayloadTooLarge.WithDetail(err.Error())
	case http.StatusUnprocessableEntity:
		problem = apierrors.ErrUnprocessable.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func respondNotFound(c *gin.Context, resourceType string, identifier any) {
	relayResponder.NotFound(c, resourceType, identifier)
}

func respondRelayServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	relayResponder.RespondError(c, err)
}

// respondEnvelopeError answers a webhook whose outer envelope is unusable.
func respondEnvelopeError(c *gin.Context, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		respondProblem(c, apierrors.NewUnprocessableProblem(verr.Fields()).
			WithDetail("webhook envelope does not match {data:{eventType,instanceId,data}}"))
		return
	}
	respondError(c, http.StatusUnprocessableEntity, err)
}

func schemaProblem(err error) (apierrors.ProblemDetail, bool) {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewValidationProblem(verr.Fields()).
		WithDetail(fmt.Sprintf("%s has %d invalid field(s)", verr.Model, len(verr.Faults))), true
}

func relayProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, relayports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, relayapp.ErrMissingDerivedValue):
		problem := apierrors.ErrUnprocessable.WithDetail(err.Error())
		var missing *relayapp.MissingValueError
		if errors.As(err, &missing) {
			problem = problem.WithExtension("field", missing.Field)
		}
		return problem, true
	case errors.Is(err, relayapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
