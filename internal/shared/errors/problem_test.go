package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetail_CopiesOnWrite(t *testing.T) {
	base := ErrUnprocessable
	p := base.WithDetail("bad").WithExtension("field", "price")

	assert.Empty(t, base.Detail)
	assert.Nil(t, base.Extensions)
	assert.Equal(t, "Unprocessable Entity: bad", p.Error())
	assert.Equal(t, "price", p.Extensions["field"])
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sentinel := errors.New("sentinel")
	responder := NewChainedResponder("https://bridge.example",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, sentinel) {
				return NewUnprocessableProblem(map[string]string{"price": "missing"}), true
			}
			return ProblemDetail{}, false
		},
	)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/transcode", nil)
	responder.RespondError(c, fmt.Errorf("wrapped: %w", sentinel))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://bridge.example"+TypeUnprocessable, body.Type)
	assert.Equal(t, "/api/transcode", body.Instance)
	assert.Equal(t, map[string]any{"price": "missing"}, body.Extensions["fields"])
}

func TestChainedResponder_FallsBackToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	NewChainedResponder("").RespondError(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
