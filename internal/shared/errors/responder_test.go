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

	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

var errGone = errors.New("gone")

func serve(t *testing.T, responder *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", func(c *gin.Context) { responder.RespondError(c, err) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_ValidationFields(t *testing.T) {
	responder := NewChainedResponder("", MapValidation, MapSentinel(ErrNotFound, errGone))
	err := fmt.Errorf("wrapped: %w", validation.Field("price", "must be greater than 0"))

	rec, problem := serve(t, responder, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeValidation, problem.Type)
	assert.Equal(t, "/things/42", problem.Instance)
	fields, ok := problem.Extensions["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be greater than 0", fields["price"])
}

func TestChainedResponder_SentinelAndFallback(t *testing.T) {
	responder := NewChainedResponder("https://storefront.example", MapSentinel(ErrNotFound, errGone))

	rec, problem := serve(t, responder, fmt.Errorf("product p9: %w", errGone))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "https://storefront.example"+TypeNotFound, problem.Type)
	assert.Equal(t, "product p9: gone", problem.Detail)

	rec, problem = serve(t, responder, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "disk on fire", problem.Detail)

	rec, _ = serve(t, responder, ErrConflict.WithDetail("taken"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWithExtension_DoesNotShareMaps(t *testing.T) {
	base := ErrNotFound.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(derived))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(errGone))
}
