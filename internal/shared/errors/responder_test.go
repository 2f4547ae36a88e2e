package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	errMissing := errors.New("missing")
	responder := NewChainedResponder("https://choufli.tn",
		func(err error) (ProblemDetail, bool) {
			return ErrValidation.WithDetail("Missing fields"), errors.Is(err, errMissing)
		},
		func(error) (ProblemDetail, bool) { return ErrConflict, true },
	)

	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errMissing) })
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "https://choufli.tn"+TypeValidation, problem.Type)
	require.Equal(t, "Missing fields", problem.Detail)
	require.Equal(t, "/orders", problem.Instance)

	rec, _ = serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("other")) })
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestResponder_UnknownErrorsHideTheirMessage(t *testing.T) {
	responder := NewChainedResponder("")

	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("disk full")) })
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, TypeInternal, problem.Type)
	require.NotContains(t, rec.Body.String(), "disk full")

	rec, problem = serve(t, func(c *gin.Context) {
		responder.RespondError(c, ErrTooManyRequests.WithDetail("slow down"))
	})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "slow down", problem.Detail)
}

func TestResponder_Helpers(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) { DefaultResponder.BadRequest(c, "Invalid order id") })
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, TypeBadRequest, problem.Type)
	require.Equal(t, "Bad Request: Invalid order id", problem.Error())

	rec, problem = serve(t, func(c *gin.Context) { DefaultResponder.InternalError(c, "Database error") })
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Database error", problem.Detail)
}
