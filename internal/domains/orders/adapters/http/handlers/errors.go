package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/application"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	apierrors "github.com/Apurer/choufli-storefront/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", mapOrderError)

// mapOrderError turns order intake failures into problem documents. Anything
// unrecognised is reported as a storage failure without leaking the cause.
func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, mapper.ErrInvalidJSON):
		return apierrors.ErrBadRequest.WithDetail("Invalid JSON"), true
	case errors.Is(err, domain.ErrMissingFields), errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail("Missing fields"), true
	case errors.Is(err, application.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used for a different order"), true
	default:
		return apierrors.ErrInternal.WithDetail("Database error"), true
	}
}

func respondOrderError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}
