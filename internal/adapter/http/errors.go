package http

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/domain"
)

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrContractNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return huma.Error409Conflict(err.Error())
	}

	var dupErr *domain.DuplicatePeriodError
	if errors.As(err, &dupErr) {
		return huma.Error409Conflict(dupErr.Error())
	}

	var revErr *domain.AlreadyReviewedError
	if errors.As(err, &revErr) {
		return huma.Error409Conflict(revErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error422UnprocessableEntity(valErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
