package http

import (
	"errors"
	"net/http"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/rider"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorBody(message string) Error {
	return Error{Message: message}
}

// statusForError maps domain and application errors onto HTTP status codes.
// Conflicts (state machine violations, capacity races, double settlements)
// are 409 so clients can distinguish them from bad input.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrSameStatus),
		errors.Is(err, order.ErrPaymentAlreadyConfirmed),
		errors.Is(err, rider.ErrNoAvailableRider):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		var upstreamErr *ports.UpstreamPaymentError
		if errors.As(err, &upstreamErr) {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}

// jsonError writes the mapped status and error body for err.
func jsonError(c echo.Context, err error) error {
	status := statusForError(err)
	return c.JSON(status, Error{Code: status, Message: err.Error()})
}
