package http

import (
	"errors"
	"net/http"
	"testing"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/rider"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden},
		{"invalid transition", order.ErrInvalidTransition, http.StatusConflict},
		{"same status", order.ErrSameStatus, http.StatusConflict},
		{"payment already confirmed", order.ErrPaymentAlreadyConfirmed, http.StatusConflict},
		{"no available rider", rider.ErrNoAvailableRider, http.StatusConflict},
		{"invalid value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"required value", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 10), http.StatusBadRequest},
		{"upstream payment failure", &ports.UpstreamPaymentError{Provider: "paymongo", StatusCode: 500}, http.StatusBadGateway},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
