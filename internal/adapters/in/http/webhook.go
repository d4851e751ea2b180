package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"refill/internal/adapters/out/paymongo"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	signatureHeader = "Paymongo-Signature"
	maxWebhookBody  = 1 << 20
)

// webhookEnvelope is the PayMongo event wrapper. The event id and type sit on
// the outer resource; the payment intent id is nested inside the embedded
// payment resource.
type webhookEnvelope struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Type string `json:"type"`
			Data struct {
				ID         string `json:"id"`
				Attributes struct {
					PaymentIntentID string `json:"payment_intent_id"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

// HandlePaymentWebhook handles POST /webhooks/payments. The signature is
// verified over the raw body before any parsing. Replayed events and events
// for unknown intents both get a 2xx so the gateway stops retrying.
func (s *Server) HandlePaymentWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		recordWebhookEvent("unknown", "read_error")
		return c.JSON(http.StatusBadRequest, errorBody("cannot read request body"))
	}

	if err = s.webhookVerifier.Verify(c.Request().Header.Get(signatureHeader), body); err != nil {
		recordWebhookEvent("unknown", "invalid_signature")
		slog.Warn("webhook rejected", "error", err)
		return c.JSON(http.StatusUnauthorized, errorBody("invalid signature"))
	}

	var envelope webhookEnvelope
	if err = json.Unmarshal(body, &envelope); err != nil {
		recordWebhookEvent("unknown", "malformed")
		return c.JSON(http.StatusBadRequest, errorBody("malformed event payload"))
	}

	eventType := envelope.Data.Attributes.Type
	cmd, err := commands.NewApplyPaymentEventCommand(
		paymongo.ProviderName,
		envelope.Data.ID,
		eventType,
		envelope.Data.Attributes.Data.Attributes.PaymentIntentID,
	)
	if err != nil {
		recordWebhookEvent(eventType, "malformed")
		return jsonError(c, err)
	}

	if err = s.applyPaymentEventHandler.Handle(c.Request().Context(), cmd); err != nil {
		// An intent we never issued is not retryable; acknowledge it.
		if errors.Is(err, errs.ErrObjectNotFound) {
			recordWebhookEvent(eventType, "unknown_intent")
			slog.Warn("webhook for unknown intent acknowledged",
				"eventId", envelope.Data.ID, "eventType", eventType)
			return c.NoContent(http.StatusOK)
		}
		recordWebhookEvent(eventType, "error")
		return jsonError(c, err)
	}

	recordWebhookEvent(eventType, "processed")
	return c.NoContent(http.StatusOK)
}
