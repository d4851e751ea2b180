package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"refill/internal/adapters/out/paymongo"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

func signWebhookBody(body string) string {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%s.%s", ts, body)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(t *testing.T, body, signature string) *httptest.ResponseRecorder {
	t.Helper()

	server := NewServer(Handlers{}, paymongo.NewWebhookVerifier(webhookSecret), testSecret)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, server.HandlePaymentWebhook(e.NewContext(req, rec)))
	return rec
}

func TestHandlePaymentWebhook_MissingSignature(t *testing.T) {
	rec := postWebhook(t, `{"data":{"id":"evt_1"}}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlePaymentWebhook_TamperedBody(t *testing.T) {
	signature := signWebhookBody(`{"data":{"id":"evt_1"}}`)

	rec := postWebhook(t, `{"data":{"id":"evt_FORGED"}}`, signature)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlePaymentWebhook_MalformedPayload(t *testing.T) {
	body := `{"data":`
	rec := postWebhook(t, body, signWebhookBody(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePaymentWebhook_MissingIntentID(t *testing.T) {
	body := `{"data":{"id":"evt_1","attributes":{"type":"payment.paid","data":{"id":"pay_1","attributes":{}}}}}`
	rec := postWebhook(t, body, signWebhookBody(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePaymentWebhook_MissingEventID(t *testing.T) {
	body := `{"data":{"attributes":{"type":"payment.paid","data":{"attributes":{"payment_intent_id":"pi_1"}}}}}`
	rec := postWebhook(t, body, signWebhookBody(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
