package paymongo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"refill/internal/adapters/out/paymongo"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMoney(t *testing.T, centavos int64) kernel.Money {
	t.Helper()
	amount, err := kernel.NewMoney(centavos)
	require.NoError(t, err)
	return amount
}

func TestCreateIntent_Success(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)

		username, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_secret", username)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"id": "pi_abc123",
				"attributes": {
					"next_action": {"redirect": {"url": "https://checkout.example/pi_abc123"}}
				}
			}
		}`))
	}))
	defer server.Close()

	client := paymongo.NewClient("sk_test_secret", paymongo.WithBaseURL(server.URL))

	intent, err := client.CreateIntent(context.Background(), kernel.NewUUID(), testMoney(t, 7500))

	require.NoError(t, err)
	assert.Equal(t, "pi_abc123", intent.ID)
	assert.Equal(t, "https://checkout.example/pi_abc123", intent.CheckoutURL)

	attributes := captured["data"].(map[string]any)["attributes"].(map[string]any)
	assert.InDelta(t, 7500, attributes["amount"], 0)
	assert.Equal(t, "PHP", attributes["currency"])
	assert.Equal(t, []any{"gcash"}, attributes["payment_method_allowed"])
}

func TestCreateIntent_UpstreamRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"errors":[{"detail":"card declined"}]}`))
	}))
	defer server.Close()

	client := paymongo.NewClient("sk_test_secret", paymongo.WithBaseURL(server.URL))

	_, err := client.CreateIntent(context.Background(), kernel.NewUUID(), testMoney(t, 7500))

	require.Error(t, err)
	var upstreamErr *ports.UpstreamPaymentError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, paymongo.ProviderName, upstreamErr.Provider)
	assert.Equal(t, http.StatusPaymentRequired, upstreamErr.StatusCode)
}

func TestCreateIntent_ResponseWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := paymongo.NewClient("sk_test_secret", paymongo.WithBaseURL(server.URL))

	_, err := client.CreateIntent(context.Background(), kernel.NewUUID(), testMoney(t, 7500))

	var upstreamErr *ports.UpstreamPaymentError
	require.ErrorAs(t, err, &upstreamErr)
}

func TestCreateIntent_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // refused connection

	client := paymongo.NewClient("sk_test_secret", paymongo.WithBaseURL(server.URL))

	_, err := client.CreateIntent(context.Background(), kernel.NewUUID(), testMoney(t, 7500))

	var upstreamErr *ports.UpstreamPaymentError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Zero(t, upstreamErr.StatusCode)
}
