// Package paymongo implements the outbound payment gateway contract against
// the PayMongo HTTP API: creating payment intents for gateway-settled orders
// and verifying the signature on inbound webhook callbacks.
package paymongo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"
)

const (
	// ProviderName identifies PayMongo in payment and event records.
	ProviderName = "paymongo"

	defaultBaseURL = "https://api.paymongo.com/v1"
	defaultTimeout = 10 * time.Second

	currencyPHP = "PHP"
)

// Client is an HTTP client for the PayMongo API implementing
// ports.PaymentGateway. Amounts are sent in centavos, the API's minor unit.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a PayMongo client authenticated with the given secret key.
func NewClient(secretKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		secretKey:  secretKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// intentRequest is the create-intent payload in PayMongo's enveloped format.
type intentRequest struct {
	Data struct {
		Attributes struct {
			Amount               int64    `json:"amount"`
			Currency             string   `json:"currency"`
			PaymentMethodAllowed []string `json:"payment_method_allowed"`
			Description          string   `json:"description"`
		} `json:"attributes"`
	} `json:"data"`
}

// intentResponse is the subset of the create-intent response the pipeline
// needs: the intent id that webhooks will reference and the redirect URL the
// customer checks out at.
type intentResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			NextAction struct {
				Redirect struct {
					URL string `json:"url"`
				} `json:"redirect"`
			} `json:"next_action"`
		} `json:"attributes"`
	} `json:"data"`
}

// CreateIntent registers a GCash settlement intent for the order's total.
// Non-2xx responses and transport faults come back as
// *ports.UpstreamPaymentError so callers can abort order creation cleanly.
func (c *Client) CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (*ports.PaymentIntent, error) {
	var payload intentRequest
	payload.Data.Attributes.Amount = amount.Centavos()
	payload.Data.Attributes.Currency = currencyPHP
	payload.Data.Attributes.PaymentMethodAllowed = []string{"gcash"}
	payload.Data.Attributes.Description = fmt.Sprintf("order %s", orderID)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/payment_intents", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ports.UpstreamPaymentError{
			Provider: ProviderName,
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ports.UpstreamPaymentError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("create intent: %s", bytes.TrimSpace(detail)),
		}
	}

	var decoded intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ports.UpstreamPaymentError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("decode intent response: %w", err),
		}
	}

	if decoded.Data.ID == "" {
		return nil, &ports.UpstreamPaymentError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("intent response without id"),
		}
	}

	return &ports.PaymentIntent{
		ID:          decoded.Data.ID,
		CheckoutURL: decoded.Data.Attributes.NextAction.Redirect.URL,
	}, nil
}
