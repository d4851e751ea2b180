package paymongo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidSignature is returned when a webhook signature header is missing,
// malformed, or does not match the request body.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// WebhookVerifier checks the timestamped HMAC signature PayMongo attaches to
// webhook deliveries. An empty secret disables verification, which is only
// acceptable in local development.
type WebhookVerifier struct {
	secret string
}

// NewWebhookVerifier creates a verifier for the given webhook secret.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// Verify validates the signature header against the raw request body.
// The header format is "t=<unix>,v1=<hex hmac>": the HMAC-SHA256 key is the
// webhook secret and the message is "<timestamp>.<raw body>". Comparison is
// constant time.
func (v *WebhookVerifier) Verify(header string, body []byte) error {
	if v.secret == "" {
		return nil
	}

	timestamp, signature, ok := parseSignatureHeader(header)
	if !ok {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// parseSignatureHeader extracts the t= and v1= parts of the signature header.
func parseSignatureHeader(header string) (timestamp, signature string, ok bool) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}

		switch key {
		case "t":
			timestamp = value
		case "v1":
			signature = value
		}
	}

	return timestamp, signature, timestamp != "" && signature != ""
}
