package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the webhook signature for a raw body.
func Sign(body, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the signature header the provider sends with each
// webhook delivery against the shared secret.
func VerifySignature(body []byte, signature string, secret []byte) bool {
	if len(secret) == 0 || signature == "" {
		return false
	}
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
