package githubhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GitHub header keys and values that drive webhook validation.
const (
	signatureHeader = "X-Hub-Signature-256"
	eventHeader     = "X-GitHub-Event"
	deliveryHeader  = "X-GitHub-Delivery"
	pushEvent       = "push"
	signaturePrefix = "sha256="
)

// verifySignature compares a payload MAC against the expected secret-derived
// value. A missing prefix or malformed signature is invalid, never a crash.
func verifySignature(secret, signature string, payload []byte) bool {
	normalized := strings.ToLower(strings.TrimSpace(signature))
	if !strings.HasPrefix(normalized, signaturePrefix) {
		return false
	}

	expected := computeSignature(secret, payload)
	return hmac.Equal([]byte(expected), []byte(normalized))
}

// computeSignature renders the GitHub sha256= prefixed HMAC in hex form.
func computeSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)

	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
