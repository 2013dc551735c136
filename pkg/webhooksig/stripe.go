package webhooksig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// VerifyStripe valida el header Stripe-Signature ("t=<epoch>,v1=<hex>[,v1=<hex>...]"):
// HMAC-SHA256 en hex sobre "t.body" con el secreto del endpoint, comparación en
// tiempo constante contra cada firma v1.
func VerifyStripe(secret, header string, payload []byte, tolerance time.Duration) error {
	if secret == "" {
		return ErrBadSecret
	}
	if header == "" {
		return ErrMissingHeaders
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return ErrInvalidSignature
	}
	if err := checkTimestamp(timestamp, tolerance); err != nil {
		return err
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s.%s", timestamp, payload)))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}
