// Package webhooksig verifica las firmas de los webhooks entrantes
// (esquema svix del proveedor de identidad y esquema de Stripe).
// La verificación ocurre antes de parsear cualquier payload: un cuerpo
// sin firma válida nunca llega a la capa de aplicación.
package webhooksig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Errores de verificación. Los handlers los mapean todos a HTTP 400.
var (
	ErrMissingHeaders   = errors.New("webhooksig: headers de firma ausentes")
	ErrInvalidSignature = errors.New("webhooksig: firma inválida")
	ErrTimestampExpired = errors.New("webhooksig: timestamp fuera de tolerancia")
	ErrBadSecret        = errors.New("webhooksig: secreto de firma malformado")
)

// DefaultTolerance ventana aceptada entre el timestamp firmado y el reloj local.
const DefaultTolerance = 5 * time.Minute

// SvixHeaders headers requeridos por el esquema svix.
type SvixHeaders struct {
	ID        string // svix-id
	Timestamp string // svix-timestamp (epoch segundos)
	Signature string // svix-signature ("v1,<base64> v1,<base64> ...")
}

// VerifySvix valida la firma svix del payload: HMAC-SHA256 sobre "id.timestamp.body"
// con la clave base64 contenida en el secreto "whsec_...", comparación en tiempo
// constante contra cada firma v1 del header.
func VerifySvix(secret string, h SvixHeaders, payload []byte, tolerance time.Duration) error {
	if h.ID == "" || h.Timestamp == "" || h.Signature == "" {
		return ErrMissingHeaders
	}
	key, err := svixKey(secret)
	if err != nil {
		return err
	}
	if err := checkTimestamp(h.Timestamp, tolerance); err != nil {
		return err
	}

	signed := fmt.Sprintf("%s.%s.%s", h.ID, h.Timestamp, payload)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(signed))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// El header puede traer varias firmas (rotación de secretos): basta una válida.
	for _, part := range strings.Fields(h.Signature) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func svixKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrBadSecret
	}
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrBadSecret
	}
	return key, nil
}

func checkTimestamp(ts string, tolerance time.Duration) error {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	epoch, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrTimestampExpired
	}
	diff := time.Since(time.Unix(epoch, 0))
	if diff > tolerance || diff < -tolerance {
		return ErrTimestampExpired
	}
	return nil
}
