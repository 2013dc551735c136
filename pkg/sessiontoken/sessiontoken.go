package sessiontoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims del JWT de sesión emitido por el proveedor de identidad.
// Subject lleva el id externo del usuario (ej. "user_2abc..."); Email es informativo.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Identity resultado de validar un token de sesión.
type Identity struct {
	ExternalID string
	Email      string
	SessionID  string
}

// Parse valida el token de sesión (HS256) y devuelve la identidad que transporta.
// Retorna error si el token es inválido, expirado o con firma incorrecta.
// Si issuer no es vacío, se exige que coincida.
func Parse(secret, issuer, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("sessiontoken: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token sin subject")
	}
	return &Identity{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		SessionID:  claims.ID,
	}, nil
}

// Generate emite un token de sesión firmado. Se usa en desarrollo y en tests;
// en producción el token lo emite el proveedor de identidad.
func Generate(secret, issuer, externalID, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("sessiontoken: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   externalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
