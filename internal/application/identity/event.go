// Package identity convierte los eventos de ciclo de vida del proveedor de
// identidad (user.created / user.updated) en upserts idempotentes del perfil.
package identity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tipos de evento que procesa el reconciliador. Cualquier otro tipo se
// confirma con 200 sin efectos.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
)

// UserPayload datos del usuario extraídos del evento.
type UserPayload struct {
	ExternalID   string
	Email        string
	Name         string
	RoleHint     string // metadata de signup; se ignora si no es un rol conocido
	ReferralCode string // código de referido introducido en el signup
	Country      string // metadata best-effort
}

// Event evento ya parseado.
type Event struct {
	Type string
	User UserPayload
}

// wireEvent forma del payload en el cable (esquema del proveedor).
type wireEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		PrimaryEmailAddressID string `json:"primary_email_address_id"`
		PublicMetadata        struct {
			Role string `json:"role"`
		} `json:"public_metadata"`
		UnsafeMetadata struct {
			ReferralCode string `json:"referralCode"`
			Country      string `json:"country"`
		} `json:"unsafe_metadata"`
	} `json:"data"`
}

// ParseEvent decodifica un payload ya verificado (la firma se validó antes).
func ParseEvent(payload []byte) (*Event, error) {
	var w wireEvent
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, fmt.Errorf("identity: payload malformado: %w", err)
	}
	if w.Type == "" || w.Data.ID == "" {
		return nil, fmt.Errorf("identity: evento sin tipo o sin id de usuario")
	}

	email := ""
	for _, e := range w.Data.EmailAddresses {
		if e.ID == w.Data.PrimaryEmailAddressID {
			email = e.EmailAddress
			break
		}
	}
	if email == "" && len(w.Data.EmailAddresses) > 0 {
		email = w.Data.EmailAddresses[0].EmailAddress
	}

	name := strings.TrimSpace(strings.TrimSpace(w.Data.FirstName) + " " + strings.TrimSpace(w.Data.LastName))

	return &Event{
		Type: w.Type,
		User: UserPayload{
			ExternalID:   w.Data.ID,
			Email:        email,
			Name:         name,
			RoleHint:     w.Data.PublicMetadata.Role,
			ReferralCode: strings.TrimSpace(w.Data.UnsafeMetadata.ReferralCode),
			Country:      strings.ToUpper(strings.TrimSpace(w.Data.UnsafeMetadata.Country)),
		},
	}, nil
}
