package entity

import "time"

// Estados de un Business.
const (
	BusinessActive    = "active"
	BusinessSuspended = "suspended"
)

// Business representa el tenant: la configuración de un negocio que atiende
// citas vía el chatbot en su propio subdominio. Pertenece a exactamente un
// usuario con rol client; su existencia es lo que saca al dueño de onboarding.
type Business struct {
	ID          string
	OwnerID     string // User con rol client
	Name        string
	Subdomain   string // slug único, etiqueta DNS
	Description string
	Timezone    string // IANA, ej. "America/Bogota"
	// Ventana de atención y granularidad de agenda.
	OpensAt      string // "09:00"
	ClosesAt     string // "18:00"
	SlotMinutes  int
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
