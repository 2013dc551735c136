package entity

import "time"

// Estados de una Appointment.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment una cita agendada por el chatbot para un cliente final del negocio.
// El cliente final no tiene cuenta: se identifica por los datos de contacto y
// puede cancelar una única vez mediante CancelToken (enlace en la confirmación).
type Appointment struct {
	ID            string
	BusinessID    string
	ServiceID     string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	StartsAt      time.Time
	EndsAt        time.Time
	Status        string
	// CancelToken token opaco de un solo uso para el enlace de cancelación.
	CancelToken string
	CancelledAt *time.Time // nil mientras Status != cancelled
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
