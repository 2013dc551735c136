package dto

import "time"

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID            string     `json:"id"`
	BusinessID    string     `json:"business_id"`
	ServiceID     string     `json:"service_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        time.Time  `json:"ends_at"`
	Status        string     `json:"status"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// Estados terminales de la página de cancelación por token. Tokens desconocidos
// y citas ya canceladas son estados, no errores.
const (
	CancelStateOK        = "cancelled"
	CancelStateAlready   = "already_cancelled"
	CancelStateNotFound  = "unknown_token"
	CancelStateCancelable = "cancelable"
)

// CancelResponse salida de la consulta/acción de cancelación por token.
type CancelResponse struct {
	State       string               `json:"state"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
	Business    *BusinessResponse    `json:"business,omitempty"`
}
