package dto

import "time"

// CreateBusinessRequest entrada del onboarding: el cliente crea su negocio.
// Subdomain es opcional: si viene vacío se deriva del nombre.
type CreateBusinessRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Subdomain   string `json:"subdomain" validate:"omitempty,max=63"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Timezone    string `json:"timezone" validate:"omitempty,max=64"`
}

// UpdateBusinessRequest configuración editable desde el dashboard.
type UpdateBusinessRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Timezone    string `json:"timezone" validate:"omitempty,max=64"`
	OpensAt     string `json:"opens_at" validate:"omitempty"`
	ClosesAt    string `json:"closes_at" validate:"omitempty"`
	SlotMinutes int    `json:"slot_minutes" validate:"omitempty,min=5,max=240"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subdomain   string    `json:"subdomain"`
	Description string    `json:"description,omitempty"`
	Timezone    string    `json:"timezone"`
	OpensAt     string    `json:"opens_at"`
	ClosesAt    string    `json:"closes_at"`
	SlotMinutes int       `json:"slot_minutes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceRequest alta/edición de un servicio agendable.
type ServiceRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=120"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           string `json:"price" validate:"required"`
	Active          *bool  `json:"active"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID              string `json:"id"`
	BusinessID      string `json:"business_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
	Active          bool   `json:"active"`
}
