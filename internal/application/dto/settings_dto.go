package dto

import "time"

// UpdateSettingsRequest edición de la configuración global (solo admin).
// Los rangos se validan en el caso de uso; fuera de rango = sin mutación parcial.
type UpdateSettingsRequest struct {
	TrialDays          int    `json:"trial_days" validate:"min=1,max=90"`
	DefaultSlotMinutes int    `json:"default_slot_minutes" validate:"min=5,max=240"`
	BookingWindowDays  int    `json:"booking_window_days" validate:"min=1,max=365"`
	SupportEmail       string `json:"support_email" validate:"omitempty,email"`
}

// SettingsResponse salida de la configuración global.
type SettingsResponse struct {
	TrialDays          int       `json:"trial_days"`
	DefaultSlotMinutes int       `json:"default_slot_minutes"`
	BookingWindowDays  int       `json:"booking_window_days"`
	SupportEmail       string    `json:"support_email,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ReferralStatsResponse métricas del área comercial: clientes captados
// bajo el código de referido del usuario.
type ReferralStatsResponse struct {
	ReferralCode  string         `json:"referral_code"`
	TotalReferred int            `json:"total_referred"`
	Referred      []UserResponse `json:"referred"`
}
