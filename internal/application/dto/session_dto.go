package dto

import "time"

// UserResponse perfil de usuario expuesto por la API.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	Country      string    `json:"country,omitempty"`
	ReferralCode string    `json:"referral_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionResponse estado derivado de la sesión, lo que consume el frontend
// para decidir render vs redirect.
type SessionResponse struct {
	Status   string            `json:"status"` // loading, unauthenticated, onboarding, authenticated
	Role     string            `json:"role,omitempty"`
	HomePath string            `json:"home_path,omitempty"`
	User     *UserResponse     `json:"user,omitempty"`
	Business *BusinessResponse `json:"business,omitempty"`
}
