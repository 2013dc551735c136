package entity

import "time"

// PlatformSettings configuración global de la plataforma (fila única).
// Solo editable desde el área admin; los valores se validan contra rangos
// en el caso de uso antes de persistir.
type PlatformSettings struct {
	TrialDays          int    // 1..90
	DefaultSlotMinutes int    // 5..240
	BookingWindowDays  int    // 1..365
	SupportEmail       string
	UpdatedAt          time.Time
}
