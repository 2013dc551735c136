package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service un servicio agendable de un negocio (corte de pelo, consulta, etc.).
type Service struct {
	ID              string
	BusinessID      string
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
