// Package report genera el reporte PDF de citas que el dueño de un negocio
// descarga desde su dashboard.
package report

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// AppointmentsPDFGenerator puerto del generador PDF (lo implementa
// infrastructure/pdf con Maroto).
type AppointmentsPDFGenerator interface {
	GenerateAppointmentsReport(
		ctx context.Context,
		business *entity.Business,
		appointments []*entity.Appointment,
		services map[string]*entity.Service,
		from, to time.Time,
	) ([]byte, error)
}
