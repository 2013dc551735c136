package report

import (
	"context"
	"fmt"
	"time"

	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// PDFUseCase arma los datos del reporte de citas y delega el render al generador.
type PDFUseCase struct {
	appointments repository.AppointmentRepository
	businesses   repository.BusinessRepository
	services     repository.ServiceRepository
	generator    AppointmentsPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	appointments repository.AppointmentRepository,
	businesses repository.BusinessRepository,
	services repository.ServiceRepository,
	generator AppointmentsPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		appointments: appointments,
		businesses:   businesses,
		services:     services,
		generator:    generator,
	}
}

// DownloadAppointmentsReport genera el PDF del rango para el negocio del dueño.
//
// Retorna:
//   - (pdfBytes, filename, nil)       si todo sale bien.
//   - domain.ErrBusinessNotFound      si el dueño no tiene negocio.
//   - domain.ErrInvalidInput          si el rango está invertido.
func (uc *PDFUseCase) DownloadAppointmentsReport(ctx context.Context, ownerID string, from, to time.Time) ([]byte, string, error) {
	if to.Before(from) {
		return nil, "", domain.ErrInvalidInput
	}
	b, err := uc.businesses.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}
	if b == nil {
		return nil, "", domain.ErrBusinessNotFound
	}

	appts, err := uc.appointments.ListByBusiness(ctx, b.ID, from, to)
	if err != nil {
		return nil, "", err
	}
	svcList, err := uc.services.ListByBusiness(ctx, b.ID)
	if err != nil {
		return nil, "", err
	}
	services := make(map[string]*entity.Service, len(svcList))
	for _, s := range svcList {
		services[s.ID] = s
	}

	pdf, err := uc.generator.GenerateAppointmentsReport(ctx, b, appts, services, from, to)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("citas-%s-%s-%s.pdf", b.Subdomain, from.Format("20060102"), to.Format("20060102"))
	return pdf, filename, nil
}
