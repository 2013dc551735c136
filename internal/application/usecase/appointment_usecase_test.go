package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

func newAppointmentFixture(t *testing.T) (*usecase.AppointmentUseCase, *appointmentStore, *businessStore) {
	t.Helper()
	appointments := newAppointmentStore()
	businesses := newBusinessStore()
	require.NoError(t, businesses.Create(context.Background(), &entity.Business{
		ID: "b-1", OwnerID: "uid-1", Subdomain: "barberia-sur", Name: "Barbería Sur", Timezone: "America/Bogota",
	}))
	return usecase.NewAppointmentUseCase(appointments, businesses), appointments, businesses
}

func seedAppointment(t *testing.T, store *appointmentStore, id, token, status string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Create(context.Background(), &entity.Appointment{
		ID:           id,
		BusinessID:   "b-1",
		ServiceID:    "svc-1",
		CustomerName: "Pedro",
		StartsAt:     now.Add(24 * time.Hour),
		EndsAt:       now.Add(24*time.Hour + 30*time.Minute),
		Status:       status,
		CancelToken:  token,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de cancelación por token
// ──────────────────────────────────────────────────────────────────────────────

func TestLookupByToken_Cancelable(t *testing.T) {
	uc, store, _ := newAppointmentFixture(t)
	seedAppointment(t, store, "a-1", "tok-1", entity.AppointmentConfirmed)

	resp, err := uc.LookupByToken(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, dto.CancelStateCancelable, resp.State)
	require.NotNil(t, resp.Appointment)
	assert.Equal(t, "a-1", resp.Appointment.ID)
	require.NotNil(t, resp.Business, "la página de cancelación muestra el negocio")
	assert.Equal(t, "Barbería Sur", resp.Business.Name)
	assert.Equal(t, 0, store.updates, "la consulta jamás muta la cita")
}

func TestLookupByToken_Desconocido_EsEstadoNoError(t *testing.T) {
	uc, _, _ := newAppointmentFixture(t)

	resp, err := uc.LookupByToken(context.Background(), "tok-inexistente")
	require.NoError(t, err, "token desconocido es un estado terminal, nunca un 5xx")
	assert.Equal(t, dto.CancelStateNotFound, resp.State)
	assert.Nil(t, resp.Appointment)
}

func TestCancelByToken_CancelaYEsIrreversible(t *testing.T) {
	uc, store, _ := newAppointmentFixture(t)
	seedAppointment(t, store, "a-1", "tok-1", entity.AppointmentConfirmed)

	resp, err := uc.CancelByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, dto.CancelStateOK, resp.State)
	require.NotNil(t, resp.Appointment.CancelledAt)

	guardada, _ := store.GetByID(context.Background(), "a-1")
	assert.Equal(t, entity.AppointmentCancelled, guardada.Status)
}

func TestCancelByToken_SegundaVez_EsIdempotente(t *testing.T) {
	uc, store, _ := newAppointmentFixture(t)
	seedAppointment(t, store, "a-1", "tok-1", entity.AppointmentConfirmed)

	_, err := uc.CancelByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	primerUpdate := store.updates

	resp, err := uc.CancelByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, dto.CancelStateAlready, resp.State)
	assert.Equal(t, primerUpdate, store.updates, "el segundo POST no debe mutar nada")
}

func TestCancelByToken_TokenVacio(t *testing.T) {
	uc, _, _ := newAppointmentFixture(t)
	resp, err := uc.CancelByToken(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, dto.CancelStateNotFound, resp.State)
}

func TestToAppointmentResponse_NoExponeElToken(t *testing.T) {
	// El DTO no tiene campo de token: verificación estructural de que el token
	// de cancelación jamás viaja en una respuesta de listado.
	resp := usecase.ToAppointmentResponse(&entity.Appointment{
		ID: "a-1", CancelToken: "secreto",
	})
	assert.Equal(t, "a-1", resp.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de listado del dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestListForOwner_FiltraPorRango(t *testing.T) {
	uc, store, _ := newAppointmentFixture(t)
	now := time.Now()
	require.NoError(t, store.Create(context.Background(), &entity.Appointment{
		ID: "dentro", BusinessID: "b-1", StartsAt: now.Add(2 * time.Hour), Status: entity.AppointmentConfirmed,
	}))
	require.NoError(t, store.Create(context.Background(), &entity.Appointment{
		ID: "fuera", BusinessID: "b-1", StartsAt: now.Add(100 * 24 * time.Hour), Status: entity.AppointmentConfirmed,
	}))

	list, b, err := uc.ListForOwner(context.Background(), "uid-1", now, now.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)
	require.Len(t, list, 1)
	assert.Equal(t, "dentro", list[0].ID)
}

func TestListForOwner_SinNegocio(t *testing.T) {
	uc, _, _ := newAppointmentFixture(t)
	_, _, err := uc.ListForOwner(context.Background(), "uid-sin-negocio", time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}
