package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

func newServiceFixture(t *testing.T) (*usecase.ServiceUseCase, *serviceStore) {
	t.Helper()
	services := newServiceStore()
	businesses := newBusinessStore()
	require.NoError(t, businesses.Create(context.Background(), &entity.Business{
		ID: "b-1", OwnerID: "uid-1", Subdomain: "barberia-sur",
	}))
	require.NoError(t, businesses.Create(context.Background(), &entity.Business{
		ID: "b-2", OwnerID: "uid-2", Subdomain: "otro",
	}))
	return usecase.NewServiceUseCase(services, businesses), services
}

func TestServiceCreate_ConPrecioDecimal(t *testing.T) {
	uc, _ := newServiceFixture(t)

	s, err := uc.Create(context.Background(), "uid-1", dto.ServiceRequest{
		Name: "Corte clásico", DurationMinutes: 30, Price: "25000.50",
	})
	require.NoError(t, err)
	assert.True(t, s.Active, "los servicios nacen activos por defecto")
	assert.Equal(t, "25000.50", s.Price.StringFixed(2))
}

func TestServiceCreate_PrecioInvalido(t *testing.T) {
	uc, _ := newServiceFixture(t)

	for _, precio := range []string{"abc", "", "-5"} {
		_, err := uc.Create(context.Background(), "uid-1", dto.ServiceRequest{
			Name: "Corte", DurationMinutes: 30, Price: precio,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio %q", precio)
	}
}

func TestServiceCreate_DuracionFueraDeRango(t *testing.T) {
	uc, _ := newServiceFixture(t)
	_, err := uc.Create(context.Background(), "uid-1", dto.ServiceRequest{
		Name: "Corte", DurationMinutes: 3, Price: "10",
	})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestServiceUpdate_DeOtroNegocio_EsNotFound(t *testing.T) {
	uc, store := newServiceFixture(t)
	require.NoError(t, store.Create(context.Background(), &entity.Service{
		ID: "svc-ajeno", BusinessID: "b-2", Name: "Ajeno",
	}))

	// No se revela la existencia de servicios ajenos.
	_, err := uc.Update(context.Background(), "uid-1", "svc-ajeno", dto.ServiceRequest{
		Name: "Robado", DurationMinutes: 30, Price: "10",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), "uid-1", "svc-ajeno")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceListPublic_SoloActivos(t *testing.T) {
	uc, store := newServiceFixture(t)
	require.NoError(t, store.Create(context.Background(), &entity.Service{
		ID: "svc-1", BusinessID: "b-1", Name: "Activo", Active: true,
	}))
	require.NoError(t, store.Create(context.Background(), &entity.Service{
		ID: "svc-2", BusinessID: "b-1", Name: "Retirado", Active: false,
	}))

	list, err := uc.ListPublic(context.Background(), "b-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "svc-1", list[0].ID, "la página pública no muestra servicios retirados")
}

func TestServiceDelete_SinNegocio(t *testing.T) {
	uc, _ := newServiceFixture(t)
	err := uc.Delete(context.Background(), "uid-sin-negocio", "svc-1")
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}
