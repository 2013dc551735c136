package usecase

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// ReferralUseCase métricas del área comercial: clientes captados bajo el
// código de referido de un usuario sales/admin.
type ReferralUseCase struct {
	users repository.UserRepository
}

// NewReferralUseCase construye el caso de uso.
func NewReferralUseCase(users repository.UserRepository) *ReferralUseCase {
	return &ReferralUseCase{users: users}
}

// StatsFor estadísticas de referidos del usuario. Solo staff emite códigos.
func (uc *ReferralUseCase) StatsFor(ctx context.Context, user *entity.User) (*dto.ReferralStatsResponse, error) {
	if user == nil || !user.IsStaff() {
		return nil, domain.ErrForbidden
	}

	total, err := uc.users.CountReferredBy(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	referred, err := uc.users.ListReferredBy(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReferralStatsResponse{
		ReferralCode:  user.ReferralCode,
		TotalReferred: total,
		Referred:      make([]dto.UserResponse, 0, len(referred)),
	}
	for _, r := range referred {
		resp.Referred = append(resp.Referred, *appsession.ToUserResponse(r))
	}
	return resp, nil
}
