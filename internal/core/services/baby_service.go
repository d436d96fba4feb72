package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// BabyService covers babies added after signup and baby listings.
type BabyService struct {
	babies ports.BabyRepository
	log    zerolog.Logger
}

var _ ports.BabyService = (*BabyService)(nil)

func NewBabyService(babies ports.BabyRepository, log zerolog.Logger) *BabyService {
	return &BabyService{babies: babies, log: log}
}

// Create inserts one baby owned by the authenticated mother. The owner comes
// from the verified token, never from the request body.
func (s *BabyService) Create(ctx context.Context, motherID int64, baby domain.Baby) (*domain.Baby, error) {
	if baby.Name == "" {
		return nil, domain.NewValidationError("nome", "campo obrigatório")
	}
	if baby.Weight < 0 {
		return nil, domain.NewValidationError("peso", "deve ser um número positivo")
	}
	if baby.GestationDays < 0 || baby.GestationDays > 6 {
		return nil, domain.NewValidationError("dias_gest", "deve estar entre 0 e 6")
	}

	baby.MotherID = motherID
	id, err := s.babies.CreateBaby(ctx, baby)
	if err != nil {
		return nil, err
	}
	baby.ID = id

	s.log.Info().Int64("mae_id", motherID).Int64("bebe_id", id).Msg("baby registered")
	return &baby, nil
}

func (s *BabyService) List(ctx context.Context, motherID int64) ([]domain.Baby, error) {
	babies, err := s.babies.ListByMother(ctx, motherID)
	if err != nil {
		return nil, err
	}
	if babies == nil {
		babies = []domain.Baby{}
	}
	return babies, nil
}
