package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// FeedingService records and lists feeding/extraction events. Every
// operation is owner-scoped: the baby must belong to the authenticated
// mother or the request is rejected as unauthorized.
type FeedingService struct {
	babies   ports.BabyRepository
	feedings ports.FeedingRepository
	now      func() time.Time
	log      zerolog.Logger
}

var _ ports.FeedingService = (*FeedingService)(nil)

func NewFeedingService(babies ports.BabyRepository, feedings ports.FeedingRepository, log zerolog.Logger) *FeedingService {
	return &FeedingService{babies: babies, feedings: feedings, now: time.Now, log: log}
}

func (s *FeedingService) Add(ctx context.Context, motherID, babyID int64, entry domain.FeedingEntry) (*domain.FeedingEntry, error) {
	if entry.Breast != domain.BreastRight && entry.Breast != domain.BreastLeft {
		return nil, domain.NewValidationError("mama", "deve ser D ou E")
	}
	if entry.Duration <= 0 {
		return nil, domain.NewValidationError("duracao", "deve ser um número positivo")
	}
	if entry.MilkQuantity < 0 {
		return nil, domain.NewValidationError("qtd_leite", "deve ser um número positivo")
	}

	if _, err := s.babies.FindOwned(ctx, motherID, babyID); err != nil {
		return nil, domain.ErrUnauthorized
	}

	entry.BabyID = babyID
	entry.MotherID = motherID
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}

	id, err := s.feedings.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return &entry, nil
}

func (s *FeedingService) ListForBaby(ctx context.Context, motherID, babyID int64) (*domain.BabyWithFeedings, error) {
	baby, err := s.babies.FindOwned(ctx, motherID, babyID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.feedings.ListByBaby(ctx, babyID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.FeedingEntry{}
	}
	return &domain.BabyWithFeedings{Baby: *baby, Mamadas: entries}, nil
}
