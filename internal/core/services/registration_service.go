package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
	"github.com/milkwise/mother-care-service/internal/core/signup"
)

// RegistrationService runs the create and update transactions for mother
// profiles and their dependent babies.
type RegistrationService struct {
	repo       ports.MotherRepository
	tokens     *TokenIssuer
	bcryptCost int
	now        func() time.Time
	log        zerolog.Logger
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(repo ports.MotherRepository, tokens *TokenIssuer, bcryptCost int, log zerolog.Logger) *RegistrationService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegistrationService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
		log:        log,
	}
}

// Register performs the all-or-nothing create: hash the password, insert the
// mother row, insert every declared baby keyed to the new mother, and write
// the welcome outbox row, all inside one transaction. The session token is
// issued only after the commit succeeds.
func (s *RegistrationService) Register(ctx context.Context, payload domain.RegistrationPayload) (string, error) {
	if err := signup.ValidateRegistration(payload); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	now := s.now()
	mother := payload.Mother
	mother.PasswordHash = string(hash)
	mother.FirstAccess = now
	mother.LastAccess = now

	event, err := json.Marshal(ports.MotherRegisteredEvent{
		Email: mother.Email,
		Name:  mother.Name,
	})
	if err != nil {
		return "", err
	}

	id, err := s.repo.CreateMother(ctx, mother, payload.Babies, ports.EventMotherRegistered, event)
	if err != nil {
		s.log.Error().Err(err).Str("email", mother.Email).Msg("registration transaction failed")
		return "", err
	}

	s.log.Info().Int64("mae_id", id).Int("bebes", len(payload.Babies)).Msg("mother registered")
	return s.tokens.Issue(id)
}

// Update applies the partial mother payload and the owner-scoped baby
// payloads in one transaction, then reloads the aggregate so the caller sees
// the just-committed state.
func (s *RegistrationService) Update(ctx context.Context, motherID int64, mother domain.MotherUpdate, babies []domain.BabyUpdate) (*domain.MotherAggregate, error) {
	if err := s.repo.UpdateMother(ctx, motherID, mother, babies); err != nil {
		s.log.Error().Err(err).Int64("mae_id", motherID).Msg("update transaction failed")
		return nil, err
	}
	return s.Aggregate(ctx, motherID)
}

// Aggregate returns the mother joined with all owned babies and their
// feeding histories. The password hash is scrubbed before the view leaves
// the service.
func (s *RegistrationService) Aggregate(ctx context.Context, motherID int64) (*domain.MotherAggregate, error) {
	agg, err := s.repo.Aggregate(ctx, motherID)
	if err != nil {
		return nil, err
	}
	agg.PasswordHash = ""
	if agg.Babies == nil {
		agg.Babies = []domain.BabyWithFeedings{}
	}
	if agg.Ordenhas == nil {
		agg.Ordenhas = []domain.FeedingEntry{}
	}
	return agg, nil
}
