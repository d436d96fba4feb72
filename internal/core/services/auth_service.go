package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// AuthService handles login, password changes and the forgot-password flow.
type AuthService struct {
	repo       ports.MotherRepository
	tokens     *TokenIssuer
	resetCodes ports.ResetCodeStore
	bcryptCost int
	now        func() time.Time
	log        zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(repo ports.MotherRepository, tokens *TokenIssuer, resetCodes ports.ResetCodeStore, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		resetCodes: resetCodes,
		bcryptCost: bcryptCost,
		now:        time.Now,
		log:        log,
	}
}

// Login checks the credentials and issues a fresh session token. A
// successful login also stamps the mother's last access.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.NewValidationError("email", "campo obrigatório")
	}

	mother, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(mother.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	if err := s.repo.TouchLastAccess(ctx, mother.ID, s.now()); err != nil {
		// Login still succeeds; the stamp is best effort.
		s.log.Warn().Err(err).Int64("mae_id", mother.ID).Msg("failed to stamp last access")
	}

	return s.tokens.Issue(mother.ID)
}

// ChangePassword replaces the authenticated mother's password.
func (s *AuthService) ChangePassword(ctx context.Context, motherID int64, newPassword string) error {
	if newPassword == "" {
		return domain.NewValidationError("senha", "campo obrigatório")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, motherID, string(hash))
}

// ForgotPassword stores a one-hour reset code and queues the reset email
// through the outbox. It deliberately returns nil for unknown emails so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.NewValidationError("email", "campo obrigatório")
	}

	mother, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	code := uuid.NewString()
	if err := s.resetCodes.Save(ctx, code, mother.ID); err != nil {
		return err
	}

	payload, err := json.Marshal(ports.PasswordResetEvent{
		MotherID: mother.ID,
		Email:    mother.Email,
		Code:     code,
	})
	if err != nil {
		return err
	}
	if err := s.repo.WriteOutbox(ctx, ports.EventPasswordResetRequested, payload); err != nil {
		return err
	}

	s.log.Info().Int64("mae_id", mother.ID).Msg("password reset requested")
	return nil
}
