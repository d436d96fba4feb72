package ports

import (
	"context"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

type RegistrationService interface {
	// Register runs the create transaction and returns a session token for
	// the new mother. The token is issued only after the commit succeeds.
	Register(ctx context.Context, payload domain.RegistrationPayload) (string, error)

	// Update applies a partial mother + babies update for the authenticated
	// mother and returns the freshly reloaded aggregate view.
	Update(ctx context.Context, motherID int64, mother domain.MotherUpdate, babies []domain.BabyUpdate) (*domain.MotherAggregate, error)

	Aggregate(ctx context.Context, motherID int64) (*domain.MotherAggregate, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, motherID int64, newPassword string) error
	// ForgotPassword never reveals whether the email exists.
	ForgotPassword(ctx context.Context, email string) error
}

type BabyService interface {
	Create(ctx context.Context, motherID int64, baby domain.Baby) (*domain.Baby, error)
	List(ctx context.Context, motherID int64) ([]domain.Baby, error)
}

type FeedingService interface {
	Add(ctx context.Context, motherID, babyID int64, entry domain.FeedingEntry) (*domain.FeedingEntry, error)
	// ListForBaby returns the baby and its entries, owner-scoped.
	ListForBaby(ctx context.Context, motherID, babyID int64) (*domain.BabyWithFeedings, error)
}
