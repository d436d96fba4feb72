package ports

import (
	"context"
	"time"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

// MotherRepository persists mothers and their dependent babies.
//
// CreateMother must write the mother row, every baby row and the outbox row
// inside a single transaction: if any insert fails, nothing is committed.
type MotherRepository interface {
	CreateMother(ctx context.Context, mother domain.Mother, babies []domain.Baby, outboxEvent string, outboxPayload []byte) (int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.Mother, error)
	FindByID(ctx context.Context, id int64) (*domain.Mother, error)

	// UpdateMother applies the mother's mutable fields and the baby updates
	// in one transaction. Baby updates are owner-scoped: a payload whose id
	// does not belong to motherID updates no row and is not an error.
	UpdateMother(ctx context.Context, motherID int64, m domain.MotherUpdate, babies []domain.BabyUpdate) error

	Aggregate(ctx context.Context, motherID int64) (*domain.MotherAggregate, error)

	TouchLastAccess(ctx context.Context, motherID int64, at time.Time) error
	UpdatePassword(ctx context.Context, motherID int64, passwordHash string) error

	// WriteOutbox appends a standalone outbox row (used by flows that do not
	// create a mother, e.g. password reset requests).
	WriteOutbox(ctx context.Context, eventType string, payload []byte) error
}

// BabyRepository persists babies added after signup.
type BabyRepository interface {
	CreateBaby(ctx context.Context, baby domain.Baby) (int64, error)
	ListByMother(ctx context.Context, motherID int64) ([]domain.Baby, error)
	// FindOwned returns the baby only when it belongs to motherID.
	FindOwned(ctx context.Context, motherID, babyID int64) (*domain.Baby, error)
}

// FeedingRepository persists feeding/extraction events.
type FeedingRepository interface {
	CreateEntry(ctx context.Context, entry domain.FeedingEntry) (int64, error)
	ListByBaby(ctx context.Context, babyID int64) ([]domain.FeedingEntry, error)
}
