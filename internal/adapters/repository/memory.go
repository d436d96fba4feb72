package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// MemoryRepository is an in-memory implementation of the repository ports.
// It backs dev mode when no database DSN is configured and doubles as the
// store for transaction tests. It honors the same all-or-nothing contract as
// the SQL implementation: CreateMother stages every row and publishes them
// only when the whole batch succeeded.
type MemoryRepository struct {
	mu sync.Mutex

	nextMotherID  int64
	nextBabyID    int64
	nextFeedingID int64

	mothers  map[int64]domain.Mother
	babies   map[int64]domain.Baby
	feedings map[int64]domain.FeedingEntry
	outbox   []OutboxRecord

	// BabyInsertHook, when set, runs before each staged baby insert and can
	// force a mid-transaction failure. Test-only.
	BabyInsertHook func(index int, baby domain.Baby) error
}

// OutboxRecord is one staged outbox row.
type OutboxRecord struct {
	EventType string
	Payload   []byte
}

var (
	_ ports.MotherRepository  = (*MemoryRepository)(nil)
	_ ports.BabyRepository    = (*MemoryRepository)(nil)
	_ ports.FeedingRepository = (*MemoryRepository)(nil)
)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		mothers:  make(map[int64]domain.Mother),
		babies:   make(map[int64]domain.Baby),
		feedings: make(map[int64]domain.FeedingEntry),
	}
}

func (r *MemoryRepository) CreateMother(_ context.Context, mother domain.Mother, babies []domain.Baby, outboxEvent string, outboxPayload []byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.mothers {
		if m.Email == mother.Email {
			return 0, domain.ErrConflict
		}
	}

	// Stage everything, publish only on success.
	motherID := r.nextMotherID + 1
	mother.ID = motherID

	staged := make([]domain.Baby, 0, len(babies))
	babyID := r.nextBabyID
	for i, baby := range babies {
		if r.BabyInsertHook != nil {
			if err := r.BabyInsertHook(i, baby); err != nil {
				return 0, err
			}
		}
		babyID++
		baby.ID = babyID
		baby.MotherID = motherID
		staged = append(staged, baby)
	}

	r.nextMotherID = motherID
	r.nextBabyID = babyID
	r.mothers[motherID] = mother
	for _, baby := range staged {
		r.babies[baby.ID] = baby
	}
	r.outbox = append(r.outbox, OutboxRecord{EventType: outboxEvent, Payload: outboxPayload})
	return motherID, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*domain.Mother, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mothers {
		if m.Email == email {
			copied := m
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*domain.Mother, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mothers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := m
	return &copied, nil
}

func (r *MemoryRepository) UpdateMother(_ context.Context, motherID int64, m domain.MotherUpdate, babies []domain.BabyUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mother, ok := r.mothers[motherID]
	if !ok {
		return domain.ErrNotFound
	}

	if m.Email != nil {
		mother.Email = *m.Email
	}
	if m.Name != nil {
		mother.Name = *m.Name
	}
	if m.HasPartner != nil {
		mother.HasPartner = *m.HasPartner
	}
	if m.Birthday != nil {
		mother.Birthday = m.Birthday
	}
	if m.Phone != nil {
		mother.Phone = *m.Phone
	}
	if m.PossibleBirthDate != nil {
		mother.PossibleBirthDate = m.PossibleBirthDate
	}
	if m.City != nil && m.State != nil {
		mother.Location = *m.City + " - " + *m.State
	}
	r.mothers[motherID] = mother

	for _, b := range babies {
		baby, ok := r.babies[b.ID]
		// Owner-scoped match: a foreign baby id touches nothing.
		if !ok || baby.MotherID != motherID {
			continue
		}
		if b.Name != nil {
			baby.Name = *b.Name
		}
		if b.Birthday != nil {
			baby.Birthday = b.Birthday
		}
		if b.Weight != nil {
			baby.Weight = *b.Weight
		}
		if b.VaginalBirth != nil {
			baby.VaginalBirth = *b.VaginalBirth
		}
		if b.BirthLocation != nil {
			baby.BirthLocation = *b.BirthLocation
		}
		r.babies[b.ID] = baby
	}
	return nil
}

func (r *MemoryRepository) Aggregate(ctx context.Context, motherID int64) (*domain.MotherAggregate, error) {
	mother, err := r.FindByID(ctx, motherID)
	if err != nil {
		return nil, err
	}

	babies, err := r.ListByMother(ctx, motherID)
	if err != nil {
		return nil, err
	}

	agg := &domain.MotherAggregate{Mother: *mother, Babies: make([]domain.BabyWithFeedings, 0, len(babies))}
	for _, baby := range babies {
		entries, err := r.ListByBaby(ctx, baby.ID)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []domain.FeedingEntry{}
		}
		agg.Babies = append(agg.Babies, domain.BabyWithFeedings{Baby: baby, Mamadas: entries})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	agg.Ordenhas = []domain.FeedingEntry{}
	for _, e := range r.feedings {
		if e.MotherID == motherID {
			agg.Ordenhas = append(agg.Ordenhas, e)
		}
	}
	sort.Slice(agg.Ordenhas, func(i, j int) bool { return agg.Ordenhas[i].ID < agg.Ordenhas[j].ID })
	return agg, nil
}

func (r *MemoryRepository) TouchLastAccess(_ context.Context, motherID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mothers[motherID]
	if !ok {
		return domain.ErrNotFound
	}
	m.LastAccess = at
	r.mothers[motherID] = m
	return nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, motherID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mothers[motherID]
	if !ok {
		return domain.ErrNotFound
	}
	m.PasswordHash = passwordHash
	r.mothers[motherID] = m
	return nil
}

func (r *MemoryRepository) WriteOutbox(_ context.Context, eventType string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outbox = append(r.outbox, OutboxRecord{EventType: eventType, Payload: payload})
	return nil
}

// Outbox returns a snapshot of staged outbox rows. Test helper.
func (r *MemoryRepository) Outbox() []OutboxRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]OutboxRecord, len(r.outbox))
	copy(out, r.outbox)
	return out
}

func (r *MemoryRepository) CreateBaby(_ context.Context, baby domain.Baby) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mothers[baby.MotherID]; !ok {
		return 0, domain.ErrNotFound
	}
	r.nextBabyID++
	baby.ID = r.nextBabyID
	r.babies[baby.ID] = baby
	return baby.ID, nil
}

func (r *MemoryRepository) ListByMother(_ context.Context, motherID int64) ([]domain.Baby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Baby
	for _, b := range r.babies {
		if b.MotherID == motherID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) FindOwned(_ context.Context, motherID, babyID int64) (*domain.Baby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.babies[babyID]
	if !ok || b.MotherID != motherID {
		return nil, domain.ErrNotFound
	}
	copied := b
	return &copied, nil
}

func (r *MemoryRepository) CreateEntry(_ context.Context, entry domain.FeedingEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextFeedingID++
	entry.ID = r.nextFeedingID
	r.feedings[entry.ID] = entry
	return entry.ID, nil
}

func (r *MemoryRepository) ListByBaby(_ context.Context, babyID int64) ([]domain.FeedingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FeedingEntry
	for _, e := range r.feedings {
		if e.BabyID == babyID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
