package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/adapters/repository"
	"github.com/milkwise/mother-care-service/internal/core/domain"
)

// Two mothers, the second with one baby. Returns (mother A id, mother B id,
// B's baby id).
func seedTwoMothers(t *testing.T, repo *repository.MemoryRepository) (int64, int64, int64) {
	t.Helper()
	a := registerMother(t, repo, "a@example.com", "segredo123")
	b := registerMother(t, repo, "b@example.com", "segredo123")
	babyID, err := repo.CreateBaby(context.Background(), domain.Baby{MotherID: b, Name: "B1"})
	if err != nil {
		t.Fatalf("seed baby failed: %v", err)
	}
	return a, b, babyID
}

func TestBabyServiceCreateAndList(t *testing.T) {
	repo := repository.NewMemoryRepository()
	motherID := registerMother(t, repo, "a@example.com", "segredo123")
	svc := NewBabyService(repo, zerolog.Nop())
	ctx := context.Background()

	baby, err := svc.Create(ctx, motherID, domain.Baby{
		Name:   "Luna",
		Weight: 1450,
		// Body-supplied owner must be overwritten by the token-derived one.
		MotherID:       999,
		GestationWeeks: 31,
		GestationDays:  4,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if baby.ID == 0 || baby.MotherID != motherID {
		t.Errorf("bad ownership: %+v", baby)
	}

	list, err := svc.List(ctx, motherID)
	if err != nil || len(list) != 1 || list[0].Name != "Luna" {
		t.Fatalf("list = %+v, err = %v", list, err)
	}

	empty, err := svc.List(ctx, 12345)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("expected empty slice for unknown mother, got %+v (%v)", empty, err)
	}
}

func TestBabyServiceValidation(t *testing.T) {
	repo := repository.NewMemoryRepository()
	motherID := registerMother(t, repo, "a@example.com", "segredo123")
	svc := NewBabyService(repo, zerolog.Nop())

	cases := []struct {
		name string
		baby domain.Baby
	}{
		{"missing name", domain.Baby{Weight: 1500}},
		{"negative weight", domain.Baby{Name: "x", Weight: -1}},
		{"days out of range", domain.Baby{Name: "x", GestationDays: 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), motherID, tc.baby); !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFeedingAddDefaultsDateAndScopesOwner(t *testing.T) {
	repo := repository.NewMemoryRepository()
	_, motherB, babyID := seedTwoMothers(t, repo)
	svc := NewFeedingService(repo, repo, zerolog.Nop())
	fixed := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	entry, err := svc.Add(context.Background(), motherB, babyID, domain.FeedingEntry{
		Breast:       domain.BreastLeft,
		Duration:     15,
		MilkQuantity: 40.5,
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !entry.Date.Equal(fixed) {
		t.Errorf("date not defaulted: %v", entry.Date)
	}
	if entry.BabyID != babyID || entry.MotherID != motherB {
		t.Errorf("entry not keyed to owner: %+v", entry)
	}

	got, err := svc.ListForBaby(context.Background(), motherB, babyID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got.Mamadas) != 1 || got.Mamadas[0].MilkQuantity != 40.5 {
		t.Errorf("unexpected history: %+v", got.Mamadas)
	}
}

func TestFeedingForeignBabyIsUnauthorized(t *testing.T) {
	repo := repository.NewMemoryRepository()
	motherA, _, babyOfB := seedTwoMothers(t, repo)
	svc := NewFeedingService(repo, repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Add(ctx, motherA, babyOfB, domain.FeedingEntry{
		Breast:   domain.BreastRight,
		Duration: 10,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("add on foreign baby: expected ErrUnauthorized, got %v", err)
	}

	if _, err := svc.ListForBaby(ctx, motherA, babyOfB); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("list on foreign baby: expected ErrUnauthorized, got %v", err)
	}
}

func TestFeedingValidation(t *testing.T) {
	repo := repository.NewMemoryRepository()
	_, motherB, babyID := seedTwoMothers(t, repo)
	svc := NewFeedingService(repo, repo, zerolog.Nop())

	cases := []struct {
		name  string
		entry domain.FeedingEntry
	}{
		{"bad breast", domain.FeedingEntry{Breast: "X", Duration: 10}},
		{"zero duration", domain.FeedingEntry{Breast: domain.BreastRight}},
		{"negative quantity", domain.FeedingEntry{Breast: domain.BreastRight, Duration: 10, MilkQuantity: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), motherB, babyID, tc.entry); !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
