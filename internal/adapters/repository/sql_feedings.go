package repository

import (
	"context"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

const feedingColumns = `id, bebe_id, mae_id, data_hora, qtd_leite, mama, duracao`

func (r *SQLRepository) CreateEntry(ctx context.Context, entry domain.FeedingEntry) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ordenha (bebe_id, mae_id, data_hora, qtd_leite, mama, duracao)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		entry.BabyID, entry.MotherID, entry.Date, entry.MilkQuantity,
		entry.Breast, entry.Duration,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err)
	}
	return id, nil
}

func (r *SQLRepository) ListByBaby(ctx context.Context, babyID int64) ([]domain.FeedingEntry, error) {
	return r.listFeedings(ctx, `SELECT `+feedingColumns+` FROM ordenha WHERE bebe_id = $1 ORDER BY data_hora`, babyID)
}

func (r *SQLRepository) listByMotherFeedings(ctx context.Context, motherID int64) ([]domain.FeedingEntry, error) {
	entries, err := r.listFeedings(ctx, `SELECT `+feedingColumns+` FROM ordenha WHERE mae_id = $1 ORDER BY data_hora`, motherID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.FeedingEntry{}
	}
	return entries, nil
}

func (r *SQLRepository) listFeedings(ctx context.Context, query string, arg int64) ([]domain.FeedingEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var entries []domain.FeedingEntry
	for rows.Next() {
		var e domain.FeedingEntry
		if err := rows.Scan(&e.ID, &e.BabyID, &e.MotherID, &e.Date, &e.MilkQuantity, &e.Breast, &e.Duration); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
