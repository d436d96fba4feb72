package repository

import (
	"context"
	"database/sql"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

const babyColumns = `id, mae_id, nome, data_parto, peso, parto_normal, complicacoes,
	semanas_gest, dias_gest, apgar1, apgar2, local_nascimento, local_cadastro`

func insertBaby(ctx context.Context, tx *sql.Tx, motherID int64, baby domain.Baby) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO bebe (mae_id, nome, data_parto, peso, parto_normal,
			complicacoes, semanas_gest, dias_gest, apgar1, apgar2,
			local_nascimento, local_cadastro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		motherID, baby.Name, baby.Birthday, baby.Weight, baby.VaginalBirth,
		baby.Complications, baby.GestationWeeks, baby.GestationDays,
		baby.Apgar1, baby.Apgar2, nullString(baby.BirthLocation),
		nullString(baby.RegistrationLocation),
	)
	return err
}

func scanBaby(row interface{ Scan(...any) error }) (*domain.Baby, error) {
	var b domain.Baby
	var birthLocation, registrationLocation sql.NullString
	err := row.Scan(
		&b.ID, &b.MotherID, &b.Name, &b.Birthday, &b.Weight, &b.VaginalBirth,
		&b.Complications, &b.GestationWeeks, &b.GestationDays, &b.Apgar1,
		&b.Apgar2, &birthLocation, &registrationLocation,
	)
	if err != nil {
		return nil, mapSQLError(err)
	}
	b.BirthLocation = birthLocation.String
	b.RegistrationLocation = registrationLocation.String
	return &b, nil
}

func (r *SQLRepository) CreateBaby(ctx context.Context, baby domain.Baby) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bebe (mae_id, nome, data_parto, peso, parto_normal,
			complicacoes, semanas_gest, dias_gest, apgar1, apgar2,
			local_nascimento, local_cadastro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		baby.MotherID, baby.Name, baby.Birthday, baby.Weight, baby.VaginalBirth,
		baby.Complications, baby.GestationWeeks, baby.GestationDays,
		baby.Apgar1, baby.Apgar2, nullString(baby.BirthLocation),
		nullString(baby.RegistrationLocation),
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err)
	}
	return id, nil
}

func (r *SQLRepository) ListByMother(ctx context.Context, motherID int64) ([]domain.Baby, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+babyColumns+` FROM bebe WHERE mae_id = $1 ORDER BY id`, motherID)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	var babies []domain.Baby
	for rows.Next() {
		b, err := scanBaby(rows)
		if err != nil {
			return nil, err
		}
		babies = append(babies, *b)
	}
	return babies, rows.Err()
}

func (r *SQLRepository) FindOwned(ctx context.Context, motherID, babyID int64) (*domain.Baby, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+babyColumns+` FROM bebe WHERE mae_id = $1 AND id = $2`, motherID, babyID)
	return scanBaby(row)
}
