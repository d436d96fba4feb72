package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// outboxChannel is the NOTIFY channel the relay listens on.
const outboxChannel = "outbox_channel"

// SQLRepository persists the whole aggregate (mothers, babies, feedings,
// outbox rows) over a single *sql.DB.
type SQLRepository struct {
	db *sql.DB
}

var (
	_ ports.MotherRepository  = (*SQLRepository)(nil)
	_ ports.BabyRepository    = (*SQLRepository)(nil)
	_ ports.FeedingRepository = (*SQLRepository)(nil)
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

func mapSQLError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

const motherColumns = `id, email, senha, nome, data_nascimento, whatsapp, categoria,
	localizacao, veiculo_midia, semanas_gestante, data_provavel_parto,
	semanas_gestacao, data_parto, companheiro, quantidade_gestacao,
	cidade_estado, primeiro_acesso, ultimo_acesso`

func scanMother(row interface{ Scan(...any) error }) (*domain.Mother, error) {
	var m domain.Mother
	var phone, origin, socialMedia, location sql.NullString
	err := row.Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.Name, &m.Birthday, &phone,
		&m.Category, &origin, &socialMedia, &m.WeeksPregnant,
		&m.PossibleBirthDate, &m.BirthWeeks, &m.BirthDate, &m.HasPartner,
		&m.GestationCount, &location, &m.FirstAccess, &m.LastAccess,
	)
	if err != nil {
		return nil, mapSQLError(err)
	}
	m.Phone = phone.String
	m.Origin = origin.String
	m.SocialMedia = socialMedia.String
	m.Location = location.String
	return &m, nil
}

// CreateMother inserts the mother, her babies and the welcome outbox row as
// one transaction. A failure anywhere rolls back everything: no mother ever
// exists without her declared babies and no orphan baby row is ever created.
func (r *SQLRepository) CreateMother(ctx context.Context, mother domain.Mother, babies []domain.Baby, outboxEvent string, outboxPayload []byte) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO mae (email, senha, nome, data_nascimento, whatsapp, categoria,
			localizacao, veiculo_midia, semanas_gestante, data_provavel_parto,
			semanas_gestacao, data_parto, companheiro, quantidade_gestacao,
			cidade_estado, primeiro_acesso, ultimo_acesso)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		mother.Email, mother.PasswordHash, mother.Name, mother.Birthday,
		nullString(mother.Phone), mother.Category, nullString(mother.Origin),
		nullString(mother.SocialMedia), mother.WeeksPregnant,
		mother.PossibleBirthDate, mother.BirthWeeks, mother.BirthDate,
		mother.HasPartner, mother.GestationCount, nullString(mother.Location),
		mother.FirstAccess, mother.LastAccess,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err)
	}

	for _, baby := range babies {
		if err := insertBaby(ctx, tx, id, baby); err != nil {
			return 0, mapSQLError(err)
		}
	}

	if err := insertOutbox(ctx, tx, outboxEvent, outboxPayload); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, mapSQLError(err)
	}
	return id, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.Mother, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+motherColumns+` FROM mae WHERE email = $1`, email)
	return scanMother(row)
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.Mother, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+motherColumns+` FROM mae WHERE id = $1`, id)
	return scanMother(row)
}

// UpdateMother applies the mutable mother fields and every owner-scoped baby
// update inside one transaction. COALESCE keeps columns whose payload field
// is nil. Baby rows are matched on (mae_id, id), so a payload carrying a
// foreign baby id updates nothing.
func (r *SQLRepository) UpdateMother(ctx context.Context, motherID int64, m domain.MotherUpdate, babies []domain.BabyUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var location *string
	if m.City != nil && m.State != nil {
		composed := *m.City + " - " + *m.State
		location = &composed
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE mae SET
			email = COALESCE($1, email),
			nome = COALESCE($2, nome),
			companheiro = COALESCE($3, companheiro),
			data_nascimento = COALESCE($4, data_nascimento),
			whatsapp = COALESCE($5, whatsapp),
			data_provavel_parto = COALESCE($6, data_provavel_parto),
			cidade_estado = COALESCE($7, cidade_estado)
		WHERE id = $8`,
		m.Email, m.Name, m.HasPartner, m.Birthday, m.Phone,
		m.PossibleBirthDate, location, motherID,
	)
	if err != nil {
		return mapSQLError(err)
	}

	for _, b := range babies {
		_, err = tx.ExecContext(ctx, `
			UPDATE bebe SET
				nome = COALESCE($1, nome),
				data_parto = COALESCE($2, data_parto),
				peso = COALESCE($3, peso),
				parto_normal = COALESCE($4, parto_normal),
				local_nascimento = COALESCE($5, local_nascimento)
			WHERE mae_id = $6 AND id = $7`,
			b.Name, b.Birthday, b.Weight, b.VaginalBirth, b.BirthLocation,
			motherID, b.ID,
		)
		if err != nil {
			return mapSQLError(err)
		}
	}

	return mapSQLError(tx.Commit())
}

// Aggregate reloads the full view. Per-baby enrichment iterates the babies
// that actually exist, so an update that mentioned more babies than the
// mother owns cannot push the read out of range.
func (r *SQLRepository) Aggregate(ctx context.Context, motherID int64) (*domain.MotherAggregate, error) {
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

	agg.Ordenhas, err = r.listByMotherFeedings(ctx, motherID)
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *SQLRepository) TouchLastAccess(ctx context.Context, motherID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE mae SET ultimo_acesso = $1 WHERE id = $2`, at, motherID)
	return mapSQLError(err)
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, motherID int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE mae SET senha = $1 WHERE id = $2`, passwordHash, motherID)
	if err != nil {
		return mapSQLError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// WriteOutbox appends a standalone outbox row in its own transaction.
func (r *SQLRepository) WriteOutbox(ctx context.Context, eventType string, payload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertOutbox(ctx, tx, eventType, payload); err != nil {
		return err
	}
	return mapSQLError(tx.Commit())
}

func insertOutbox(ctx context.Context, tx *sql.Tx, eventType string, payload []byte) error {
	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, NOW())`, id, eventType, payload); err != nil {
		return mapSQLError(err)
	}
	// Wake the relay; it also sweeps periodically in case this is missed.
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, outboxChannel, id); err != nil {
		return mapSQLError(err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
