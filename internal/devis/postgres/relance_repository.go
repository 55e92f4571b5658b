package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// RelanceRepository persists Relance entities on Postgres.
type RelanceRepository struct {
	*Store
}

// NewRelanceRepository wires a RelanceRepository on the shared store.
func NewRelanceRepository(s *Store) *RelanceRepository {
	return &RelanceRepository{Store: s}
}

const relanceColumns = `id, devis_id, sequence, type, date_prevue, statut, message, envoyee_at, created_at, updated_at`

func scanRelance(row rowScanner) (*entities.Relance, error) {
	var r entities.Relance
	var envoyeeAt sql.NullTime
	if err := row.Scan(&r.ID, &r.DevisID, &r.Sequence, &r.Type, &r.DatePrevue, &r.Statut, &r.Message,
		&envoyeeAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if envoyeeAt.Valid {
		r.EnvoyeeAt = &envoyeeAt.Time
	}
	return &r, nil
}

// Save inserts a new reminder, or updates its state when its ID is already set.
func (r *RelanceRepository) Save(ctx context.Context, relance *entities.Relance) error {
	if relance.ID == 0 {
		const query = `
			INSERT INTO relances (devis_id, sequence, type, date_prevue, statut, message, envoyee_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, relance.DevisID, relance.Sequence, relance.Type, relance.DatePrevue,
			relance.Statut, relance.Message, nullTime(relance.EnvoyeeAt), relance.CreatedAt, relance.UpdatedAt).Scan(&relance.ID)
		if err != nil {
			return fmt.Errorf("insert relance: %w", err)
		}
		return nil
	}
	const query = `UPDATE relances SET statut = $1, message = $2, envoyee_at = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, relance.Statut, relance.Message, nullTime(relance.EnvoyeeAt), relance.UpdatedAt, relance.ID)
	if err != nil {
		return fmt.Errorf("update relance %d: %w", relance.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.Validation("RelanceNotFoundError", fmt.Sprintf("relance %d introuvable", relance.ID))
	}
	return nil
}

// FindByID loads a reminder by its primary key.
func (r *RelanceRepository) FindByID(ctx context.Context, id int64) (*entities.Relance, error) {
	query := fmt.Sprintf(`SELECT %s FROM relances WHERE id = $1`, relanceColumns)
	rel, err := scanRelance(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.Validation("RelanceNotFoundError", fmt.Sprintf("relance %d introuvable", id))
	}
	if err != nil {
		return nil, fmt.Errorf("find relance %d: %w", id, err)
	}
	return rel, nil
}

// FindByDevisID returns a devis's reminders in sequence order.
func (r *RelanceRepository) FindByDevisID(ctx context.Context, devisID int64) ([]*entities.Relance, error) {
	query := fmt.Sprintf(`SELECT %s FROM relances WHERE devis_id = $1 ORDER BY sequence`, relanceColumns)
	rows, err := r.db.QueryContext(ctx, query, devisID)
	if err != nil {
		return nil, fmt.Errorf("find relances of devis %d: %w", devisID, err)
	}
	defer rows.Close()
	var out []*entities.Relance
	for rows.Next() {
		rel, err := scanRelance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

// FindDues returns planned reminders whose due date has arrived, across all quotes.
func (r *RelanceRepository) FindDues(ctx context.Context, asOf time.Time) ([]*entities.Relance, error) {
	query := fmt.Sprintf(`SELECT %s FROM relances WHERE statut = 'PLANIFIEE' AND date_prevue <= $1 ORDER BY date_prevue`, relanceColumns)
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("find due relances: %w", err)
	}
	defer rows.Close()
	var out []*entities.Relance
	for rows.Next() {
		rel, err := scanRelance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

// Count returns the number of reminders scheduled for a devis.
func (r *RelanceRepository) Count(ctx context.Context, devisID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relances WHERE devis_id = $1`, devisID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count relances of devis %d: %w", devisID, err)
	}
	return n, nil
}
