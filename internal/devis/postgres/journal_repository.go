package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
)

// JournalRepository persists the append-only audit trail on Postgres.
type JournalRepository struct {
	*Store
}

// NewJournalRepository wires a JournalRepository on the shared store.
func NewJournalRepository(s *Store) *JournalRepository {
	return &JournalRepository{Store: s}
}

// Append inserts a new journal entry. Entries are never updated or deleted.
func (r *JournalRepository) Append(ctx context.Context, e *entities.JournalEntry) error {
	const query = `
		INSERT INTO journal_entries (devis_id, action, auteur_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var auteurID sql.NullInt64
	if e.AuteurID != nil {
		auteurID = sql.NullInt64{Int64: *e.AuteurID, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query, e.DevisID, e.Action, auteurID, e.Details, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("append journal entry for devis %d: %w", e.DevisID, err)
	}
	return nil
}

// FindByDevisID returns a page of journal entries, most recent first.
func (r *JournalRepository) FindByDevisID(ctx context.Context, devisID int64, limit, offset int) ([]*entities.JournalEntry, error) {
	const query = `
		SELECT id, devis_id, action, auteur_id, details, created_at
		FROM journal_entries WHERE devis_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, devisID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find journal entries of devis %d: %w", devisID, err)
	}
	defer rows.Close()
	var out []*entities.JournalEntry
	for rows.Next() {
		var e entities.JournalEntry
		var auteurID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.DevisID, &e.Action, &auteurID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		if auteurID.Valid {
			e.AuteurID = &auteurID.Int64
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Count returns the number of journal entries of a devis.
func (r *JournalRepository) Count(ctx context.Context, devisID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries WHERE devis_id = $1`, devisID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count journal entries of devis %d: %w", devisID, err)
	}
	return n, nil
}
