package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// LotRepository persists Lot entities on Postgres.
type LotRepository struct {
	*Store
}

// NewLotRepository wires a LotRepository on the shared store.
func NewLotRepository(s *Store) *LotRepository {
	return &LotRepository{Store: s}
}

const lotColumns = `id, devis_id, code_lot, titre, ordre, parent_id, marge, montant_total_ht, montant_total_ttc, created_at, updated_at, deleted_at, deleted_by`

func scanLot(row rowScanner) (*entities.Lot, error) {
	var l entities.Lot
	var parentID, deletedBy sql.NullInt64
	var marge decimal.NullDecimal
	var deletedAt sql.NullTime
	if err := row.Scan(&l.ID, &l.DevisID, &l.CodeLot, &l.Titre, &l.Ordre, &parentID, &marge,
		&l.MontantTotalHT, &l.MontantTotalTTC, &l.CreatedAt, &l.UpdatedAt, &deletedAt, &deletedBy); err != nil {
		return nil, err
	}
	if parentID.Valid {
		l.ParentID = &parentID.Int64
	}
	if deletedAt.Valid {
		l.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		l.DeletedBy = &deletedBy.Int64
	}
	if marge.Valid {
		l.Marge = &marge.Decimal
	}
	return &l, nil
}

// Save inserts a new lot, or updates it in place when its ID is already set.
func (r *LotRepository) Save(ctx context.Context, l *entities.Lot) error {
	marge := nullDecimal(l.Marge)
	if l.ID == 0 {
		const query = `
			INSERT INTO lots (devis_id, code_lot, titre, ordre, parent_id, marge, montant_total_ht, montant_total_ttc, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, l.DevisID, l.CodeLot, l.Titre, l.Ordre, nullInt64(l.ParentID), marge,
			l.MontantTotalHT, l.MontantTotalTTC, l.CreatedAt, l.UpdatedAt).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert lot: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE lots SET code_lot = $1, titre = $2, ordre = $3, parent_id = $4, marge = $5,
			montant_total_ht = $6, montant_total_ttc = $7, updated_at = $8, deleted_at = $9, deleted_by = $10
		WHERE id = $11`
	res, err := r.db.ExecContext(ctx, query, l.CodeLot, l.Titre, l.Ordre, nullInt64(l.ParentID), marge,
		l.MontantTotalHT, l.MontantTotalTTC, l.UpdatedAt, nullTime(l.DeletedAt), nullInt64(l.DeletedBy), l.ID)
	if err != nil {
		return fmt.Errorf("update lot %d: %w", l.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.LotNotFound(l.ID)
	}
	return nil
}

// FindByID loads a non-deleted lot by its primary key.
func (r *LotRepository) FindByID(ctx context.Context, id int64) (*entities.Lot, error) {
	query := fmt.Sprintf(`SELECT %s FROM lots WHERE id = $1 AND deleted_at IS NULL`, lotColumns)
	l, err := scanLot(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.LotNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find lot %d: %w", id, err)
	}
	return l, nil
}

// FindByDevisID returns the non-deleted lots of a devis, in display order.
func (r *LotRepository) FindByDevisID(ctx context.Context, devisID int64) ([]*entities.Lot, error) {
	query := fmt.Sprintf(`SELECT %s FROM lots WHERE devis_id = $1 AND deleted_at IS NULL ORDER BY ordre`, lotColumns)
	rows, err := r.db.QueryContext(ctx, query, devisID)
	if err != nil {
		return nil, fmt.Errorf("find lots of devis %d: %w", devisID, err)
	}
	defer rows.Close()
	var out []*entities.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Count returns the number of non-deleted lots of a devis.
func (r *LotRepository) Count(ctx context.Context, devisID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lots WHERE devis_id = $1 AND deleted_at IS NULL`, devisID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lots of devis %d: %w", devisID, err)
	}
	return n, nil
}

// Delete soft-deletes a lot.
func (r *LotRepository) Delete(ctx context.Context, id, deletedBy int64) error {
	const query = `UPDATE lots SET deleted_at = NOW(), deleted_by = $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, deletedBy, id)
	if err != nil {
		return fmt.Errorf("delete lot %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.LotNotFound(id)
	}
	return nil
}
