package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// FraisChantierRepository persists FraisChantier entities on Postgres.
type FraisChantierRepository struct {
	*Store
}

// NewFraisChantierRepository wires a FraisChantierRepository on the shared store.
func NewFraisChantierRepository(s *Store) *FraisChantierRepository {
	return &FraisChantierRepository{Store: s}
}

const fraisChantierColumns = `id, devis_id, type, libelle, montant_ht, mode_repartition, taux_tva, lot_id, created_at, updated_at, deleted_at`

func scanFraisChantier(row rowScanner) (*entities.FraisChantier, error) {
	var f entities.FraisChantier
	var lotID sql.NullInt64
	var deletedAt sql.NullTime
	if err := row.Scan(&f.ID, &f.DevisID, &f.Type, &f.Libelle, &f.MontantHT, &f.ModeRepartition, &f.TauxTVA,
		&lotID, &f.CreatedAt, &f.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if lotID.Valid {
		f.LotID = &lotID.Int64
	}
	if deletedAt.Valid {
		f.DeletedAt = &deletedAt.Time
	}
	return &f, nil
}

// Save inserts a new site-overhead charge, or updates it in place when its ID is already set.
func (r *FraisChantierRepository) Save(ctx context.Context, f *entities.FraisChantier) error {
	if f.ID == 0 {
		const query = `
			INSERT INTO frais_chantier (devis_id, type, libelle, montant_ht, mode_repartition, taux_tva, lot_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, f.DevisID, f.Type, f.Libelle, f.MontantHT, f.ModeRepartition,
			f.TauxTVA, nullInt64(f.LotID), f.CreatedAt, f.UpdatedAt).Scan(&f.ID)
		if err != nil {
			return fmt.Errorf("insert frais chantier: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE frais_chantier SET type = $1, libelle = $2, montant_ht = $3, mode_repartition = $4, taux_tva = $5,
			lot_id = $6, updated_at = $7, deleted_at = $8
		WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query, f.Type, f.Libelle, f.MontantHT, f.ModeRepartition, f.TauxTVA,
		nullInt64(f.LotID), f.UpdatedAt, nullTime(f.DeletedAt), f.ID)
	if err != nil {
		return fmt.Errorf("update frais chantier %d: %w", f.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.FraisChantierNotFound(f.ID)
	}
	return nil
}

// FindByID loads a non-deleted site-overhead charge by its primary key.
func (r *FraisChantierRepository) FindByID(ctx context.Context, id int64) (*entities.FraisChantier, error) {
	query := fmt.Sprintf(`SELECT %s FROM frais_chantier WHERE id = $1 AND deleted_at IS NULL`, fraisChantierColumns)
	f, err := scanFraisChantier(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.FraisChantierNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find frais chantier %d: %w", id, err)
	}
	return f, nil
}

// FindByDevisID returns a devis's non-deleted site-overhead charges.
func (r *FraisChantierRepository) FindByDevisID(ctx context.Context, devisID int64) ([]*entities.FraisChantier, error) {
	query := fmt.Sprintf(`SELECT %s FROM frais_chantier WHERE devis_id = $1 AND deleted_at IS NULL ORDER BY created_at`, fraisChantierColumns)
	rows, err := r.db.QueryContext(ctx, query, devisID)
	if err != nil {
		return nil, fmt.Errorf("find frais chantier of devis %d: %w", devisID, err)
	}
	defer rows.Close()
	var out []*entities.FraisChantier
	for rows.Next() {
		f, err := scanFraisChantier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Delete soft-deletes a site-overhead charge.
func (r *FraisChantierRepository) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE frais_chantier SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete frais chantier %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.FraisChantierNotFound(id)
	}
	return nil
}
