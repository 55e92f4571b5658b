// Package postgres implements the planning-charge module's repository port
// on database/sql and github.com/lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	domainerrors "github.com/pinggolf/btp-planning-core/internal/planningcharge/errors"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/entities"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// BesoinChargeRepository persists BesoinCharge entities on Postgres.
type BesoinChargeRepository struct {
	db *sql.DB
}

// NewBesoinChargeRepository wires a BesoinChargeRepository over an opened pool.
func NewBesoinChargeRepository(db *sql.DB) *BesoinChargeRepository {
	return &BesoinChargeRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBesoin(row rowScanner) (*entities.BesoinCharge, error) {
	var b entities.BesoinCharge
	var semaine string
	if err := row.Scan(&b.ID, &b.ChantierID, &semaine, &b.Metier, &b.BesoinHeures, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	s, err := valueobjects.ParseSemaine(semaine)
	if err != nil {
		return nil, fmt.Errorf("decode semaine %q: %w", semaine, err)
	}
	b.Semaine = s
	return &b, nil
}

const besoinColumns = `id, chantier_id, semaine, metier, besoin_heures, created_by, created_at, updated_at`

// Save inserts a new workload requirement, rejecting a duplicate
// (chantier, semaine, metier) triple, or updates the hours in place when
// its ID is already set.
func (r *BesoinChargeRepository) Save(ctx context.Context, b *entities.BesoinCharge) error {
	if b.ID == 0 {
		const query = `
			INSERT INTO besoins_charge (chantier_id, semaine, metier, besoin_heures, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, b.ChantierID, b.Semaine.String(), b.Metier, b.BesoinHeures,
			b.CreatedBy, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
		if isUniqueViolation(err) {
			return domainerrors.BesoinAlreadyExists(b.ChantierID, b.Semaine.String(), string(b.Metier))
		}
		if err != nil {
			return fmt.Errorf("insert besoin charge: %w", err)
		}
		return nil
	}
	const query = `UPDATE besoins_charge SET besoin_heures = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, b.BesoinHeures, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("update besoin charge %d: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.BesoinChargeNotFound(b.ID)
	}
	return nil
}

// FindByID loads a workload requirement by its primary key.
func (r *BesoinChargeRepository) FindByID(ctx context.Context, id int64) (*entities.BesoinCharge, error) {
	query := fmt.Sprintf(`SELECT %s FROM besoins_charge WHERE id = $1`, besoinColumns)
	b, err := scanBesoin(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.BesoinChargeNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find besoin charge %d: %w", id, err)
	}
	return b, nil
}

// FindByChantierID returns every workload requirement of a chantier, ordered by week.
func (r *BesoinChargeRepository) FindByChantierID(ctx context.Context, chantierID int64) ([]*entities.BesoinCharge, error) {
	query := fmt.Sprintf(`SELECT %s FROM besoins_charge WHERE chantier_id = $1 ORDER BY substring(semaine from 5), semaine`, besoinColumns)
	rows, err := r.db.QueryContext(ctx, query, chantierID)
	if err != nil {
		return nil, fmt.Errorf("find besoins charge of chantier %d: %w", chantierID, err)
	}
	defer rows.Close()
	var out []*entities.BesoinCharge
	for rows.Next() {
		b, err := scanBesoin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// FindInRange returns every workload requirement whose week falls within
// [debut, fin] across all chantiers, evaluated in Go since the "SWW-YYYY"
// wire format does not sort lexicographically by calendar week.
func (r *BesoinChargeRepository) FindInRange(ctx context.Context, debut, fin valueobjects.Semaine) ([]*entities.BesoinCharge, error) {
	query := fmt.Sprintf(`SELECT %s FROM besoins_charge`, besoinColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find besoins charge in range: %w", err)
	}
	defer rows.Close()
	var out []*entities.BesoinCharge
	for rows.Next() {
		b, err := scanBesoin(rows)
		if err != nil {
			return nil, err
		}
		if b.Semaine.Before(debut) || fin.Before(b.Semaine) {
			continue
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// FindByCodeUnique loads a workload requirement by its natural key
// "<chantier>-<semaine>-<metier>".
func (r *BesoinChargeRepository) FindByCodeUnique(ctx context.Context, code string) (*entities.BesoinCharge, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM besoins_charge
		WHERE (chantier_id::text || '-' || semaine || '-' || metier) = $1`, besoinColumns)
	b, err := scanBesoin(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.BesoinChargeNotFoundByCode(code)
	}
	if err != nil {
		return nil, fmt.Errorf("find besoin charge by code %s: %w", code, err)
	}
	return b, nil
}

// Delete hard-deletes a workload requirement.
func (r *BesoinChargeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM besoins_charge WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete besoin charge %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.BesoinChargeNotFound(id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}
