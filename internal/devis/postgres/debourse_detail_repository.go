package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DebourseDetailRepository persists DebourseDetail entities on Postgres.
type DebourseDetailRepository struct {
	*Store
}

// NewDebourseDetailRepository wires a DebourseDetailRepository on the shared store.
func NewDebourseDetailRepository(s *Store) *DebourseDetailRepository {
	return &DebourseDetailRepository{Store: s}
}

const debourseColumns = `id, ligne_id, type_debourse, libelle, quantite, prix_unitaire, metier, taux_horaire, total, created_at, updated_at`

func scanDebourse(row rowScanner) (*entities.DebourseDetail, error) {
	var d entities.DebourseDetail
	var metier sql.NullString
	var tauxHoraire decimal.NullDecimal
	if err := row.Scan(&d.ID, &d.LigneID, &d.TypeDebourse, &d.Libelle, &d.Quantite, &d.PrixUnitaire,
		&metier, &tauxHoraire, &d.Total, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if metier.Valid {
		m := valueobjects.TypeMetier(metier.String)
		d.Metier = &m
	}
	if tauxHoraire.Valid {
		d.TauxHoraire = &tauxHoraire.Decimal
	}
	return &d, nil
}

// Save inserts a new discharge detail, or updates it in place when its ID is already set.
func (r *DebourseDetailRepository) Save(ctx context.Context, d *entities.DebourseDetail) error {
	var metier sql.NullString
	if d.Metier != nil {
		metier = sql.NullString{String: string(*d.Metier), Valid: true}
	}
	if d.ID == 0 {
		const query = `
			INSERT INTO debourse_details (ligne_id, type_debourse, libelle, quantite, prix_unitaire, metier, taux_horaire, total, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, d.LigneID, d.TypeDebourse, d.Libelle, d.Quantite, d.PrixUnitaire,
			metier, nullDecimal(d.TauxHoraire), d.Total, d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert debourse detail: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE debourse_details SET libelle = $1, quantite = $2, prix_unitaire = $3, metier = $4,
			taux_horaire = $5, total = $6, updated_at = $7
		WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query, d.Libelle, d.Quantite, d.PrixUnitaire, metier,
		nullDecimal(d.TauxHoraire), d.Total, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("update debourse detail %d: %w", d.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.Validation("DebourseDetailNotFoundError", fmt.Sprintf("debourse detail %d introuvable", d.ID))
	}
	return nil
}

// FindByID loads a discharge detail by its primary key.
func (r *DebourseDetailRepository) FindByID(ctx context.Context, id int64) (*entities.DebourseDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM debourse_details WHERE id = $1`, debourseColumns)
	d, err := scanDebourse(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.Validation("DebourseDetailNotFoundError", fmt.Sprintf("debourse detail %d introuvable", id))
	}
	if err != nil {
		return nil, fmt.Errorf("find debourse detail %d: %w", id, err)
	}
	return d, nil
}

// FindByLigneID returns every discharge detail of a line.
func (r *DebourseDetailRepository) FindByLigneID(ctx context.Context, ligneID int64) ([]*entities.DebourseDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM debourse_details WHERE ligne_id = $1 ORDER BY id`, debourseColumns)
	rows, err := r.db.QueryContext(ctx, query, ligneID)
	if err != nil {
		return nil, fmt.Errorf("find debourse details of ligne %d: %w", ligneID, err)
	}
	defer rows.Close()
	var out []*entities.DebourseDetail
	for rows.Next() {
		d, err := scanDebourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Count returns the number of discharge details of a line.
func (r *DebourseDetailRepository) Count(ctx context.Context, ligneID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM debourse_details WHERE ligne_id = $1`, ligneID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count debourse details of ligne %d: %w", ligneID, err)
	}
	return n, nil
}

// Delete hard-deletes a discharge detail: details carry no soft-delete
// semantics of their own.
func (r *DebourseDetailRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM debourse_details WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete debourse detail %d: %w", id, err)
	}
	return nil
}
