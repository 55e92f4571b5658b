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

// LigneRepository persists Ligne entities on Postgres.
type LigneRepository struct {
	*Store
}

// NewLigneRepository wires a LigneRepository on the shared store.
func NewLigneRepository(s *Store) *LigneRepository {
	return &LigneRepository{Store: s}
}

const ligneColumns = `
	id, lot_id, code_ligne, designation, unite, quantite, prix_unitaire_ht, taux_tva, marge,
	article_id, ordre, verrouille, montant_ht, montant_ttc, debourse_sec, prix_revient,
	created_at, updated_at, deleted_at, deleted_by`

func scanLigne(row rowScanner) (*entities.Ligne, error) {
	var l entities.Ligne
	var marge decimal.NullDecimal
	var articleID, deletedBy sql.NullInt64
	var deletedAt sql.NullTime
	err := row.Scan(&l.ID, &l.LotID, &l.CodeLigne, &l.Designation, &l.Unite, &l.Quantite, &l.PrixUnitaireHT,
		&l.TauxTVA, &marge, &articleID, &l.Ordre, &l.Verrouille, &l.MontantHT, &l.MontantTTC,
		&l.DebourseSec, &l.PrixRevient, &l.CreatedAt, &l.UpdatedAt, &deletedAt, &deletedBy)
	if err != nil {
		return nil, err
	}
	if marge.Valid {
		l.Marge = &marge.Decimal
	}
	if articleID.Valid {
		l.ArticleID = &articleID.Int64
	}
	if deletedAt.Valid {
		l.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		l.DeletedBy = &deletedBy.Int64
	}
	return &l, nil
}

// Save inserts a new line, or updates it in place when its ID is already set.
func (r *LigneRepository) Save(ctx context.Context, l *entities.Ligne) error {
	if l.ID == 0 {
		const query = `
			INSERT INTO lignes (
				lot_id, code_ligne, designation, unite, quantite, prix_unitaire_ht, taux_tva, marge,
				article_id, ordre, verrouille, montant_ht, montant_ttc, debourse_sec, prix_revient,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id`
		err := r.db.QueryRowContext(ctx, query, l.LotID, l.CodeLigne, l.Designation, l.Unite, l.Quantite,
			l.PrixUnitaireHT, l.TauxTVA, nullDecimal(l.Marge), nullInt64(l.ArticleID), l.Ordre, l.Verrouille,
			l.MontantHT, l.MontantTTC, l.DebourseSec, l.PrixRevient, l.CreatedAt, l.UpdatedAt).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert ligne: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE lignes SET
			code_ligne = $1, designation = $2, unite = $3, quantite = $4, prix_unitaire_ht = $5,
			taux_tva = $6, marge = $7, article_id = $8, ordre = $9, verrouille = $10,
			montant_ht = $11, montant_ttc = $12, debourse_sec = $13, prix_revient = $14,
			updated_at = $15, deleted_at = $16, deleted_by = $17
		WHERE id = $18`
	res, err := r.db.ExecContext(ctx, query, l.CodeLigne, l.Designation, l.Unite, l.Quantite, l.PrixUnitaireHT,
		l.TauxTVA, nullDecimal(l.Marge), nullInt64(l.ArticleID), l.Ordre, l.Verrouille,
		l.MontantHT, l.MontantTTC, l.DebourseSec, l.PrixRevient,
		l.UpdatedAt, nullTime(l.DeletedAt), nullInt64(l.DeletedBy), l.ID)
	if err != nil {
		return fmt.Errorf("update ligne %d: %w", l.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.LigneNotFound(l.ID)
	}
	return nil
}

// FindByID loads a non-deleted line by its primary key.
func (r *LigneRepository) FindByID(ctx context.Context, id int64) (*entities.Ligne, error) {
	query := fmt.Sprintf(`SELECT %s FROM lignes WHERE id = $1 AND deleted_at IS NULL`, ligneColumns)
	l, err := scanLigne(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.LigneNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find ligne %d: %w", id, err)
	}
	return l, nil
}

func (r *LigneRepository) queryList(ctx context.Context, query string, args ...any) ([]*entities.Ligne, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entities.Ligne
	for rows.Next() {
		l, err := scanLigne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// FindByLotID returns the non-deleted lines of a lot, in display order.
func (r *LigneRepository) FindByLotID(ctx context.Context, lotID int64) ([]*entities.Ligne, error) {
	query := fmt.Sprintf(`SELECT %s FROM lignes WHERE lot_id = $1 AND deleted_at IS NULL ORDER BY ordre`, ligneColumns)
	out, err := r.queryList(ctx, query, lotID)
	if err != nil {
		return nil, fmt.Errorf("find lignes of lot %d: %w", lotID, err)
	}
	return out, nil
}

// FindByDevisID returns every non-deleted line across a devis's lots.
func (r *LigneRepository) FindByDevisID(ctx context.Context, devisID int64) ([]*entities.Ligne, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM lignes l
		JOIN lots ON lots.id = l.lot_id
		WHERE lots.devis_id = $1 AND l.deleted_at IS NULL AND lots.deleted_at IS NULL
		ORDER BY lots.ordre, l.ordre`,
		prefixColumns("l", ligneColumns))
	out, err := r.queryList(ctx, query, devisID)
	if err != nil {
		return nil, fmt.Errorf("find lignes of devis %d: %w", devisID, err)
	}
	return out, nil
}

// Count returns the number of non-deleted lines of a lot.
func (r *LigneRepository) Count(ctx context.Context, lotID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lignes WHERE lot_id = $1 AND deleted_at IS NULL`, lotID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lignes of lot %d: %w", lotID, err)
	}
	return n, nil
}

// Delete soft-deletes a line.
func (r *LigneRepository) Delete(ctx context.Context, id, deletedBy int64) error {
	const query = `UPDATE lignes SET deleted_at = NOW(), deleted_by = $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, deletedBy, id)
	if err != nil {
		return fmt.Errorf("delete ligne %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.LigneNotFound(id)
	}
	return nil
}
