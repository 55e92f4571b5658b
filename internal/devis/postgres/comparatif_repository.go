package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// ComparatifRepository persists Comparatif and ComparatifLigne records on
// Postgres. A new generation for the same (source, cible) pair replaces the
// prior one wholesale, inside a single transaction.
type ComparatifRepository struct {
	*Store
}

// NewComparatifRepository wires a ComparatifRepository on the shared store.
func NewComparatifRepository(s *Store) *ComparatifRepository {
	return &ComparatifRepository{Store: s}
}

const comparatifColumns = `id, devis_source_id, devis_cible_id, ecart_montant_ht, ecart_montant_ttc, ecart_marge_pct, ecart_debourse_total, nombre_ajouts, nombre_suppressions, nombre_modifications, nombre_identiques, created_at`

const comparatifLigneColumns = `id, comparatif_id, cle_rapprochement, ligne_source_id, ligne_cible_id, type, designation_source, designation_cible, quantite_source, quantite_cible, ecart_quantite, prix_unitaire_source_ht, prix_unitaire_cible_ht, ecart_prix_unitaire_ht, montant_source_ht, montant_cible_ht, ecart_montant_ht, debourse_sec_source, debourse_sec_cible, ecart_debourse_sec`

func scanComparatif(row rowScanner) (*entities.Comparatif, error) {
	var c entities.Comparatif
	if err := row.Scan(&c.ID, &c.DevisSourceID, &c.DevisCibleID, &c.EcartMontantHT, &c.EcartMontantTTC,
		&c.EcartMargePct, &c.EcartDebourseTotal,
		&c.NombreAjouts, &c.NombreSuppressions, &c.NombreModifications, &c.NombreIdentiques, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanComparatifLigne(row rowScanner) (*entities.ComparatifLigne, error) {
	var l entities.ComparatifLigne
	var ligneSourceID, ligneCibleID sql.NullInt64
	if err := row.Scan(&l.ID, &l.ComparatifID, &l.CleRapprochement, &ligneSourceID, &ligneCibleID, &l.Type,
		&l.DesignationSource, &l.DesignationCible,
		&l.QuantiteSource, &l.QuantiteCible, &l.EcartQuantite,
		&l.PrixUnitaireSourceHT, &l.PrixUnitaireCibleHT, &l.EcartPrixUnitaireHT,
		&l.MontantSourceHT, &l.MontantCibleHT, &l.EcartMontantHT,
		&l.DebourseSecSource, &l.DebourseSecCible, &l.EcartDebourseSec); err != nil {
		return nil, err
	}
	if ligneSourceID.Valid {
		l.LigneSourceID = &ligneSourceID.Int64
	}
	if ligneCibleID.Valid {
		l.LigneCibleID = &ligneCibleID.Int64
	}
	return &l, nil
}

// Save replaces any prior comparison for the same (source, cible) pair with
// the freshly computed one, atomically.
func (r *ComparatifRepository) Save(ctx context.Context, c *entities.Comparatif, lignes []*entities.ComparatifLigne) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin comparatif save: %w", err)
	}
	defer tx.Rollback()

	const deleteOld = `DELETE FROM comparatifs WHERE devis_source_id = $1 AND devis_cible_id = $2`
	if _, err := tx.ExecContext(ctx, deleteOld, c.DevisSourceID, c.DevisCibleID); err != nil {
		return fmt.Errorf("delete prior comparatif: %w", err)
	}

	const insertComparatif = `
		INSERT INTO comparatifs (devis_source_id, devis_cible_id, ecart_montant_ht, ecart_montant_ttc,
			ecart_marge_pct, ecart_debourse_total,
			nombre_ajouts, nombre_suppressions, nombre_modifications, nombre_identiques, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, insertComparatif, c.DevisSourceID, c.DevisCibleID, c.EcartMontantHT, c.EcartMontantTTC,
		c.EcartMargePct, c.EcartDebourseTotal,
		c.NombreAjouts, c.NombreSuppressions, c.NombreModifications, c.NombreIdentiques, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert comparatif: %w", err)
	}

	const insertLigne = `
		INSERT INTO comparatif_lignes (comparatif_id, cle_rapprochement, ligne_source_id, ligne_cible_id, type,
			designation_source, designation_cible,
			quantite_source, quantite_cible, ecart_quantite,
			prix_unitaire_source_ht, prix_unitaire_cible_ht, ecart_prix_unitaire_ht,
			montant_source_ht, montant_cible_ht, ecart_montant_ht,
			debourse_sec_source, debourse_sec_cible, ecart_debourse_sec)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`
	for _, l := range lignes {
		l.ComparatifID = c.ID
		err := tx.QueryRowContext(ctx, insertLigne, l.ComparatifID, l.CleRapprochement, nullInt64(l.LigneSourceID),
			nullInt64(l.LigneCibleID), l.Type, l.DesignationSource, l.DesignationCible,
			l.QuantiteSource, l.QuantiteCible, l.EcartQuantite,
			l.PrixUnitaireSourceHT, l.PrixUnitaireCibleHT, l.EcartPrixUnitaireHT,
			l.MontantSourceHT, l.MontantCibleHT, l.EcartMontantHT,
			l.DebourseSecSource, l.DebourseSecCible, l.EcartDebourseSec).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert comparatif ligne: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit comparatif save: %w", err)
	}
	return nil
}

func (r *ComparatifRepository) loadLignes(ctx context.Context, comparatifID int64) ([]*entities.ComparatifLigne, error) {
	query := fmt.Sprintf(`SELECT %s FROM comparatif_lignes WHERE comparatif_id = $1 ORDER BY id`, comparatifLigneColumns)
	rows, err := r.db.QueryContext(ctx, query, comparatifID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entities.ComparatifLigne
	for rows.Next() {
		l, err := scanComparatifLigne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// FindBySourceEtCible loads the current comparison for a (source, cible) pair, if any.
func (r *ComparatifRepository) FindBySourceEtCible(ctx context.Context, sourceID, cibleID int64) (*entities.Comparatif, []*entities.ComparatifLigne, error) {
	query := fmt.Sprintf(`SELECT %s FROM comparatifs WHERE devis_source_id = $1 AND devis_cible_id = $2`, comparatifColumns)
	c, err := scanComparatif(r.db.QueryRowContext(ctx, query, sourceID, cibleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domainerrors.Validation("ComparatifNotFoundError", fmt.Sprintf("comparatif %d -> %d introuvable", sourceID, cibleID))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find comparatif %d -> %d: %w", sourceID, cibleID, err)
	}
	lignes, err := r.loadLignes(ctx, c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load comparatif lignes: %w", err)
	}
	return c, lignes, nil
}

// FindByID loads a comparison and its lines by the comparison's primary key.
func (r *ComparatifRepository) FindByID(ctx context.Context, id int64) (*entities.Comparatif, []*entities.ComparatifLigne, error) {
	query := fmt.Sprintf(`SELECT %s FROM comparatifs WHERE id = $1`, comparatifColumns)
	c, err := scanComparatif(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domainerrors.Validation("ComparatifNotFoundError", fmt.Sprintf("comparatif %d introuvable", id))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find comparatif %d: %w", id, err)
	}
	lignes, err := r.loadLignes(ctx, c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load comparatif lignes: %w", err)
	}
	return c, lignes, nil
}
