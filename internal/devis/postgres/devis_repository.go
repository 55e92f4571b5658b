package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DevisRepository persists the Devis aggregate root on Postgres.
type DevisRepository struct {
	*Store
}

// NewDevisRepository wires a DevisRepository on the shared store.
func NewDevisRepository(s *Store) *DevisRepository {
	return &DevisRepository{Store: s}
}

const devisColumns = `
	id, numero, client_nom, client_adresse, client_telephone, client_email,
	chantier_ref, objet, date_creation, date_validite, statut,
	montant_total_ht, montant_total_ttc,
	taux_marge_global, coefficient_frais_generaux, taux_tva_defaut, retenue_garantie_pct,
	taux_marge_moe, taux_marge_materiaux, taux_marge_sous_traitance, taux_marge_materiel, taux_marge_deplacement,
	notes, conditions_generales,
	commercial_id, conducteur_id, chantier_id_orig,
	type_version, version_numero, devis_parent_id, figee,
	options_presentation, config_relances,
	convertie, chantier_id,
	created_by, created_at, updated_at, deleted_at, deleted_by`

// presentationJSON / relancesJSON mirror the value objects' exported fields
// for JSON (de)serialization into the jsonb columns; the value objects
// themselves carry no json tags since they are not wire types.
type presentationJSON struct {
	AfficherDebourses             bool   `json:"afficher_debourses"`
	AfficherComposants            bool   `json:"afficher_composants"`
	AfficherQuantites             bool   `json:"afficher_quantites"`
	AfficherPrixUnitaires         bool   `json:"afficher_prix_unitaires"`
	AfficherTVADetaillee          bool   `json:"afficher_tva_detaillee"`
	AfficherConditionsGenerales   bool   `json:"afficher_conditions_generales"`
	AfficherLogo                  bool   `json:"afficher_logo"`
	AfficherCoordonneesEntreprise bool   `json:"afficher_coordonnees_entreprise"`
	AfficherRetenueGarantie       bool   `json:"afficher_retenue_garantie"`
	AfficherFraisChantierDetail   bool   `json:"afficher_frais_chantier_detail"`
	TemplateNom                   string `json:"template_nom"`
}

func toPresentationJSON(o valueobjects.OptionsPresentation) presentationJSON {
	return presentationJSON{
		AfficherDebourses:             o.AfficherDebourses,
		AfficherComposants:            o.AfficherComposants,
		AfficherQuantites:             o.AfficherQuantites,
		AfficherPrixUnitaires:         o.AfficherPrixUnitaires,
		AfficherTVADetaillee:          o.AfficherTVADetaillee,
		AfficherConditionsGenerales:   o.AfficherConditionsGenerales,
		AfficherLogo:                  o.AfficherLogo,
		AfficherCoordonneesEntreprise: o.AfficherCoordonneesEntreprise,
		AfficherRetenueGarantie:       o.AfficherRetenueGarantie,
		AfficherFraisChantierDetail:   o.AfficherFraisChantierDetail,
		TemplateNom:                   o.TemplateNom,
	}
}

func (p presentationJSON) toValueObject() valueobjects.OptionsPresentation {
	return valueobjects.OptionsPresentation{
		AfficherDebourses:             p.AfficherDebourses,
		AfficherComposants:            p.AfficherComposants,
		AfficherQuantites:             p.AfficherQuantites,
		AfficherPrixUnitaires:         p.AfficherPrixUnitaires,
		AfficherTVADetaillee:          p.AfficherTVADetaillee,
		AfficherConditionsGenerales:   p.AfficherConditionsGenerales,
		AfficherLogo:                  p.AfficherLogo,
		AfficherCoordonneesEntreprise: p.AfficherCoordonneesEntreprise,
		AfficherRetenueGarantie:       p.AfficherRetenueGarantie,
		AfficherFraisChantierDetail:   p.AfficherFraisChantierDetail,
		TemplateNom:                   p.TemplateNom,
	}
}

type relancesJSON struct {
	Delais            []int                    `json:"delais"`
	Actif             bool                     `json:"actif"`
	TypeRelanceDefaut valueobjects.TypeRelance `json:"type_relance_defaut"`
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevis(row rowScanner) (*entities.Devis, error) {
	var d entities.Devis
	var dateValidite sql.NullTime
	var commercialID, conducteurID, chantierIDOrig, devisParentID, chantierID, deletedBy sql.NullInt64
	var deletedAt sql.NullTime
	var margeMOE, margeMateriaux, margeSousTraitance, margeMateriel, margeDeplacement decimal.NullDecimal
	var optionsRaw, relancesRaw []byte

	err := row.Scan(
		&d.ID, &d.Numero, &d.ClientNom, &d.ClientAdresse, &d.ClientTelephone, &d.ClientEmail,
		&d.ChantierRef, &d.Objet, &d.DateCreation, &dateValidite, &d.Statut,
		&d.MontantTotalHT, &d.MontantTotalTTC,
		&d.TauxMargeGlobal, &d.CoefficientFraisGeneraux, &d.TauxTVADefaut, &d.RetenueGarantiePct,
		&margeMOE, &margeMateriaux, &margeSousTraitance, &margeMateriel, &margeDeplacement,
		&d.Notes, &d.ConditionsGenerales,
		&commercialID, &conducteurID, &chantierIDOrig,
		&d.TypeVersion, &d.VersionNumero, &devisParentID, &d.Figee,
		&optionsRaw, &relancesRaw,
		&d.Convertie, &chantierID,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &deletedAt, &deletedBy,
	)
	if err != nil {
		return nil, err
	}

	if dateValidite.Valid {
		d.DateValidite = &dateValidite.Time
	}
	if commercialID.Valid {
		d.CommercialID = &commercialID.Int64
	}
	if conducteurID.Valid {
		d.ConducteurID = &conducteurID.Int64
	}
	if chantierIDOrig.Valid {
		d.ChantierIDOrig = &chantierIDOrig.Int64
	}
	if devisParentID.Valid {
		d.DevisParentID = &devisParentID.Int64
	}
	if chantierID.Valid {
		d.ChantierID = &chantierID.Int64
	}
	if deletedAt.Valid {
		d.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		d.DeletedBy = &deletedBy.Int64
	}
	if margeMOE.Valid {
		d.TauxMargeMOE = &margeMOE.Decimal
	}
	if margeMateriaux.Valid {
		d.TauxMargeMateriaux = &margeMateriaux.Decimal
	}
	if margeSousTraitance.Valid {
		d.TauxMargeSousTraitance = &margeSousTraitance.Decimal
	}
	if margeMateriel.Valid {
		d.TauxMargeMateriel = &margeMateriel.Decimal
	}
	if margeDeplacement.Valid {
		d.TauxMargeDeplacement = &margeDeplacement.Decimal
	}

	var p presentationJSON
	if len(optionsRaw) > 0 {
		if err := json.Unmarshal(optionsRaw, &p); err != nil {
			return nil, fmt.Errorf("decode options_presentation: %w", err)
		}
	}
	d.OptionsPresentation = p.toValueObject()

	var r relancesJSON
	if len(relancesRaw) > 0 {
		if err := json.Unmarshal(relancesRaw, &r); err != nil {
			return nil, fmt.Errorf("decode config_relances: %w", err)
		}
	}
	d.ConfigRelances = valueobjects.ConfigRelances{
		Delais:            r.Delais,
		Actif:             r.Actif,
		TypeRelanceDefaut: r.TypeRelanceDefaut,
	}

	return &d, nil
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullTime(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}

func nullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p, Valid: true}
}

// Save inserts a new devis, or updates it in place when its ID is already set.
func (r *DevisRepository) Save(ctx context.Context, d *entities.Devis) error {
	optionsRaw, err := json.Marshal(toPresentationJSON(d.OptionsPresentation))
	if err != nil {
		return fmt.Errorf("encode options_presentation: %w", err)
	}
	relancesRaw, err := json.Marshal(relancesJSON{
		Delais:            d.ConfigRelances.Delais,
		Actif:             d.ConfigRelances.Actif,
		TypeRelanceDefaut: d.ConfigRelances.TypeRelanceDefaut,
	})
	if err != nil {
		return fmt.Errorf("encode config_relances: %w", err)
	}

	if d.ID == 0 {
		const query = `
			INSERT INTO devis (
				numero, client_nom, client_adresse, client_telephone, client_email,
				chantier_ref, objet, date_creation, date_validite, statut,
				montant_total_ht, montant_total_ttc,
				taux_marge_global, coefficient_frais_generaux, taux_tva_defaut, retenue_garantie_pct,
				taux_marge_moe, taux_marge_materiaux, taux_marge_sous_traitance, taux_marge_materiel, taux_marge_deplacement,
				notes, conditions_generales,
				commercial_id, conducteur_id, chantier_id_orig,
				type_version, version_numero, devis_parent_id, figee,
				options_presentation, config_relances,
				convertie, chantier_id,
				created_by, created_at, updated_at, deleted_at, deleted_by
			) VALUES (
				$1, $2, $3, $4, $5,
				$6, $7, $8, $9, $10,
				$11, $12,
				$13, $14, $15, $16,
				$17, $18, $19, $20, $21,
				$22, $23,
				$24, $25, $26,
				$27, $28, $29, $30,
				$31, $32,
				$33, $34,
				$35, $36, $37, $38, $39
			) RETURNING id`
		err := r.db.QueryRowContext(ctx, query,
			d.Numero, d.ClientNom, d.ClientAdresse, d.ClientTelephone, d.ClientEmail,
			d.ChantierRef, d.Objet, d.DateCreation, nullTime(d.DateValidite), d.Statut,
			d.MontantTotalHT, d.MontantTotalTTC,
			d.TauxMargeGlobal, d.CoefficientFraisGeneraux, d.TauxTVADefaut, d.RetenueGarantiePct,
			nullDecimal(d.TauxMargeMOE), nullDecimal(d.TauxMargeMateriaux), nullDecimal(d.TauxMargeSousTraitance),
			nullDecimal(d.TauxMargeMateriel), nullDecimal(d.TauxMargeDeplacement),
			d.Notes, d.ConditionsGenerales,
			nullInt64(d.CommercialID), nullInt64(d.ConducteurID), nullInt64(d.ChantierIDOrig),
			d.TypeVersion, d.VersionNumero, nullInt64(d.DevisParentID), d.Figee,
			optionsRaw, relancesRaw,
			d.Convertie, nullInt64(d.ChantierID),
			d.CreatedBy, d.CreatedAt, d.UpdatedAt, nullTime(d.DeletedAt), nullInt64(d.DeletedBy),
		).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert devis: %w", err)
		}
		return nil
	}

	const query = `
		UPDATE devis SET
			numero = $1, client_nom = $2, client_adresse = $3, client_telephone = $4, client_email = $5,
			chantier_ref = $6, objet = $7, date_creation = $8, date_validite = $9, statut = $10,
			montant_total_ht = $11, montant_total_ttc = $12,
			taux_marge_global = $13, coefficient_frais_generaux = $14, taux_tva_defaut = $15, retenue_garantie_pct = $16,
			taux_marge_moe = $17, taux_marge_materiaux = $18, taux_marge_sous_traitance = $19,
			taux_marge_materiel = $20, taux_marge_deplacement = $21,
			notes = $22, conditions_generales = $23,
			commercial_id = $24, conducteur_id = $25, chantier_id_orig = $26,
			type_version = $27, version_numero = $28, devis_parent_id = $29, figee = $30,
			options_presentation = $31, config_relances = $32,
			convertie = $33, chantier_id = $34,
			updated_at = $35, deleted_at = $36, deleted_by = $37
		WHERE id = $38`
	d.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		d.Numero, d.ClientNom, d.ClientAdresse, d.ClientTelephone, d.ClientEmail,
		d.ChantierRef, d.Objet, d.DateCreation, nullTime(d.DateValidite), d.Statut,
		d.MontantTotalHT, d.MontantTotalTTC,
		d.TauxMargeGlobal, d.CoefficientFraisGeneraux, d.TauxTVADefaut, d.RetenueGarantiePct,
		nullDecimal(d.TauxMargeMOE), nullDecimal(d.TauxMargeMateriaux), nullDecimal(d.TauxMargeSousTraitance),
		nullDecimal(d.TauxMargeMateriel), nullDecimal(d.TauxMargeDeplacement),
		d.Notes, d.ConditionsGenerales,
		nullInt64(d.CommercialID), nullInt64(d.ConducteurID), nullInt64(d.ChantierIDOrig),
		d.TypeVersion, d.VersionNumero, nullInt64(d.DevisParentID), d.Figee,
		optionsRaw, relancesRaw,
		d.Convertie, nullInt64(d.ChantierID),
		d.UpdatedAt, nullTime(d.DeletedAt), nullInt64(d.DeletedBy),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("update devis %d: %w", d.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update devis %d: %w", d.ID, err)
	}
	if n == 0 {
		return domainerrors.DevisNotFound(d.ID)
	}
	return nil
}

// FindByID loads a non-deleted devis by its primary key.
func (r *DevisRepository) FindByID(ctx context.Context, id int64) (*entities.Devis, error) {
	query := fmt.Sprintf(`SELECT %s FROM devis WHERE id = $1 AND deleted_at IS NULL`, devisColumns)
	d, err := scanDevis(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.DevisNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find devis %d: %w", id, err)
	}
	return d, nil
}

// FindByNumero loads a non-deleted devis by its business number.
func (r *DevisRepository) FindByNumero(ctx context.Context, numero string) (*entities.Devis, error) {
	query := fmt.Sprintf(`SELECT %s FROM devis WHERE numero = $1 AND deleted_at IS NULL`, devisColumns)
	d, err := scanDevis(r.db.QueryRowContext(ctx, query, numero))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.DevisNotFound(0)
	}
	if err != nil {
		return nil, fmt.Errorf("find devis by numero %s: %w", numero, err)
	}
	return d, nil
}

func (r *DevisRepository) queryDevisList(ctx context.Context, query string, args ...any) ([]*entities.Devis, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entities.Devis
	for rows.Next() {
		d, err := scanDevis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// FindAll returns a page of non-deleted quotes, most recent first.
func (r *DevisRepository) FindAll(ctx context.Context, limit, offset int) ([]*entities.Devis, error) {
	query := fmt.Sprintf(`SELECT %s FROM devis WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`, devisColumns)
	out, err := r.queryDevisList(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find all devis: %w", err)
	}
	return out, nil
}

// FindAllInRange returns non-deleted quotes created within [debut, fin].
func (r *DevisRepository) FindAllInRange(ctx context.Context, debut, fin time.Time) ([]*entities.Devis, error) {
	query := fmt.Sprintf(`SELECT %s FROM devis WHERE deleted_at IS NULL AND date_creation BETWEEN $1 AND $2 ORDER BY date_creation`, devisColumns)
	out, err := r.queryDevisList(ctx, query, debut, fin)
	if err != nil {
		return nil, fmt.Errorf("find devis in range: %w", err)
	}
	return out, nil
}

// FindVersions returns every member of a devis family (itself, its
// revisions, and its variants), ordered oldest first.
func (r *DevisRepository) FindVersions(ctx context.Context, devisID int64) ([]*entities.Devis, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM devis
		WHERE deleted_at IS NULL AND (id = $1 OR devis_parent_id = $1)
		ORDER BY version_numero`, devisColumns)
	out, err := r.queryDevisList(ctx, query, devisID)
	if err != nil {
		return nil, fmt.Errorf("find versions of devis %d: %w", devisID, err)
	}
	return out, nil
}

// GetNextVersionNumber returns the next version_numero to assign within a family.
func (r *DevisRepository) GetNextVersionNumber(ctx context.Context, devisRacineID int64) (int, error) {
	const query = `
		SELECT COALESCE(MAX(version_numero), 0) + 1
		FROM devis
		WHERE id = $1 OR devis_parent_id = $1`
	var next int
	if err := r.db.QueryRowContext(ctx, query, devisRacineID).Scan(&next); err != nil {
		return 0, fmt.Errorf("get next version number for %d: %w", devisRacineID, err)
	}
	return next, nil
}

// Search runs the repository's closed filter set.
func (r *DevisRepository) Search(ctx context.Context, filter repository.DevisFilter) ([]*entities.Devis, error) {
	query := fmt.Sprintf(`SELECT %s FROM devis WHERE deleted_at IS NULL`, devisColumns)
	var args []any
	argNum := 1

	if filter.ClientNom != "" {
		query += fmt.Sprintf(" AND client_nom ILIKE $%d", argNum)
		args = append(args, "%"+filter.ClientNom+"%")
		argNum++
	}
	if len(filter.Statuts) > 0 {
		statuts := make([]string, len(filter.Statuts))
		for i, s := range filter.Statuts {
			statuts[i] = string(s)
		}
		query += fmt.Sprintf(" AND statut = ANY($%d)", argNum)
		args = append(args, pq.Array(statuts))
		argNum++
	}
	if filter.DateDebut != nil {
		query += fmt.Sprintf(" AND date_creation >= $%d", argNum)
		args = append(args, *filter.DateDebut)
		argNum++
	}
	if filter.DateFin != nil {
		query += fmt.Sprintf(" AND date_creation <= $%d", argNum)
		args = append(args, *filter.DateFin)
		argNum++
	}
	if filter.MontantMin != nil {
		query += fmt.Sprintf(" AND montant_total_ht >= $%d", argNum)
		args = append(args, *filter.MontantMin)
		argNum++
	}
	if filter.MontantMax != nil {
		query += fmt.Sprintf(" AND montant_total_ht <= $%d", argNum)
		args = append(args, *filter.MontantMax)
		argNum++
	}
	if filter.CommercialID != nil {
		query += fmt.Sprintf(" AND commercial_id = $%d", argNum)
		args = append(args, *filter.CommercialID)
		argNum++
	}
	if filter.ConducteurID != nil {
		query += fmt.Sprintf(" AND conducteur_id = $%d", argNum)
		args = append(args, *filter.ConducteurID)
		argNum++
	}
	if filter.Texte != "" {
		query += fmt.Sprintf(" AND (numero ILIKE $%d OR objet ILIKE $%d OR client_nom ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, "%"+filter.Texte+"%")
		argNum++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filter.Offset)
		argNum++
	}

	out, err := r.queryDevisList(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search devis: %w", err)
	}
	return out, nil
}

// Count returns the total number of non-deleted quotes.
func (r *DevisRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devis WHERE deleted_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count devis: %w", err)
	}
	return n, nil
}

// CountByStatut counts non-deleted quotes in a given status.
func (r *DevisRepository) CountByStatut(ctx context.Context, statut valueobjects.StatutDevis) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devis WHERE deleted_at IS NULL AND statut = $1`, statut).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count devis by statut %s: %w", statut, err)
	}
	return n, nil
}

// SommeMontantByStatut sums montant_total_ht across non-deleted quotes in a given status.
func (r *DevisRepository) SommeMontantByStatut(ctx context.Context, statut valueobjects.StatutDevis) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(montant_total_ht), 0) FROM devis WHERE deleted_at IS NULL AND statut = $1`, statut).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum devis montant by statut %s: %w", statut, err)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// FindExpires returns non-deleted, non-terminal quotes whose validity date has passed.
func (r *DevisRepository) FindExpires(ctx context.Context, asOf time.Time) ([]*entities.Devis, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM devis
		WHERE deleted_at IS NULL AND date_validite IS NOT NULL AND date_validite < $1
		  AND statut NOT IN ($2, $3, $4, $5)`, devisColumns)
	out, err := r.queryDevisList(ctx, query, asOf,
		valueobjects.Accepte, valueobjects.Refuse, valueobjects.Perdu, valueobjects.Expire)
	if err != nil {
		return nil, fmt.Errorf("find expired devis: %w", err)
	}
	return out, nil
}

// Delete soft-deletes a devis.
func (r *DevisRepository) Delete(ctx context.Context, id, deletedBy int64) error {
	const query = `UPDATE devis SET deleted_at = NOW(), deleted_by = $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, deletedBy, id)
	if err != nil {
		return fmt.Errorf("delete devis %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete devis %d: %w", id, err)
	}
	if n == 0 {
		return domainerrors.DevisNotFound(id)
	}
	return nil
}
