package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// AttestationTVARepository persists AttestationTVA entities on Postgres.
type AttestationTVARepository struct {
	*Store
}

// NewAttestationTVARepository wires an AttestationTVARepository on the shared store.
func NewAttestationTVARepository(s *Store) *AttestationTVARepository {
	return &AttestationTVARepository{Store: s}
}

const attestationColumns = `id, devis_id, code_cerfa, taux_tva, client_nom, client_adresse, batiment_plus_2ans, usage_habitation, signataire, date_generation, signee, signee_at, created_at, updated_at`

func scanAttestation(row rowScanner) (*entities.AttestationTVA, error) {
	var a entities.AttestationTVA
	var signeeAt sql.NullTime
	if err := row.Scan(&a.ID, &a.DevisID, &a.CodeCERFA, &a.TauxTVA, &a.ClientNom, &a.ClientAdresse,
		&a.BatimentPlus2Ans, &a.UsageHabitation, &a.Signataire, &a.DateGeneration, &a.Signee, &signeeAt,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if signeeAt.Valid {
		a.SigneeAt = &signeeAt.Time
	}
	return &a, nil
}

// Save inserts a new attestation, or updates it in place when its ID is already set.
func (r *AttestationTVARepository) Save(ctx context.Context, a *entities.AttestationTVA) error {
	if a.ID == 0 {
		const query = `
			INSERT INTO attestations_tva (devis_id, code_cerfa, taux_tva, client_nom, client_adresse,
				batiment_plus_2ans, usage_habitation, signataire, date_generation, signee, signee_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, a.DevisID, a.CodeCERFA, a.TauxTVA, a.ClientNom, a.ClientAdresse,
			a.BatimentPlus2Ans, a.UsageHabitation, a.Signataire, a.DateGeneration, a.Signee, nullTime(a.SigneeAt),
			a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("insert attestation tva: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE attestations_tva SET code_cerfa = $1, taux_tva = $2, client_nom = $3, client_adresse = $4,
			batiment_plus_2ans = $5, usage_habitation = $6, signataire = $7, signee = $8, signee_at = $9, updated_at = $10
		WHERE id = $11`
	res, err := r.db.ExecContext(ctx, query, a.CodeCERFA, a.TauxTVA, a.ClientNom, a.ClientAdresse,
		a.BatimentPlus2Ans, a.UsageHabitation, a.Signataire, a.Signee, nullTime(a.SigneeAt), a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update attestation tva %d: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.AttestationNotFound(a.DevisID)
	}
	return nil
}

// FindByID loads an attestation by its primary key.
func (r *AttestationTVARepository) FindByID(ctx context.Context, id int64) (*entities.AttestationTVA, error) {
	query := fmt.Sprintf(`SELECT %s FROM attestations_tva WHERE id = $1`, attestationColumns)
	a, err := scanAttestation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.AttestationNotFound(0)
	}
	if err != nil {
		return nil, fmt.Errorf("find attestation tva %d: %w", id, err)
	}
	return a, nil
}

// FindByDevisID loads the attestation tied to a devis, if any.
func (r *AttestationTVARepository) FindByDevisID(ctx context.Context, devisID int64) (*entities.AttestationTVA, error) {
	query := fmt.Sprintf(`SELECT %s FROM attestations_tva WHERE devis_id = $1`, attestationColumns)
	a, err := scanAttestation(r.db.QueryRowContext(ctx, query, devisID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.AttestationNotFound(devisID)
	}
	if err != nil {
		return nil, fmt.Errorf("find attestation tva of devis %d: %w", devisID, err)
	}
	return a, nil
}

// Delete hard-deletes an attestation.
func (r *AttestationTVARepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM attestations_tva WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attestation tva %d: %w", id, err)
	}
	return nil
}
