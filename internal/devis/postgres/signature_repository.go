package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// SignatureRepository persists SignatureDevis entities on Postgres.
type SignatureRepository struct {
	*Store
}

// NewSignatureRepository wires a SignatureRepository on the shared store.
func NewSignatureRepository(s *Store) *SignatureRepository {
	return &SignatureRepository{Store: s}
}

const signatureColumns = `id, devis_id, type, signataire, payload, adresse_ip, user_agent, hash_sha512, valide, revoquee, revoquee_par, revoquee_motif, revoquee_at, created_at`

func scanSignature(row rowScanner) (*entities.SignatureDevis, error) {
	var s entities.SignatureDevis
	var revoqueePar sql.NullInt64
	var revoqueeAt sql.NullTime
	if err := row.Scan(&s.ID, &s.DevisID, &s.Type, &s.Signataire, &s.Payload, &s.AdresseIP, &s.UserAgent,
		&s.HashSHA512, &s.Valide, &s.Revoquee, &revoqueePar, &s.RevoqueeMotif, &revoqueeAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	if revoqueePar.Valid {
		s.RevoqueePar = &revoqueePar.Int64
	}
	if revoqueeAt.Valid {
		s.RevoqueeAt = &revoqueeAt.Time
	}
	return &s, nil
}

// Save inserts a new signature, or updates its revocation state when its ID is already set.
func (r *SignatureRepository) Save(ctx context.Context, s *entities.SignatureDevis) error {
	if s.ID == 0 {
		const query = `
			INSERT INTO signatures_devis (devis_id, type, signataire, payload, adresse_ip, user_agent,
				hash_sha512, valide, revoquee, revoquee_par, revoquee_motif, revoquee_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, s.DevisID, s.Type, s.Signataire, s.Payload, s.AdresseIP, s.UserAgent,
			s.HashSHA512, s.Valide, s.Revoquee, nullInt64(s.RevoqueePar), s.RevoqueeMotif, nullTime(s.RevoqueeAt), s.CreatedAt).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert signature: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE signatures_devis SET valide = $1, revoquee = $2, revoquee_par = $3, revoquee_motif = $4, revoquee_at = $5
		WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, s.Valide, s.Revoquee, nullInt64(s.RevoqueePar), s.RevoqueeMotif, nullTime(s.RevoqueeAt), s.ID)
	if err != nil {
		return fmt.Errorf("update signature %d: %w", s.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.SignatureNotFound(s.DevisID)
	}
	return nil
}

// FindByID loads a signature by its primary key.
func (r *SignatureRepository) FindByID(ctx context.Context, id int64) (*entities.SignatureDevis, error) {
	query := fmt.Sprintf(`SELECT %s FROM signatures_devis WHERE id = $1`, signatureColumns)
	s, err := scanSignature(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.SignatureNotFound(0)
	}
	if err != nil {
		return nil, fmt.Errorf("find signature %d: %w", id, err)
	}
	return s, nil
}

// FindByDevisID returns every signature ever captured for a devis, oldest first.
func (r *SignatureRepository) FindByDevisID(ctx context.Context, devisID int64) ([]*entities.SignatureDevis, error) {
	query := fmt.Sprintf(`SELECT %s FROM signatures_devis WHERE devis_id = $1 ORDER BY created_at`, signatureColumns)
	rows, err := r.db.QueryContext(ctx, query, devisID)
	if err != nil {
		return nil, fmt.Errorf("find signatures of devis %d: %w", devisID, err)
	}
	defer rows.Close()
	var out []*entities.SignatureDevis
	for rows.Next() {
		s, err := scanSignature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindActiveByDevisID returns the current non-revoked signature of a devis, if any.
func (r *SignatureRepository) FindActiveByDevisID(ctx context.Context, devisID int64) (*entities.SignatureDevis, error) {
	query := fmt.Sprintf(`SELECT %s FROM signatures_devis WHERE devis_id = $1 AND valide = TRUE AND revoquee = FALSE ORDER BY created_at DESC LIMIT 1`, signatureColumns)
	s, err := scanSignature(r.db.QueryRowContext(ctx, query, devisID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.SignatureNotFound(devisID)
	}
	if err != nil {
		return nil, fmt.Errorf("find active signature of devis %d: %w", devisID, err)
	}
	return s, nil
}
