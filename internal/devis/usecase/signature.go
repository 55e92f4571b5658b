package usecase

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

var statutsSignables = map[valueobjects.StatutDevis]bool{
	valueobjects.Envoye:        true,
	valueobjects.Vu:            true,
	valueobjects.EnNegociation: true,
}

// SignatureUseCase creates, revokes, and verifies electronic signatures
// on devis, following an eIDAS-style capture contract: hash, identity,
// network context, timestamp.
type SignatureUseCase struct {
	devis      repository.DevisRepository
	signatures repository.SignatureRepository
	journal    repository.JournalRepository
}

// NewSignatureUseCase wires the use case's collaborators.
func NewSignatureUseCase(devis repository.DevisRepository, signatures repository.SignatureRepository, journal repository.JournalRepository) *SignatureUseCase {
	return &SignatureUseCase{devis: devis, signatures: signatures, journal: journal}
}

// CalculerHash computes the SHA-512 hex digest over the canonical JSON of
// the quote fields that participate in document integrity: numero, client
// identity, objet, totals, global margin, default VAT rate, and validity
// date.
func CalculerHash(d *entities.Devis) string {
	var dateValidite string
	if d.DateValidite != nil {
		dateValidite = d.DateValidite.UTC().Format(time.RFC3339)
	}
	canon := map[string]any{
		"numero":            d.Numero,
		"client_nom":        d.ClientNom,
		"client_adresse":    d.ClientAdresse,
		"client_email":      d.ClientEmail,
		"objet":             d.Objet,
		"montant_ht":        d.MontantTotalHT.String(),
		"montant_ttc":       d.MontantTotalTTC.String(),
		"taux_marge_global": d.TauxMargeGlobal.String(),
		"taux_tva_defaut":   d.TauxTVADefaut.String(),
		"date_validite":     dateValidite,
	}
	keys := make([]string, 0, len(canon))
	for k := range canon {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make([]byte, 0, 256)
	ordered = append(ordered, '{')
	for i, k := range keys {
		if i > 0 {
			ordered = append(ordered, ',')
		}
		kv, _ := json.Marshal(map[string]any{k: canon[k]})
		ordered = append(ordered, kv[1:len(kv)-1]...)
	}
	ordered = append(ordered, '}')
	sum := sha512.Sum512(ordered)
	return hex.EncodeToString(sum[:])
}

// Creer signs devisID. Requires status in {ENVOYE, VU, EN_NEGOCIATION}
// and no active signature; transitions the quote to ACCEPTE.
func (uc *SignatureUseCase) Creer(ctx context.Context, devisID int64, typ valueobjects.TypeSignature, signataire string, payload []byte, adresseIP, userAgent string) (*entities.SignatureDevis, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	if !statutsSignables[d.Statut] {
		return nil, errors.DevisNonSignable(string(d.Statut))
	}
	existante, err := uc.signatures.FindActiveByDevisID(ctx, devisID)
	if err != nil && !errors.EstNotFound(err) {
		return nil, err
	}
	if existante != nil {
		return nil, errors.DevisDejaSigne(devisID)
	}

	hash := CalculerHash(d)
	sig, err := entities.NewSignatureDevis(devisID, typ, signataire, payload, adresseIP, hash)
	if err != nil {
		return nil, err
	}
	sig.UserAgent = userAgent

	if err := d.Transitionner(valueobjects.Accepte); err != nil {
		return nil, err
	}
	if err := uc.devis.Save(ctx, d); err != nil {
		return nil, err
	}
	if err := uc.signatures.Save(ctx, sig); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "signature_creee", nil, nil))
	return sig, nil
}

// Revoquer revokes the active signature of devisID (admin only at the
// transport layer). Requires a non-empty motive and transitions the
// quote back to EN_NEGOCIATION.
func (uc *SignatureUseCase) Revoquer(ctx context.Context, devisID int64, par int64, motif string) error {
	sig, err := uc.signatures.FindActiveByDevisID(ctx, devisID)
	if err != nil {
		return err
	}
	if sig == nil {
		return errors.SignatureNotFound(devisID)
	}
	if err := sig.Revoquer(par, motif); err != nil {
		return err
	}
	if err := uc.signatures.Save(ctx, sig); err != nil {
		return err
	}

	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return err
	}
	if err := d.Transitionner(valueobjects.EnNegociation); err != nil {
		return err
	}
	if err := uc.devis.Save(ctx, d); err != nil {
		return err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "signature_revoquee", &par, nil))
	return nil
}

// VerificationResult is the outcome of a signature verification.
type VerificationResult struct {
	EstSigne      bool
	EstValide     bool
	HashesIdentiques bool
	Message       string
}

// Verifier recomputes the document hash and compares it to the stored
// signature's hash.
func (uc *SignatureUseCase) Verifier(ctx context.Context, devisID int64) (VerificationResult, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return VerificationResult{}, err
	}
	sig, err := uc.signatures.FindActiveByDevisID(ctx, devisID)
	if err != nil {
		return VerificationResult{}, err
	}
	if sig == nil {
		return VerificationResult{Message: "aucune signature active pour ce devis"}, nil
	}

	hashActuel := CalculerHash(d)
	identiques := hashActuel == sig.HashSHA512
	message := "la signature est valide et le document n'a pas ete modifie"
	if !identiques {
		message = "le hash ne correspond plus: le document a ete modifie depuis la signature"
	} else if !sig.EstValide() {
		message = "la signature a ete revoquee"
	}
	return VerificationResult{
		EstSigne:         true,
		EstValide:        sig.EstValide(),
		HashesIdentiques: identiques,
		Message:          message,
	}, nil
}
