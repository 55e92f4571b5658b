package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// AttestationTVA is the regulatory CERFA cover required when a reduced VAT
// rate applies to a devis.
type AttestationTVA struct {
	ID             int64
	DevisID        int64
	CodeCERFA      string
	TauxTVA        decimal.Decimal
	ClientNom      string
	ClientAdresse  string
	BatimentPlus2Ans  bool
	UsageHabitation   bool
	Signataire     string
	DateGeneration time.Time
	Signee         bool
	SigneeAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAttestationTVA validates and builds a new attestation. The VAT rate
// must already have been checked for eligibility by the caller (use case).
func NewAttestationTVA(devisID int64, codeCERFA string, tauxTVA decimal.Decimal, clientNom string) (*AttestationTVA, error) {
	if devisID <= 0 {
		return nil, errors.AttestationValidation("l'identifiant du devis est obligatoire")
	}
	if codeCERFA == "" {
		return nil, errors.AttestationValidation("le code CERFA est obligatoire")
	}
	if clientNom == "" {
		return nil, errors.AttestationValidation("le nom du client est obligatoire")
	}
	now := time.Now().UTC()
	return &AttestationTVA{
		DevisID: devisID, CodeCERFA: codeCERFA, TauxTVA: tauxTVA, ClientNom: clientNom,
		DateGeneration: now, CreatedAt: now, UpdatedAt: now,
	}, nil
}

// EstValide reports whether all mandatory fields are present.
func (a *AttestationTVA) EstValide() bool {
	return a.CodeCERFA != "" && a.ClientNom != "" && a.Signataire != ""
}

// Signer timestamps the attestation's signature.
func (a *AttestationTVA) Signer() error {
	if a.Signataire == "" {
		return errors.AttestationValidation("le signataire doit etre renseigne avant signature")
	}
	now := time.Now().UTC()
	a.Signee = true
	a.SigneeAt = &now
	a.UpdatedAt = now
	return nil
}
