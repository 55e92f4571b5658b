package entities

import (
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// SignatureDevis is an electronic signature attached to a devis, captured
// in an eIDAS-style fashion: signatory identity, raw payload, network
// context, and an integrity hash over the signed document.
type SignatureDevis struct {
	ID          int64
	DevisID     int64
	Type        valueobjects.TypeSignature
	Signataire  string
	Payload     []byte
	AdresseIP   string
	UserAgent   string
	HashSHA512  string
	Valide      bool
	Revoquee    bool
	RevoqueePar *int64
	RevoqueeMotif string
	RevoqueeAt  *time.Time

	CreatedAt time.Time
}

// NewSignatureDevis validates and builds a new signature record.
func NewSignatureDevis(devisID int64, typ valueobjects.TypeSignature, signataire string, payload []byte, adresseIP, hashSHA512 string) (*SignatureDevis, error) {
	if devisID <= 0 {
		return nil, errors.SignatureValidation("l'identifiant du devis est obligatoire")
	}
	if signataire == "" {
		return nil, errors.SignatureValidation("le signataire est obligatoire")
	}
	if len(payload) == 0 {
		return nil, errors.SignatureValidation("le contenu signe ne peut pas etre vide")
	}
	if len(adresseIP) < 7 {
		return nil, errors.SignatureValidation("l'adresse IP est invalide")
	}
	if len(hashSHA512) != 128 {
		return nil, errors.SignatureValidation("le hash SHA-512 doit comporter 128 caracteres hexadecimaux")
	}
	return &SignatureDevis{
		DevisID:    devisID,
		Type:       typ,
		Signataire: signataire,
		Payload:    payload,
		AdresseIP:  adresseIP,
		HashSHA512: hashSHA512,
		Valide:     true,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// EstValide reports whether the signature is still in force.
func (s *SignatureDevis) EstValide() bool { return s.Valide && !s.Revoquee }

// Revoquer revokes the signature. A motive is mandatory, and a signature
// already revoked cannot be revoked again.
func (s *SignatureDevis) Revoquer(par int64, motif string) error {
	if s.Revoquee {
		return errors.SignatureValidation("la signature est deja revoquee")
	}
	if motif == "" {
		return errors.SignatureValidation("le motif de revocation est obligatoire")
	}
	now := time.Now().UTC()
	s.Revoquee = true
	s.Valide = false
	s.RevoqueePar = &par
	s.RevoqueeMotif = motif
	s.RevoqueeAt = &now
	return nil
}
