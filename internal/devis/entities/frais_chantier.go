package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// FraisChantier is a site-overhead charge allocated across a devis, either
// globally or pro-rata across lines, and optionally pinned to a single lot.
type FraisChantier struct {
	ID            int64
	DevisID       int64
	Type          valueobjects.TypeFraisChantier
	Libelle       string
	MontantHT     decimal.Decimal
	ModeRepartition valueobjects.ModeRepartition
	TauxTVA       decimal.Decimal
	LotID         *int64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewFraisChantier validates and builds a new site-overhead charge.
func NewFraisChantier(devisID int64, typ valueobjects.TypeFraisChantier, libelle string, montantHT decimal.Decimal, mode valueobjects.ModeRepartition, tauxTVA decimal.Decimal) (*FraisChantier, error) {
	if devisID <= 0 {
		return nil, errors.FraisChantierValidation("l'identifiant du devis est obligatoire")
	}
	if libelle == "" {
		return nil, errors.FraisChantierValidation("le libelle est obligatoire")
	}
	if montantHT.IsNegative() {
		return nil, errors.FraisChantierValidation("le montant ne peut pas etre negatif")
	}
	now := time.Now().UTC()
	return &FraisChantier{
		DevisID: devisID, Type: typ, Libelle: libelle, MontantHT: montantHT,
		ModeRepartition: mode, TauxTVA: tauxTVA, CreatedAt: now, UpdatedAt: now,
	}, nil
}

// EstSupprime reports whether the charge has been soft-deleted.
func (f *FraisChantier) EstSupprime() bool { return f.DeletedAt != nil }

// Supprimer marks the charge as soft-deleted.
func (f *FraisChantier) Supprimer() {
	now := time.Now().UTC()
	f.DeletedAt = &now
}
