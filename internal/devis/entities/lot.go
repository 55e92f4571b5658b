package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// Lot is a section or sub-section of a quote, recursively nestable via ParentID.
type Lot struct {
	ID       int64
	DevisID  int64
	CodeLot  string
	Titre    string
	Ordre    int
	ParentID *int64

	Marge *decimal.Decimal // lot-level margin override, nil = not set

	MontantTotalHT  decimal.Decimal
	MontantTotalTTC decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	DeletedBy *int64
}

// NewLot validates and builds a new lot under devisID.
func NewLot(devisID int64, titre string, ordre int, parentID *int64) (*Lot, error) {
	if devisID <= 0 {
		return nil, errors.Validation("LotDevisValidationError", "l'identifiant du devis est obligatoire")
	}
	if titre == "" {
		return nil, errors.Validation("LotDevisValidationError", "le titre du lot est obligatoire")
	}
	if ordre < 0 {
		return nil, errors.Validation("LotDevisValidationError", "l'ordre du lot doit etre positif")
	}
	now := time.Now().UTC()
	return &Lot{
		DevisID:         devisID,
		Titre:           titre,
		Ordre:           ordre,
		ParentID:        parentID,
		MontantTotalHT:  decimal.Zero,
		MontantTotalTTC: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// EstSupprime reports whether the lot has been soft-deleted.
func (l *Lot) EstSupprime() bool { return l.DeletedAt != nil }

// Supprimer marks the lot as soft-deleted.
func (l *Lot) Supprimer(deletedBy int64) {
	now := time.Now().UTC()
	l.DeletedAt = &now
	l.DeletedBy = &deletedBy
}
