package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// Ligne is a leaf line item under a Lot.
type Ligne struct {
	ID          int64
	LotID       int64
	CodeLigne   string
	Designation string
	Unite       valueobjects.UniteArticle
	Quantite    decimal.Decimal
	PrixUnitaireHT decimal.Decimal
	TauxTVA     decimal.Decimal
	Marge       *decimal.Decimal // line-level margin override
	ArticleID   *int64
	Ordre       int
	Verrouille  bool

	// Cached, recomputed figures.
	MontantHT     decimal.Decimal
	MontantTTC    decimal.Decimal
	DebourseSec   decimal.Decimal
	PrixRevient   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	DeletedBy *int64
}

// NewLigne validates and builds a new line under lotID.
func NewLigne(lotID int64, designation string, unite valueobjects.UniteArticle, quantite, prixUnitaireHT, tauxTVA decimal.Decimal, ordre int) (*Ligne, error) {
	if lotID <= 0 {
		return nil, errors.Validation("LigneDevisValidationError", "l'identifiant du lot est obligatoire")
	}
	if designation == "" {
		return nil, errors.Validation("LigneDevisValidationError", "la designation de la ligne est obligatoire")
	}
	if quantite.IsNegative() {
		return nil, errors.Validation("LigneDevisValidationError", "la quantite ne peut pas etre negative")
	}
	if prixUnitaireHT.IsNegative() {
		return nil, errors.Validation("LigneDevisValidationError", "le prix unitaire ne peut pas etre negatif")
	}
	now := time.Now().UTC()
	return &Ligne{
		LotID:          lotID,
		Designation:    designation,
		Unite:          unite,
		Quantite:       quantite,
		PrixUnitaireHT: prixUnitaireHT,
		TauxTVA:        tauxTVA,
		Ordre:          ordre,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ModifierQuantite changes the quantity, rejecting the change if the line is locked.
func (l *Ligne) ModifierQuantite(nouvelle decimal.Decimal) error {
	if l.Verrouille {
		return errors.Validation("LigneDevisValidationError", "la ligne est verrouillee, la quantite ne peut pas etre modifiee")
	}
	if nouvelle.IsNegative() {
		return errors.Validation("LigneDevisValidationError", "la quantite ne peut pas etre negative")
	}
	l.Quantite = nouvelle
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// EstSupprime reports whether the line has been soft-deleted.
func (l *Ligne) EstSupprime() bool { return l.DeletedAt != nil }

// Supprimer marks the line as soft-deleted.
func (l *Ligne) Supprimer(deletedBy int64) {
	now := time.Now().UTC()
	l.DeletedAt = &now
	l.DeletedBy = &deletedBy
}
