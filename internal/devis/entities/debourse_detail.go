package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DebourseDetail is a direct-cost component of a line: one of labor,
// materials, subcontracting, equipment, or travel.
type DebourseDetail struct {
	ID            int64
	LigneID       int64
	TypeDebourse  valueobjects.TypeDebourse
	Libelle       string
	Quantite      decimal.Decimal
	PrixUnitaire  decimal.Decimal
	Metier        *valueobjects.TypeMetier // only meaningful when TypeDebourse == MOE
	TauxHoraire   *decimal.Decimal         // only meaningful when TypeDebourse == MOE
	Total         decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDebourseDetail validates and builds a new discharge detail.
func NewDebourseDetail(ligneID int64, kind valueobjects.TypeDebourse, libelle string, quantite, prixUnitaire decimal.Decimal) (*DebourseDetail, error) {
	if ligneID <= 0 {
		return nil, errors.Validation("DebourseDetailValidationError", "l'identifiant de la ligne est obligatoire")
	}
	if libelle == "" {
		return nil, errors.Validation("DebourseDetailValidationError", "le libelle du debourse est obligatoire")
	}
	if quantite.IsNegative() {
		return nil, errors.Validation("DebourseDetailValidationError", "la quantite ne peut pas etre negative")
	}
	if prixUnitaire.IsNegative() {
		return nil, errors.Validation("DebourseDetailValidationError", "le prix unitaire ne peut pas etre negatif")
	}
	now := time.Now().UTC()
	d := &DebourseDetail{
		LigneID:      ligneID,
		TypeDebourse: kind,
		Libelle:      libelle,
		Quantite:     quantite,
		PrixUnitaire: prixUnitaire,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	d.Total = d.MontantCalcule()
	return d, nil
}

// MontantCalcule is quantite * prix_unitaire.
func (d *DebourseDetail) MontantCalcule() decimal.Decimal {
	return d.Quantite.Mul(d.PrixUnitaire)
}

// EstMOE reports whether this is a labor discharge.
func (d *DebourseDetail) EstMOE() bool { return d.TypeDebourse.EstMOE() }
