package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// Comparatif is a snapshot of the differences between two versions of a
// devis (source -> cible), along with the aggregate money deltas.
type Comparatif struct {
	ID                  int64
	DevisSourceID       int64
	DevisCibleID        int64
	EcartMontantHT      decimal.Decimal
	EcartMontantTTC     decimal.Decimal
	EcartMargePct       decimal.Decimal
	EcartDebourseTotal  decimal.Decimal
	NombreAjouts        int
	NombreSuppressions  int
	NombreModifications int
	NombreIdentiques    int

	CreatedAt time.Time
}

// NbTotal is the total number of matched/unmatched lines this comparison
// covers: nombre_ajouts + nombre_suppressions + nombre_modifications +
// nombre_identiques.
func (c *Comparatif) NbTotal() int {
	return c.NombreAjouts + c.NombreSuppressions + c.NombreModifications + c.NombreIdentiques
}

// NewComparatif validates and builds a comparison shell; the aggregate
// figures and line records are filled in by the comparison engine.
func NewComparatif(devisSourceID, devisCibleID int64) (*Comparatif, error) {
	if devisSourceID <= 0 || devisCibleID <= 0 {
		return nil, errors.Validation("ComparatifValidationError", "les deux devis a comparer sont obligatoires")
	}
	if devisSourceID == devisCibleID {
		return nil, errors.Validation("ComparatifValidationError", "un devis ne peut pas etre compare a lui-meme")
	}
	return &Comparatif{
		DevisSourceID: devisSourceID,
		DevisCibleID:  devisCibleID,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
