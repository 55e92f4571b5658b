package entities

import (
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// ComparatifLigne is a single matched (or unmatched) line record within a
// Comparatif, carrying both sides of the line and the resulting delta kind.
type ComparatifLigne struct {
	ID               int64
	ComparatifID     int64
	CleRapprochement string // "article:<id>" or "lot:<titre>|desig:<designation>"
	LigneSourceID    *int64
	LigneCibleID     *int64
	Type             valueobjects.TypeEcart
	DesignationSource string
	DesignationCible  string

	QuantiteSource decimal.Decimal
	QuantiteCible  decimal.Decimal
	EcartQuantite  decimal.Decimal

	PrixUnitaireSourceHT decimal.Decimal
	PrixUnitaireCibleHT  decimal.Decimal
	EcartPrixUnitaireHT  decimal.Decimal

	MontantSourceHT decimal.Decimal
	MontantCibleHT  decimal.Decimal
	EcartMontantHT  decimal.Decimal

	DebourseSecSource decimal.Decimal
	DebourseSecCible  decimal.Decimal
	EcartDebourseSec  decimal.Decimal
}

// NewComparatifLigne builds a diff record for one matched key.
func NewComparatifLigne(comparatifID int64, cle string, typ valueobjects.TypeEcart) *ComparatifLigne {
	return &ComparatifLigne{
		ComparatifID:     comparatifID,
		CleRapprochement: cle,
		Type:             typ,
	}
}

// CalculerEcart derives every delta as cible - source.
func (c *ComparatifLigne) CalculerEcart() {
	c.EcartQuantite = c.QuantiteCible.Sub(c.QuantiteSource)
	c.EcartPrixUnitaireHT = c.PrixUnitaireCibleHT.Sub(c.PrixUnitaireSourceHT)
	c.EcartMontantHT = c.MontantCibleHT.Sub(c.MontantSourceHT)
	c.EcartDebourseSec = c.DebourseSecCible.Sub(c.DebourseSecSource)
}
