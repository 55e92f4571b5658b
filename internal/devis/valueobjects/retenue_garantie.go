package valueobjects

import (
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// RetenueGarantie is a retention-of-guarantee rate restricted to {0, 5, 10}.
type RetenueGarantie struct {
	taux decimal.Decimal
}

var retenueAutorisees = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(10),
}

// NewRetenueGarantie validates and builds a RetenueGarantie value object.
func NewRetenueGarantie(taux decimal.Decimal) (RetenueGarantie, error) {
	for _, t := range retenueAutorisees {
		if t.Equal(taux) {
			return RetenueGarantie{taux: t}, nil
		}
	}
	return RetenueGarantie{}, errors.RetenueGarantieInvalide(taux.String())
}

// Taux returns the retention rate as a percentage.
func (r RetenueGarantie) Taux() decimal.Decimal { return r.taux }

// CalculerMontant computes the retained amount, rounded half-up to 2 decimals.
func (r RetenueGarantie) CalculerMontant(montantTTC decimal.Decimal) decimal.Decimal {
	return montantTTC.Mul(r.taux).Div(decimal.NewFromInt(100)).Round(2)
}

// MontantNetAPayer computes TTC minus the retained amount.
func (r RetenueGarantie) MontantNetAPayer(montantTTC decimal.Decimal) decimal.Decimal {
	return montantTTC.Sub(r.CalculerMontant(montantTTC))
}
