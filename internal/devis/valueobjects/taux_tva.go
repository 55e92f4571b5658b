package valueobjects

import (
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// TauxTVA is a regulatory VAT rate restricted to {0, 5.5, 10, 20}.
type TauxTVA struct {
	taux decimal.Decimal
}

var tauxAutorises = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromFloat(5.5),
	decimal.NewFromInt(10),
	decimal.NewFromInt(20),
}

var cerfaParTaux = map[string]string{
	"5.5": "1301-SD",
	"10":  "1300-SD",
}

var libelleParTaux = map[string]string{
	"0":   "TVA 0% (autoliquidation sous-traitance)",
	"5.5": "TVA reduite 5.5%",
	"10":  "TVA intermediaire 10%",
	"20":  "TVA standard 20%",
}

// NewTauxTVA validates and builds a TauxTVA value object.
func NewTauxTVA(taux decimal.Decimal) (TauxTVA, error) {
	for _, t := range tauxAutorises {
		if t.Equal(taux) {
			return TauxTVA{taux: t}, nil
		}
	}
	return TauxTVA{}, errors.TauxTVAInvalide(taux.String())
}

// Taux returns the VAT rate as a percentage.
func (t TauxTVA) Taux() decimal.Decimal { return t.taux }

// NecessiteAttestation reports whether a CERFA attestation is required (rate < 20).
func (t TauxTVA) NecessiteAttestation() bool {
	return t.taux.LessThan(decimal.NewFromInt(20))
}

// TypeCerfa returns the CERFA form number required for this rate, or "" for 0% and 20%.
func (t TauxTVA) TypeCerfa() string {
	return cerfaParTaux[t.taux.String()]
}

// Libelle returns the human-readable label for the rate.
func (t TauxTVA) Libelle() string {
	return libelleParTaux[t.taux.String()]
}

// CalculerMontantTVA computes the VAT amount on an HT base, rounded half-up to 2 decimals.
func (t TauxTVA) CalculerMontantTVA(montantHT decimal.Decimal) decimal.Decimal {
	return montantHT.Mul(t.taux).Div(decimal.NewFromInt(100)).Round(2)
}

// TauxTVADefautPourChantier implements the BTP default-rate policy:
// energy-renovation dwellings older than 2 years -> 5.5%, plain renovation -> 10%,
// everything else -> 20%.
func TauxTVADefautPourChantier(typeTravaux string, batimentPlus2Ans, usageHabitation bool) decimal.Decimal {
	if !batimentPlus2Ans || !usageHabitation {
		return decimal.NewFromInt(20)
	}
	switch typeTravaux {
	case "renovation_energetique":
		return decimal.NewFromFloat(5.5)
	case "renovation":
		return decimal.NewFromInt(10)
	default:
		return decimal.NewFromInt(20)
	}
}
