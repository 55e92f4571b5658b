// Package services holds the devis module's stateless domain services:
// pure functions over entities and value objects, with no persistence
// dependency, analogous to the teacher's detector services.
package services

import (
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// NiveauResolutionMarge identifies which level of the hierarchy supplied
// the resolved margin rate.
type NiveauResolutionMarge string

const (
	NiveauLigne        NiveauResolutionMarge = "ligne"
	NiveauLot          NiveauResolutionMarge = "lot"
	NiveauTypeDebourse NiveauResolutionMarge = "type_debourse"
	NiveauGlobal       NiveauResolutionMarge = "global"
)

// MargeResolue is the result of margin resolution, carrying the resolved
// rate and the hierarchy level it came from for traceability.
type MargeResolue struct {
	Taux   decimal.Decimal
	Niveau NiveauResolutionMarge
}

// MargeService resolves the margin rate applicable to a line following the
// line > lot > discharge-type > global precedence.
type MargeService struct{}

// NewMargeService builds a MargeService. Stateless; exported for parity
// with the other domain services and for explicit dependency injection.
func NewMargeService() *MargeService { return &MargeService{} }

// ResoudreMarge resolves the margin applicable to a line.
func (MargeService) ResoudreMarge(ligneMarge, lotMarge *decimal.Decimal, devis *entities.Devis, debourses []*entities.DebourseDetail) MargeResolue {
	if ligneMarge != nil {
		return MargeResolue{Taux: *ligneMarge, Niveau: NiveauLigne}
	}
	if lotMarge != nil {
		return MargeResolue{Taux: *lotMarge, Niveau: NiveauLot}
	}
	if len(debourses) > 0 {
		typePrincipal, ok := typePrincipalDebourse(debourses)
		if ok {
			if margeType := margeParType(devis, typePrincipal); margeType != nil {
				return MargeResolue{Taux: *margeType, Niveau: NiveauTypeDebourse}
			}
		}
	}
	return MargeResolue{Taux: devis.TauxMargeGlobal, Niveau: NiveauGlobal}
}

// typePrincipalDebourse returns the discharge type carrying the highest
// monetary weight among the line's discharges. Ties resolve to whichever
// type reaches the top first in input order, matching the teacher's
// first-match-wins semantics over an unordered map.
func typePrincipalDebourse(debourses []*entities.DebourseDetail) (valueobjects.TypeDebourse, bool) {
	totaux := make(map[valueobjects.TypeDebourse]decimal.Decimal)
	ordre := make([]valueobjects.TypeDebourse, 0, len(debourses))
	for _, d := range debourses {
		montant := d.Quantite.Mul(d.PrixUnitaire)
		if _, seen := totaux[d.TypeDebourse]; !seen {
			ordre = append(ordre, d.TypeDebourse)
		}
		totaux[d.TypeDebourse] = totaux[d.TypeDebourse].Add(montant)
	}
	if len(ordre) == 0 {
		return "", false
	}
	meilleur := ordre[0]
	for _, t := range ordre[1:] {
		if totaux[t].GreaterThan(totaux[meilleur]) {
			meilleur = t
		}
	}
	return meilleur, true
}

// margeParType looks up the per-discharge-type margin override configured
// on the devis, if any.
func margeParType(devis *entities.Devis, typ valueobjects.TypeDebourse) *decimal.Decimal {
	switch typ {
	case valueobjects.MOE:
		return devis.TauxMargeMOE
	case valueobjects.Materiaux:
		return devis.TauxMargeMateriaux
	case valueobjects.SousTraitance:
		return devis.TauxMargeSousTraitance
	case valueobjects.Materiel:
		return devis.TauxMargeMateriel
	case valueobjects.Deplacement:
		return devis.TauxMargeDeplacement
	default:
		return nil
	}
}

var cent = decimal.NewFromInt(100)
var un = decimal.NewFromInt(1)

// CalculerPrixRevient computes prix de revient = debourse_sec * (1 + coeff_fg/100).
func (MargeService) CalculerPrixRevient(debourseSec, coefficientFraisGeneraux decimal.Decimal) decimal.Decimal {
	return debourseSec.Mul(un.Add(coefficientFraisGeneraux.Div(cent)))
}

// CalculerPrixVenteHT computes prix de vente HT = prix de revient * (1 + taux_marge/100).
func (MargeService) CalculerPrixVenteHT(prixRevient, tauxMarge decimal.Decimal) decimal.Decimal {
	return prixRevient.Mul(un.Add(tauxMarge.Div(cent)))
}
