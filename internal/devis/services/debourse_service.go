package services

import (
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DecomposeDebourse aggregates a line's discharges by type, giving the
// internal cost-breakdown view of a devis line.
type DecomposeDebourse struct {
	LigneID             int64
	TotalMOE            decimal.Decimal
	TotalMateriaux      decimal.Decimal
	TotalSousTraitance  decimal.Decimal
	TotalMateriel       decimal.Decimal
	TotalDeplacement    decimal.Decimal
	DetailsParType      map[valueobjects.TypeDebourse][]DetailDebourse
}

// DetailDebourse is one line item within the decomposed view.
type DetailDebourse struct {
	ID           int64
	Libelle      string
	Quantite     decimal.Decimal
	PrixUnitaire decimal.Decimal
	Montant      decimal.Decimal
	Metier       *valueobjects.TypeMetier
	TauxHoraire  *decimal.Decimal
}

// DebourseSec returns the total direct cost across all discharge types.
func (d DecomposeDebourse) DebourseSec() decimal.Decimal {
	return d.TotalMOE.Add(d.TotalMateriaux).Add(d.TotalSousTraitance).Add(d.TotalMateriel).Add(d.TotalDeplacement)
}

// DebourseService decomposes a line's raw discharge details into the
// per-type aggregated view used for cost-buildup presentation.
type DebourseService struct{}

// NewDebourseService builds a DebourseService.
func NewDebourseService() *DebourseService { return &DebourseService{} }

// Decomposer breaks down debourses into per-type totals and detail rows.
func (DebourseService) Decomposer(ligneID int64, debourses []*entities.DebourseDetail) DecomposeDebourse {
	result := DecomposeDebourse{
		LigneID:        ligneID,
		DetailsParType: make(map[valueobjects.TypeDebourse][]DetailDebourse),
	}
	for _, deb := range debourses {
		montant := deb.Quantite.Mul(deb.PrixUnitaire)
		switch deb.TypeDebourse {
		case valueobjects.MOE:
			result.TotalMOE = result.TotalMOE.Add(montant)
		case valueobjects.Materiaux:
			result.TotalMateriaux = result.TotalMateriaux.Add(montant)
		case valueobjects.SousTraitance:
			result.TotalSousTraitance = result.TotalSousTraitance.Add(montant)
		case valueobjects.Materiel:
			result.TotalMateriel = result.TotalMateriel.Add(montant)
		case valueobjects.Deplacement:
			result.TotalDeplacement = result.TotalDeplacement.Add(montant)
		}

		detail := DetailDebourse{
			ID:           deb.ID,
			Libelle:      deb.Libelle,
			Quantite:     deb.Quantite,
			PrixUnitaire: deb.PrixUnitaire,
			Montant:      montant,
		}
		if deb.EstMOE() {
			detail.Metier = deb.Metier
			detail.TauxHoraire = deb.TauxHoraire
		}
		result.DetailsParType[deb.TypeDebourse] = append(result.DetailsParType[deb.TypeDebourse], detail)
	}
	return result
}

// CalculerDebourseSec sums quantite * prix_unitaire across all discharges.
func (DebourseService) CalculerDebourseSec(debourses []*entities.DebourseDetail) decimal.Decimal {
	total := decimal.Zero
	for _, deb := range debourses {
		total = total.Add(deb.Quantite.Mul(deb.PrixUnitaire))
	}
	return total
}
