// Package usecase implements the planning-charge module's application
// operations: the cross-chantier workload aggregator and the
// BesoinCharge write paths, following the teacher's use-case-per-file
// layout under internal/services.
package usecase

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pinggolf/btp-planning-core/internal/planningcharge/cache"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/entities"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/providers"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/repository"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// heuresParSemaine is the standard work week used to turn a weekly hour
// deficit into a headcount for ARecruter. Capacity itself comes from
// AffectationProvider.CapacitePar.
const heuresParSemaine = 35.0

// Cellule is one chantier x week cell in the planning grid.
type Cellule struct {
	ChantierID int64
	Semaine    valueobjects.Semaine
	Planifie   float64
	Besoin     float64
	NonCouvert float64
	HasBesoin  bool
}

// PiedDeSemaine is the footer row aggregated for a single week.
type PiedDeSemaine struct {
	Semaine        valueobjects.Semaine
	TauxOccupation valueobjects.TauxOccupation
	ARecruter      int
	APlacer        int
}

// PlanningCharge is the full aggregator result.
type PlanningCharge struct {
	Chantiers []providers.Chantier
	Semaines  []valueobjects.Semaine
	Cellules  []Cellule
	Pieds     []PiedDeSemaine
}

// GetPlanningChargeParams are the aggregator's inputs.
type GetPlanningChargeParams struct {
	Debut     valueobjects.Semaine
	Fin       valueobjects.Semaine
	Recherche string
	Unite     valueobjects.UniteCharge
}

// GetPlanningChargeUseCase assembles the cross-chantier, cross-week
// workload grid from the BesoinCharge store and the chantier/affectation
// providers, invalidated on every BesoinCharge write via planningCache.
type GetPlanningChargeUseCase struct {
	besoins     repository.BesoinChargeRepository
	chantiers   providers.ChantierProvider
	affectation providers.AffectationProvider
	planningCache *cache.PlanningCache
}

// NewGetPlanningChargeUseCase wires the aggregator's collaborators.
func NewGetPlanningChargeUseCase(besoins repository.BesoinChargeRepository, chantiers providers.ChantierProvider, affectation providers.AffectationProvider, planningCache *cache.PlanningCache) *GetPlanningChargeUseCase {
	return &GetPlanningChargeUseCase{besoins: besoins, chantiers: chantiers, affectation: affectation, planningCache: planningCache}
}

// Executer runs the aggregator for the given parameters.
func (uc *GetPlanningChargeUseCase) Executer(ctx context.Context, params GetPlanningChargeParams) (*PlanningCharge, error) {
	if cached, ok := uc.planningCache.Get(params.Debut, params.Fin, params.Recherche); ok {
		return cached.(*PlanningCharge), nil
	}

	semaines, err := valueobjects.SequenceSemaines(params.Debut, params.Fin)
	if err != nil {
		return nil, err
	}

	var chantiers []providers.Chantier
	var besoinsTous []*entities.BesoinCharge
	var planifieParChantier = make(map[int64]map[valueobjects.Semaine]float64)
	var capacite map[valueobjects.Semaine]float64
	var nonAffectes map[valueobjects.Semaine]int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chantiers, err = uc.chantiers.ListerActifs(gctx, params.Recherche)
		return err
	})
	g.Go(func() error {
		var err error
		besoinsTous, err = uc.besoins.FindInRange(gctx, params.Debut, params.Fin)
		return err
	})
	g.Go(func() error {
		var err error
		capacite, err = uc.affectation.CapacitePar(gctx, semaines)
		return err
	})
	g.Go(func() error {
		var err error
		nonAffectes, err = uc.affectation.UtilisateursNonAffectes(gctx, semaines)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Planned hours per chantier is fanned out after chantiers is known,
	// since it depends on the chantier list loaded above.
	g2, gctx2 := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for _, c := range chantiers {
		c := c
		g2.Go(func() error {
			planifie, err := uc.affectation.HeuresPlanifiees(gctx2, c.ID, semaines)
			if err != nil {
				return err
			}
			mu.Lock()
			planifieParChantier[c.ID] = planifie
			mu.Unlock()
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	besoinIndex := make(map[int64]map[valueobjects.Semaine]float64)
	for _, b := range besoinsTous {
		if besoinIndex[b.ChantierID] == nil {
			besoinIndex[b.ChantierID] = make(map[valueobjects.Semaine]float64)
		}
		besoinIndex[b.ChantierID][b.Semaine] += b.BesoinHeures
	}

	var cellules []Cellule
	for _, c := range chantiers {
		planifie := planifieParChantier[c.ID]
		besoinsChantier := besoinIndex[c.ID]
		for _, s := range semaines {
			p := planifie[s]
			bHeures, hasBesoin := besoinsChantier[s]
			nonCouvert := math.Max(bHeures-p, 0)
			cellules = append(cellules, Cellule{
				ChantierID: c.ID, Semaine: s, Planifie: p, Besoin: bHeures,
				NonCouvert: nonCouvert, HasBesoin: hasBesoin,
			})
		}
	}

	besoinTotalParSemaine := make(map[valueobjects.Semaine]float64)
	planifieTotalParSemaine := make(map[valueobjects.Semaine]float64)
	for _, cell := range cellules {
		besoinTotalParSemaine[cell.Semaine] += cell.Besoin
		planifieTotalParSemaine[cell.Semaine] += cell.Planifie
	}

	var pieds []PiedDeSemaine
	for _, s := range semaines {
		capaciteSemaine := capacite[s]
		tx := valueobjects.NewTauxOccupation(planifieTotalParSemaine[s], capaciteSemaine)
		aRecruter := 0
		if deficit := besoinTotalParSemaine[s] - capaciteSemaine; deficit > 0 {
			aRecruter = int(math.Round(deficit / heuresParSemaine))
			if aRecruter < 0 {
				aRecruter = 0
			}
		}
		pieds = append(pieds, PiedDeSemaine{
			Semaine:        s,
			TauxOccupation: tx,
			ARecruter:      aRecruter,
			APlacer:        nonAffectes[s],
		})
	}

	result := &PlanningCharge{Chantiers: chantiers, Semaines: semaines, Cellules: cellules, Pieds: pieds}
	uc.planningCache.Set(params.Debut, params.Fin, params.Recherche, result)
	return result, nil
}
