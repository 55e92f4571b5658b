package usecase

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	devisvo "github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/cache"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/entities"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/providers"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// fakeChantierProvider and fakeAffectationProvider are in-memory stand-ins
// for providers.ChantierProvider/AffectationProvider.
type fakeChantierProvider struct {
	chantiers []providers.Chantier
}

func (f *fakeChantierProvider) ListerActifs(ctx context.Context, recherche string) ([]providers.Chantier, error) {
	return f.chantiers, nil
}

type fakeAffectationProvider struct {
	planifie    map[int64]map[valueobjects.Semaine]float64
	capacite    map[valueobjects.Semaine]float64
	nonAffectes map[valueobjects.Semaine]int
}

func (f *fakeAffectationProvider) HeuresPlanifiees(ctx context.Context, chantierID int64, semaines []valueobjects.Semaine) (map[valueobjects.Semaine]float64, error) {
	return f.planifie[chantierID], nil
}

func (f *fakeAffectationProvider) CapacitePar(ctx context.Context, semaines []valueobjects.Semaine) (map[valueobjects.Semaine]float64, error) {
	return f.capacite, nil
}

func (f *fakeAffectationProvider) UtilisateursNonAffectes(ctx context.Context, semaines []valueobjects.Semaine) (map[valueobjects.Semaine]int, error) {
	return f.nonAffectes, nil
}

func TestGetPlanningChargeUseCaseExecuterAssembleLaGrille(t *testing.T) {
	s1, _ := valueobjects.NewSemaine(2026, 1)
	s2, _ := valueobjects.NewSemaine(2026, 2)

	besoinRepo := newFakeBesoinChargeRepository()
	besoin, err := entities.NewBesoinCharge(1, s1, devisvo.Macon, 70, 1)
	if err != nil {
		t.Fatalf("NewBesoinCharge: %v", err)
	}
	if err := besoinRepo.Save(context.Background(), besoin); err != nil {
		t.Fatalf("Save: %v", err)
	}

	chantierProvider := &fakeChantierProvider{chantiers: []providers.Chantier{{ID: 1, Code: "C1", Nom: "Chantier 1"}}}
	affectationProvider := &fakeAffectationProvider{
		planifie:    map[int64]map[valueobjects.Semaine]float64{1: {s1: 35}},
		capacite:    map[valueobjects.Semaine]float64{s1: 70, s2: 70},
		nonAffectes: map[valueobjects.Semaine]int{s1: 0, s2: 1},
	}

	uc := NewGetPlanningChargeUseCase(besoinRepo, chantierProvider, affectationProvider, cache.NewPlanningCache())

	result, err := uc.Executer(context.Background(), GetPlanningChargeParams{Debut: s1, Fin: s2})
	if err != nil {
		t.Fatalf("Executer: %v", err)
	}
	wantChantiers := []providers.Chantier{{ID: 1, Code: "C1", Nom: "Chantier 1"}}
	if diff := cmp.Diff(wantChantiers, result.Chantiers); diff != "" {
		t.Fatalf("unexpected chantiers (-want +got):\n%s", diff)
	}
	if len(result.Cellules) != 2 {
		t.Fatalf("expected 2 cellules (1 chantier x 2 semaines), got %d", len(result.Cellules))
	}
	for _, cell := range result.Cellules {
		if cell.Semaine.Equal(s1) {
			if cell.Besoin != 70 || cell.Planifie != 35 || cell.NonCouvert != 35 {
				t.Fatalf("unexpected cellule for s1: %+v", cell)
			}
		}
	}
}

func TestGetPlanningChargeUseCaseExecuterUtiliseLeCache(t *testing.T) {
	s1, _ := valueobjects.NewSemaine(2026, 1)
	s2, _ := valueobjects.NewSemaine(2026, 2)

	besoinRepo := newFakeBesoinChargeRepository()
	chantierProvider := &fakeChantierProvider{}
	affectationProvider := &fakeAffectationProvider{
		planifie:    map[int64]map[valueobjects.Semaine]float64{},
		capacite:    map[valueobjects.Semaine]float64{},
		nonAffectes: map[valueobjects.Semaine]int{},
	}
	planningCache := cache.NewPlanningCache()
	uc := NewGetPlanningChargeUseCase(besoinRepo, chantierProvider, affectationProvider, planningCache)

	params := GetPlanningChargeParams{Debut: s1, Fin: s2}
	first, err := uc.Executer(context.Background(), params)
	if err != nil {
		t.Fatalf("Executer: %v", err)
	}
	second, err := uc.Executer(context.Background(), params)
	if err != nil {
		t.Fatalf("Executer: %v", err)
	}
	if first != second {
		t.Fatal("expected the second call to return the cached pointer")
	}
}
