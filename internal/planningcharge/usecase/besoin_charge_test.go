package usecase

import (
	"context"
	"testing"

	devisvo "github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/cache"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/entities"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// fakeBesoinChargeRepository is an in-memory stand-in for
// repository.BesoinChargeRepository.
type fakeBesoinChargeRepository struct {
	byID   map[int64]*entities.BesoinCharge
	nextID int64
}

func newFakeBesoinChargeRepository() *fakeBesoinChargeRepository {
	return &fakeBesoinChargeRepository{byID: make(map[int64]*entities.BesoinCharge)}
}

func (f *fakeBesoinChargeRepository) Save(ctx context.Context, b *entities.BesoinCharge) error {
	if b.ID == 0 {
		f.nextID++
		b.ID = f.nextID
	}
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBesoinChargeRepository) FindByID(ctx context.Context, id int64) (*entities.BesoinCharge, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, errNotFoundStub{}
	}
	return b, nil
}

func (f *fakeBesoinChargeRepository) FindByChantierID(ctx context.Context, chantierID int64) ([]*entities.BesoinCharge, error) {
	var out []*entities.BesoinCharge
	for _, b := range f.byID {
		if b.ChantierID == chantierID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBesoinChargeRepository) FindInRange(ctx context.Context, debut, fin valueobjects.Semaine) ([]*entities.BesoinCharge, error) {
	var out []*entities.BesoinCharge
	for _, b := range f.byID {
		if !b.Semaine.Before(debut) && !fin.Before(b.Semaine) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBesoinChargeRepository) FindByCodeUnique(ctx context.Context, code string) (*entities.BesoinCharge, error) {
	for _, b := range f.byID {
		if b.CodeUnique() == code {
			return b, nil
		}
	}
	return nil, errNotFoundStub{}
}

func (f *fakeBesoinChargeRepository) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

type errNotFoundStub struct{}

func (errNotFoundStub) Error() string { return "besoin charge introuvable" }

func TestCreateBesoinUseCaseExecuterPersisteEtInvalideCache(t *testing.T) {
	repo := newFakeBesoinChargeRepository()
	planningCache := cache.NewPlanningCache()
	debut, _ := valueobjects.NewSemaine(2026, 1)
	fin, _ := valueobjects.NewSemaine(2026, 2)
	planningCache.Set(debut, fin, "", "grille precedente")

	uc := NewCreateBesoinUseCase(repo, planningCache)

	semaine, _ := valueobjects.NewSemaine(2026, 5)
	besoin, err := uc.Executer(context.Background(), 1, semaine, devisvo.Macon, 70, 1)
	if err != nil {
		t.Fatalf("Executer: %v", err)
	}
	if besoin.ID == 0 {
		t.Fatal("expected the saved besoin to receive an id")
	}
	if _, ok := planningCache.Get(debut, fin, ""); ok {
		t.Fatal("expected the cache to be invalidated after a write")
	}
}

func TestCreateBesoinUseCaseExecuterRefuseHeuresNegatives(t *testing.T) {
	repo := newFakeBesoinChargeRepository()
	uc := NewCreateBesoinUseCase(repo, cache.NewPlanningCache())

	semaine, _ := valueobjects.NewSemaine(2026, 5)
	if _, err := uc.Executer(context.Background(), 1, semaine, devisvo.Macon, -5, 1); err == nil {
		t.Fatal("expected a validation error for a negative hour requirement")
	}
}

func TestGetBesoinsByChantierUseCaseExecuter(t *testing.T) {
	repo := newFakeBesoinChargeRepository()
	createUC := NewCreateBesoinUseCase(repo, cache.NewPlanningCache())
	semaine, _ := valueobjects.NewSemaine(2026, 5)
	if _, err := createUC.Executer(context.Background(), 1, semaine, devisvo.Macon, 35, 1); err != nil {
		t.Fatalf("Executer: %v", err)
	}
	if _, err := createUC.Executer(context.Background(), 2, semaine, devisvo.Macon, 35, 1); err != nil {
		t.Fatalf("Executer: %v", err)
	}

	getUC := NewGetBesoinsByChantierUseCase(repo)
	besoins, err := getUC.Executer(context.Background(), 1)
	if err != nil {
		t.Fatalf("Executer: %v", err)
	}
	if len(besoins) != 1 {
		t.Fatalf("expected 1 besoin for chantier 1, got %d", len(besoins))
	}
}
