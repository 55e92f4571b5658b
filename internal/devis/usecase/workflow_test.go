package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

func newDevisPret(t *testing.T, repo *fakeDevisRepository, montantHT decimal.Decimal) *entities.Devis {
	t.Helper()
	d, err := entities.NewDevis("D-0001", "Client A", 1)
	if err != nil {
		t.Fatalf("NewDevis: %v", err)
	}
	d.MontantTotalHT = montantHT
	if err := repo.Save(context.Background(), d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return d
}

func TestWorkflowUseCaseTransitionnerBrouillonVersEnValidation(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewWorkflowUseCase(repo, journal, services.NewWorkflowGuards())

	d := newDevisPret(t, repo, decimal.NewFromInt(1000))

	got, err := uc.Transitionner(context.Background(), d.ID, valueobjects.EnValidation, "commercial", 1)
	if err != nil {
		t.Fatalf("Transitionner: %v", err)
	}
	if got.Statut != valueobjects.EnValidation {
		t.Fatalf("expected en_validation, got %s", got.Statut)
	}
	if len(journal.entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(journal.entries))
	}
}

func TestWorkflowUseCaseTransitionnerRefuseTransitionInterdite(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewWorkflowUseCase(repo, journal, services.NewWorkflowGuards())

	d := newDevisPret(t, repo, decimal.NewFromInt(1000))

	// Brouillon -> Accepte skips the required intermediate statuses.
	if _, err := uc.Transitionner(context.Background(), d.ID, valueobjects.Accepte, "admin", 1); err == nil {
		t.Fatal("expected a state-machine rejection for an illegal transition")
	}
}

func TestWorkflowUseCaseTransitionnerRefuseConducteurSurGrosMontant(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewWorkflowUseCase(repo, journal, services.NewWorkflowGuards())

	d := newDevisPret(t, repo, decimal.NewFromInt(60_000))
	d.Statut = valueobjects.EnValidation
	if err := repo.Save(context.Background(), d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := uc.Transitionner(context.Background(), d.ID, valueobjects.Envoye, "conducteur", 1); err == nil {
		t.Fatal("expected conducteur to be refused sending a >=50k devis")
	}
	if _, err := uc.Transitionner(context.Background(), d.ID, valueobjects.Envoye, "admin", 1); err != nil {
		t.Fatalf("expected admin to be allowed to send a >=50k devis, got %v", err)
	}
}

func TestDevisNonModifiablePourTransitionRefuseDevisFige(t *testing.T) {
	d, err := entities.NewDevis("D-0002", "Client B", 1)
	if err != nil {
		t.Fatalf("NewDevis: %v", err)
	}
	if err := d.Geler(); err != nil {
		t.Fatalf("Geler: %v", err)
	}
	if err := DevisNonModifiablePourTransition(d); err == nil {
		t.Fatal("expected a frozen devis to be reported non-modifiable")
	}
}

func TestDevisNonModifiablePourTransitionAccepteDevisBrouillon(t *testing.T) {
	d, err := entities.NewDevis("D-0003", "Client C", 1)
	if err != nil {
		t.Fatalf("NewDevis: %v", err)
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		t.Fatalf("expected a fresh BROUILLON devis to be modifiable, got %v", err)
	}
}
