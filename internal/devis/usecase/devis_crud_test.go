package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// fakeDevisRepository is an in-memory stand-in for repository.DevisRepository.
type fakeDevisRepository struct {
	byID   map[int64]*entities.Devis
	nextID int64
}

func newFakeDevisRepository() *fakeDevisRepository {
	return &fakeDevisRepository{byID: make(map[int64]*entities.Devis)}
}

func (f *fakeDevisRepository) Save(ctx context.Context, d *entities.Devis) error {
	if d.ID == 0 {
		f.nextID++
		d.ID = f.nextID
	}
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDevisRepository) FindByID(ctx context.Context, id int64) (*entities.Devis, error) {
	d, ok := f.byID[id]
	if !ok || d.EstSupprime() {
		return nil, devisErrNotFound(id)
	}
	return d, nil
}

func (f *fakeDevisRepository) FindByNumero(ctx context.Context, numero string) (*entities.Devis, error) {
	for _, d := range f.byID {
		if d.Numero == numero {
			return d, nil
		}
	}
	return nil, devisErrNotFound(0)
}

func (f *fakeDevisRepository) FindAll(ctx context.Context, limit, offset int) ([]*entities.Devis, error) {
	var out []*entities.Devis
	for _, d := range f.byID {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDevisRepository) FindAllInRange(ctx context.Context, debut, fin time.Time) ([]*entities.Devis, error) {
	return f.FindAll(ctx, 0, 0)
}

func (f *fakeDevisRepository) FindVersions(ctx context.Context, devisID int64) ([]*entities.Devis, error) {
	return nil, nil
}

func (f *fakeDevisRepository) GetNextVersionNumber(ctx context.Context, devisRacineID int64) (int, error) {
	return 2, nil
}

func (f *fakeDevisRepository) Search(ctx context.Context, filter repository.DevisFilter) ([]*entities.Devis, error) {
	return f.FindAll(ctx, 0, 0)
}

func (f *fakeDevisRepository) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

func (f *fakeDevisRepository) CountByStatut(ctx context.Context, statut valueobjects.StatutDevis) (int, error) {
	n := 0
	for _, d := range f.byID {
		if d.Statut == statut {
			n++
		}
	}
	return n, nil
}

func (f *fakeDevisRepository) SommeMontantByStatut(ctx context.Context, statut valueobjects.StatutDevis) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeDevisRepository) FindExpires(ctx context.Context, asOf time.Time) ([]*entities.Devis, error) {
	return nil, nil
}

func (f *fakeDevisRepository) Delete(ctx context.Context, id, deletedBy int64) error {
	d, ok := f.byID[id]
	if !ok {
		return devisErrNotFound(id)
	}
	d.Supprimer(deletedBy)
	return nil
}

// fakeJournalRepository records every appended entry without persisting them.
type fakeJournalRepository struct {
	entries []*entities.JournalEntry
}

func (f *fakeJournalRepository) Append(ctx context.Context, e *entities.JournalEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeJournalRepository) FindByDevisID(ctx context.Context, devisID int64, limit, offset int) ([]*entities.JournalEntry, error) {
	return f.entries, nil
}

func (f *fakeJournalRepository) Count(ctx context.Context, devisID int64) (int, error) {
	return len(f.entries), nil
}

func devisErrNotFound(id int64) error {
	return &notFoundStub{id: id}
}

type notFoundStub struct{ id int64 }

func (e *notFoundStub) Error() string { return "devis introuvable" }

func TestDevisUseCaseCreerGenereNumeroSequentiel(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewDevisUseCase(repo, journal, services.NewNumerotationService())

	d1, err := uc.Creer(context.Background(), "Client A", 1)
	if err != nil {
		t.Fatalf("Creer: %v", err)
	}
	d2, err := uc.Creer(context.Background(), "Client B", 1)
	if err != nil {
		t.Fatalf("Creer: %v", err)
	}
	if d1.Numero == d2.Numero {
		t.Fatalf("expected distinct numero, got %s twice", d1.Numero)
	}
	if len(journal.entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(journal.entries))
	}
}

func TestDevisUseCaseMettreAJourMetadonneesRefuseClientVide(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewDevisUseCase(repo, journal, services.NewNumerotationService())

	d, err := uc.Creer(context.Background(), "Client A", 1)
	if err != nil {
		t.Fatalf("Creer: %v", err)
	}

	if _, err := uc.MettreAJourMetadonnees(context.Background(), d.ID, "", "", "", "", "", "", "", "", 1); err == nil {
		t.Fatal("expected validation error for empty client name")
	}
}

func TestDevisUseCaseMettreAJourMetadonneesRefuseSiFigee(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewDevisUseCase(repo, journal, services.NewNumerotationService())

	d, err := uc.Creer(context.Background(), "Client A", 1)
	if err != nil {
		t.Fatalf("Creer: %v", err)
	}
	if err := d.Geler(); err != nil {
		t.Fatalf("Geler: %v", err)
	}
	if err := repo.Save(context.Background(), d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := uc.MettreAJourMetadonnees(context.Background(), d.ID, "Autre client", "", "", "", "", "", "", "", 1); err == nil {
		t.Fatal("expected not-modifiable error on a frozen devis")
	}
}

func TestDevisUseCaseSupprimerMarqueSoftDelete(t *testing.T) {
	repo := newFakeDevisRepository()
	journal := &fakeJournalRepository{}
	uc := NewDevisUseCase(repo, journal, services.NewNumerotationService())

	d, err := uc.Creer(context.Background(), "Client A", 1)
	if err != nil {
		t.Fatalf("Creer: %v", err)
	}
	if err := uc.Supprimer(context.Background(), d.ID, 9); err != nil {
		t.Fatalf("Supprimer: %v", err)
	}
	if _, err := uc.Consulter(context.Background(), d.ID); err == nil {
		t.Fatal("expected a soft-deleted devis to no longer be findable")
	}
}
