package usecase

import (
	"context"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
)

// LotUseCase manages a devis's lot tree: creation, listing and
// soft-deletion. Hierarchical codes come from NumerotationService so
// siblings stay in display order.
type LotUseCase struct {
	devis        repository.DevisRepository
	lots         repository.LotRepository
	journal      repository.JournalRepository
	numerotation *services.NumerotationService
}

// NewLotUseCase wires the use case's collaborators.
func NewLotUseCase(devis repository.DevisRepository, lots repository.LotRepository, journal repository.JournalRepository, numerotation *services.NumerotationService) *LotUseCase {
	return &LotUseCase{devis: devis, lots: lots, journal: journal, numerotation: numerotation}
}

// Creer adds a new lot to a modifiable devis, appending it at the end of
// its parent's sibling order.
func (uc *LotUseCase) Creer(ctx context.Context, devisID int64, titre string, parentID *int64, auteurID int64) (*entities.Lot, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		return nil, err
	}

	existants, err := uc.lots.FindByDevisID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	ordre := siblingCount(existants, parentID)

	parentCode := ""
	if parentID != nil {
		for _, l := range existants {
			if l.ID == *parentID {
				parentCode = l.CodeLot
				break
			}
		}
	}

	l, err := entities.NewLot(devisID, titre, ordre, parentID)
	if err != nil {
		return nil, err
	}
	l.CodeLot = uc.numerotation.GenererCodeLot(ordre, parentCode)

	if err := uc.lots.Save(ctx, l); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "ajout_lot", &auteurID, nil))
	return l, nil
}

// Lister returns the non-deleted lots of a devis, in display order.
func (uc *LotUseCase) Lister(ctx context.Context, devisID int64) ([]*entities.Lot, error) {
	return uc.lots.FindByDevisID(ctx, devisID)
}

// Supprimer soft-deletes a lot of a modifiable devis.
func (uc *LotUseCase) Supprimer(ctx context.Context, devisID, lotID, deletedBy int64) error {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return err
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		return err
	}
	if err := uc.lots.Delete(ctx, lotID, deletedBy); err != nil {
		return err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "suppression_lot", &deletedBy, nil))
	return nil
}

func siblingCount(lots []*entities.Lot, parentID *int64) int {
	n := 0
	for _, l := range lots {
		if samePointer(l.ParentID, parentID) {
			n++
		}
	}
	return n
}

func samePointer(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
