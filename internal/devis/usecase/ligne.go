package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// LigneUseCase manages the line items of a lot: creation, quantity edits
// and soft-deletion. Totals recompute happens in CalculTotauxUseCase,
// never inline here.
type LigneUseCase struct {
	devis        repository.DevisRepository
	lots         repository.LotRepository
	lignes       repository.LigneRepository
	journal      repository.JournalRepository
	numerotation *services.NumerotationService
}

// NewLigneUseCase wires the use case's collaborators.
func NewLigneUseCase(devis repository.DevisRepository, lots repository.LotRepository, lignes repository.LigneRepository, journal repository.JournalRepository, numerotation *services.NumerotationService) *LigneUseCase {
	return &LigneUseCase{devis: devis, lots: lots, lignes: lignes, journal: journal, numerotation: numerotation}
}

func (uc *LigneUseCase) devisDuLot(ctx context.Context, lotID int64) (*entities.Devis, error) {
	l, err := uc.lots.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	return uc.devis.FindByID(ctx, l.DevisID)
}

// Creer adds a new line to a lot of a modifiable devis, appending it at
// the end of the lot's line order.
func (uc *LigneUseCase) Creer(ctx context.Context, lotID int64, designation string, unite valueobjects.UniteArticle, quantite, prixUnitaireHT, tauxTVA decimal.Decimal, auteurID int64) (*entities.Ligne, error) {
	d, err := uc.devisDuLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		return nil, err
	}

	lot, err := uc.lots.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	existantes, err := uc.lignes.FindByLotID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	ordre := len(existantes)

	l, err := entities.NewLigne(lotID, designation, unite, quantite, prixUnitaireHT, tauxTVA, ordre)
	if err != nil {
		return nil, err
	}
	l.CodeLigne = uc.numerotation.GenererCodeLigne(ordre, lot.CodeLot)

	if err := uc.lignes.Save(ctx, l); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(d.ID, "ajout_ligne", &auteurID, nil))
	return l, nil
}

// ModifierQuantite updates a line's quantity, rejected when the line is locked.
func (uc *LigneUseCase) ModifierQuantite(ctx context.Context, ligneID int64, nouvelleQuantite decimal.Decimal, auteurID int64) (*entities.Ligne, error) {
	l, err := uc.lignes.FindByID(ctx, ligneID)
	if err != nil {
		return nil, err
	}
	d, err := uc.devisDuLot(ctx, l.LotID)
	if err != nil {
		return nil, err
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		return nil, err
	}
	if err := l.ModifierQuantite(nouvelleQuantite); err != nil {
		return nil, err
	}
	if err := uc.lignes.Save(ctx, l); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(d.ID, "modification_quantite_ligne", &auteurID, nil))
	return l, nil
}

// Lister returns the lines of a lot, in display order.
func (uc *LigneUseCase) Lister(ctx context.Context, lotID int64) ([]*entities.Ligne, error) {
	return uc.lignes.FindByLotID(ctx, lotID)
}

// Supprimer soft-deletes a line of a modifiable devis.
func (uc *LigneUseCase) Supprimer(ctx context.Context, ligneID, deletedBy int64) error {
	l, err := uc.lignes.FindByID(ctx, ligneID)
	if err != nil {
		return err
	}
	d, err := uc.devisDuLot(ctx, l.LotID)
	if err != nil {
		return err
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		return err
	}
	if err := uc.lignes.Delete(ctx, ligneID, deletedBy); err != nil {
		return err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(d.ID, "suppression_ligne", &deletedBy, nil))
	return nil
}
