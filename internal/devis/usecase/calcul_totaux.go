package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
)

// CalculTotauxUseCase recomputes a devis's cost buildup bottom-up: line,
// then lot, then quote, persisting all three levels and journaling the
// quote's HT and TTC totals.
type CalculTotauxUseCase struct {
	devis       repository.DevisRepository
	lots        repository.LotRepository
	lignes      repository.LigneRepository
	debourses   repository.DebourseDetailRepository
	journal     repository.JournalRepository
	margeSvc    *services.MargeService
	debourseSvc *services.DebourseService
}

// NewCalculTotauxUseCase wires the use case's collaborators.
func NewCalculTotauxUseCase(devis repository.DevisRepository, lots repository.LotRepository, lignes repository.LigneRepository, debourses repository.DebourseDetailRepository, journal repository.JournalRepository, margeSvc *services.MargeService, debourseSvc *services.DebourseService) *CalculTotauxUseCase {
	return &CalculTotauxUseCase{devis: devis, lots: lots, lignes: lignes, debourses: debourses, journal: journal, margeSvc: margeSvc, debourseSvc: debourseSvc}
}

// Executer recomputes and persists every figure for devisID.
func (uc *CalculTotauxUseCase) Executer(ctx context.Context, devisID int64, auteurID int64) error {
	devis, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return err
	}
	lots, err := uc.lots.FindByDevisID(ctx, devisID)
	if err != nil {
		return err
	}

	totalDevisHT := decimal.Zero
	totalDevisTTC := decimal.Zero

	for _, lot := range lots {
		lignes, err := uc.lignes.FindByLotID(ctx, lot.ID)
		if err != nil {
			return err
		}

		totalLotHT := decimal.Zero
		totalLotTTC := decimal.Zero

		for _, ligne := range lignes {
			debourses, err := uc.debourses.FindByLigneID(ctx, ligne.ID)
			if err != nil {
				return err
			}

			debourseSec := uc.debourseSvc.CalculerDebourseSec(debourses)
			prixRevient := uc.margeSvc.CalculerPrixRevient(debourseSec, devis.CoefficientFraisGeneraux)

			if len(debourses) > 0 {
				resolue := uc.margeSvc.ResoudreMarge(ligne.Marge, lot.Marge, devis, debourses)
				ligne.PrixUnitaireHT = uc.margeSvc.CalculerPrixVenteHT(prixRevient, resolue.Taux)
			}

			ligne.DebourseSec = debourseSec
			ligne.PrixRevient = prixRevient
			ligne.MontantHT = ligne.PrixUnitaireHT.Mul(ligne.Quantite).Round(2)
			ligne.MontantTTC = ligne.MontantHT.Mul(decimal.NewFromInt(1).Add(ligne.TauxTVA.Div(decimal.NewFromInt(100)))).Round(2)

			if err := uc.lignes.Save(ctx, ligne); err != nil {
				return err
			}

			totalLotHT = totalLotHT.Add(ligne.MontantHT)
			totalLotTTC = totalLotTTC.Add(ligne.MontantTTC)
		}

		lot.MontantTotalHT = totalLotHT.Round(2)
		lot.MontantTotalTTC = totalLotTTC.Round(2)
		if err := uc.lots.Save(ctx, lot); err != nil {
			return err
		}

		totalDevisHT = totalDevisHT.Add(lot.MontantTotalHT)
		totalDevisTTC = totalDevisTTC.Add(lot.MontantTotalTTC)
	}

	devis.MontantTotalHT = totalDevisHT.Round(2)
	devis.MontantTotalTTC = totalDevisTTC.Round(2)
	if err := uc.devis.Save(ctx, devis); err != nil {
		return err
	}

	details, _ := json.Marshal(map[string]string{
		"montant_total_ht":  devis.MontantTotalHT.String(),
		"montant_total_ttc": devis.MontantTotalTTC.String(),
	})
	return uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "recalcul_totaux", &auteurID, details))
}
