package usecase

import (
	"context"
	"strconv"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// cleLigne is an internal (lot, line) pair keyed for matching across the
// two compared quotes.
type cleLigne struct {
	lot    *entities.Lot
	ligne  *entities.Ligne
}

// ComparaisonUseCase diffs two quotes line by line, persisting a
// replacement comparison for the (source, target) pair.
type ComparaisonUseCase struct {
	devis       repository.DevisRepository
	lots        repository.LotRepository
	lignes      repository.LigneRepository
	debourses   repository.DebourseDetailRepository
	comparatifs repository.ComparatifRepository
	debourseSvc *services.DebourseService
}

// NewComparaisonUseCase wires the use case's collaborators.
func NewComparaisonUseCase(devis repository.DevisRepository, lots repository.LotRepository, lignes repository.LigneRepository, debourses repository.DebourseDetailRepository, comparatifs repository.ComparatifRepository, debourseSvc *services.DebourseService) *ComparaisonUseCase {
	return &ComparaisonUseCase{devis: devis, lots: lots, lignes: lignes, debourses: debourses, comparatifs: comparatifs, debourseSvc: debourseSvc}
}

// Executer computes and persists the comparison of devisSourceID against
// devisCibleID, replacing any earlier comparison for the same pair.
func (uc *ComparaisonUseCase) Executer(ctx context.Context, devisSourceID, devisCibleID int64) (*entities.Comparatif, []*entities.ComparatifLigne, error) {
	source, err := uc.collecterCles(ctx, devisSourceID)
	if err != nil {
		return nil, nil, err
	}
	cible, err := uc.collecterCles(ctx, devisCibleID)
	if err != nil {
		return nil, nil, err
	}

	devisSource, err := uc.devis.FindByID(ctx, devisSourceID)
	if err != nil {
		return nil, nil, err
	}
	devisCible, err := uc.devis.FindByID(ctx, devisCibleID)
	if err != nil {
		return nil, nil, err
	}

	comparatif, err := entities.NewComparatif(devisSourceID, devisCibleID)
	if err != nil {
		return nil, nil, err
	}
	comparatif.EcartMargePct = devisCible.TauxMargeGlobal.Sub(devisSource.TauxMargeGlobal)

	var lignesDiff []*entities.ComparatifLigne
	vuesCible := make(map[string]bool)

	for cle, entreeSource := range source {
		entreeCible, present := cible[cle]
		if !present {
			ligne := entities.NewComparatifLigne(comparatif.ID, cle, valueobjects.EcartSuppression)
			uc.remplirMontants(ctx, ligne, &entreeSource, nil)
			ligne.CalculerEcart()
			lignesDiff = append(lignesDiff, ligne)
			comparatif.NombreSuppressions++
			comparatif.EcartDebourseTotal = comparatif.EcartDebourseTotal.Add(ligne.EcartDebourseSec)
			continue
		}
		vuesCible[cle] = true

		typ := valueobjects.EcartIdentique
		if !uc.sontIdentiques(entreeSource, entreeCible) {
			typ = valueobjects.EcartModification
		}
		ligne := entities.NewComparatifLigne(comparatif.ID, cle, typ)
		uc.remplirMontants(ctx, ligne, &entreeSource, &entreeCible)
		ligne.CalculerEcart()
		lignesDiff = append(lignesDiff, ligne)
		if typ == valueobjects.EcartModification {
			comparatif.NombreModifications++
		} else {
			comparatif.NombreIdentiques++
		}
		comparatif.EcartMontantHT = comparatif.EcartMontantHT.Add(ligne.EcartMontantHT)
		comparatif.EcartDebourseTotal = comparatif.EcartDebourseTotal.Add(ligne.EcartDebourseSec)
	}

	for cle, entreeCible := range cible {
		if vuesCible[cle] {
			continue
		}
		ligne := entities.NewComparatifLigne(comparatif.ID, cle, valueobjects.EcartAjout)
		uc.remplirMontants(ctx, ligne, nil, &entreeCible)
		ligne.CalculerEcart()
		lignesDiff = append(lignesDiff, ligne)
		comparatif.NombreAjouts++
		comparatif.EcartMontantHT = comparatif.EcartMontantHT.Add(ligne.EcartMontantHT)
		comparatif.EcartDebourseTotal = comparatif.EcartDebourseTotal.Add(ligne.EcartDebourseSec)
	}

	comparatif.EcartMontantTTC = devisCible.MontantTotalTTC.Sub(devisSource.MontantTotalTTC)

	if err := uc.comparatifs.Save(ctx, comparatif, lignesDiff); err != nil {
		return nil, nil, err
	}
	return comparatif, lignesDiff, nil
}

func (uc *ComparaisonUseCase) collecterCles(ctx context.Context, devisID int64) (map[string]cleLigne, error) {
	lots, err := uc.lots.FindByDevisID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]cleLigne)
	for _, lot := range lots {
		lignes, err := uc.lignes.FindByLotID(ctx, lot.ID)
		if err != nil {
			return nil, err
		}
		for _, ligne := range lignes {
			cle := cleRapprochement(lot, ligne)
			out[cle] = cleLigne{lot: lot, ligne: ligne}
		}
	}
	return out, nil
}

// cleRapprochement is "article:<id>" when the line references a catalog
// article, else "lot:<titre>|desig:<designation>".
func cleRapprochement(lot *entities.Lot, ligne *entities.Ligne) string {
	if ligne.ArticleID != nil {
		return "article:" + strconv.FormatInt(*ligne.ArticleID, 10)
	}
	return "lot:" + lot.Titre + "|desig:" + ligne.Designation
}

func (uc *ComparaisonUseCase) sontIdentiques(a, b cleLigne) bool {
	return a.ligne.Quantite.Equal(b.ligne.Quantite) &&
		a.ligne.PrixUnitaireHT.Equal(b.ligne.PrixUnitaireHT) &&
		a.ligne.MontantHT.Equal(b.ligne.MontantHT) &&
		a.ligne.DebourseSec.Equal(b.ligne.DebourseSec)
}

func (uc *ComparaisonUseCase) remplirMontants(ctx context.Context, diff *entities.ComparatifLigne, source, cible *cleLigne) {
	if source != nil {
		diff.LigneSourceID = &source.ligne.ID
		diff.DesignationSource = source.ligne.Designation
		diff.QuantiteSource = source.ligne.Quantite
		diff.PrixUnitaireSourceHT = source.ligne.PrixUnitaireHT
		diff.MontantSourceHT = source.ligne.MontantHT
		diff.DebourseSecSource = source.ligne.DebourseSec
	}
	if cible != nil {
		diff.LigneCibleID = &cible.ligne.ID
		diff.DesignationCible = cible.ligne.Designation
		diff.QuantiteCible = cible.ligne.Quantite
		diff.PrixUnitaireCibleHT = cible.ligne.PrixUnitaireHT
		diff.MontantCibleHT = cible.ligne.MontantHT
		diff.DebourseSecCible = cible.ligne.DebourseSec
	}
}

