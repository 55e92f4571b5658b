package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/ports"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DPGFColumnMapping names the source columns to read from each decoded row.
type DPGFColumnMapping struct {
	Lot         string
	Description string
	Unite       string
	Quantite    string
	PrixUnitaire string
}

// DPGFErreurLigne records a per-row import failure with its line number.
type DPGFErreurLigne struct {
	Ligne   int
	Message string
}

// DPGFResultat summarizes an import run. BatchID identifies the run in the
// journal so a retried upload can be told apart from a duplicate submission.
type DPGFResultat struct {
	BatchID      string
	LotsCrees    int
	LignesCreees int
	Erreurs      []DPGFErreurLigne
}

// DPGFImportUseCase parses a bill-of-quantities file and materializes its
// rows as lots and lines under an existing devis.
type DPGFImportUseCase struct {
	devis   repository.DevisRepository
	lots    repository.LotRepository
	lignes  repository.LigneRepository
	journal repository.JournalRepository
	decoder ports.DPGFDecoder
}

// NewDPGFImportUseCase wires the use case's collaborators.
func NewDPGFImportUseCase(devis repository.DevisRepository, lots repository.LotRepository, lignes repository.LigneRepository, journal repository.JournalRepository, decoder ports.DPGFDecoder) *DPGFImportUseCase {
	return &DPGFImportUseCase{devis: devis, lots: lots, lignes: lignes, journal: journal, decoder: decoder}
}

// Executer imports payload into devisID starting at startRow (1-based,
// inclusive of the header offset already applied by the caller).
func (uc *DPGFImportUseCase) Executer(ctx context.Context, devisID int64, payload []byte, mapping DPGFColumnMapping, startRow int) (DPGFResultat, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return DPGFResultat{}, err
	}

	rawMapping := map[string]string{
		"lot": mapping.Lot, "description": mapping.Description,
		"unite": mapping.Unite, "quantite": mapping.Quantite, "pu": mapping.PrixUnitaire,
	}
	rows, err := uc.decoder.Decode(ctx, payload, rawMapping)
	if err != nil {
		return DPGFResultat{}, errors.DPGFImport(err)
	}

	existants, err := uc.lots.FindByDevisID(ctx, devisID)
	if err != nil {
		return DPGFResultat{}, err
	}
	ordreSuivant := len(existants)
	lotParCode := make(map[string]*entities.Lot, len(existants))
	for _, l := range existants {
		lotParCode[l.CodeLot] = l
	}

	resultat := DPGFResultat{BatchID: uuid.New().String()}
	lignesParLot := make(map[string]int)

	for i, row := range rows {
		numeroLigne := startRow + i
		if rowIsBlank(row) {
			continue
		}

		codeLot := strings.TrimSpace(row["lot"])
		if codeLot == "" {
			codeLot = "DIVERS"
		}
		designation := strings.TrimSpace(row["description"])
		if designation == "" {
			resultat.Erreurs = append(resultat.Erreurs, DPGFErreurLigne{Ligne: numeroLigne, Message: "designation manquante"})
			continue
		}

		quantite, err := parseDecimalTolerant(row["quantite"])
		if err != nil {
			resultat.Erreurs = append(resultat.Erreurs, DPGFErreurLigne{Ligne: numeroLigne, Message: fmt.Sprintf("quantite invalide: %v", err)})
			continue
		}
		prixUnitaire, err := parseDecimalTolerant(row["pu"])
		if err != nil {
			resultat.Erreurs = append(resultat.Erreurs, DPGFErreurLigne{Ligne: numeroLigne, Message: fmt.Sprintf("prix unitaire invalide: %v", err)})
			continue
		}

		lot, existe := lotParCode[codeLot]
		if !existe {
			lot, err = entities.NewLot(devisID, codeLot, ordreSuivant, nil)
			if err != nil {
				resultat.Erreurs = append(resultat.Erreurs, DPGFErreurLigne{Ligne: numeroLigne, Message: err.Error()})
				continue
			}
			lot.CodeLot = codeLot
			if err := uc.lots.Save(ctx, lot); err != nil {
				return resultat, err
			}
			lotParCode[codeLot] = lot
			ordreSuivant++
			resultat.LotsCrees++
		}

		unite := valueobjects.NormaliserUnite(row["unite"])
		ordreLigne := lignesParLot[codeLot]
		ligne, err := entities.NewLigne(lot.ID, designation, unite, quantite, prixUnitaire, d.TauxTVADefaut, ordreLigne)
		if err != nil {
			resultat.Erreurs = append(resultat.Erreurs, DPGFErreurLigne{Ligne: numeroLigne, Message: err.Error()})
			continue
		}
		if err := uc.lignes.Save(ctx, ligne); err != nil {
			return resultat, err
		}
		lignesParLot[codeLot]++
		resultat.LignesCreees++
	}

	if resultat.LignesCreees == 0 {
		return resultat, errors.DPGFFormat("aucune ligne valide n'a pu etre importee")
	}

	details, _ := json.Marshal(map[string]any{
		"batch_id":     resultat.BatchID,
		"lots_crees":   resultat.LotsCrees,
		"lignes_crees": resultat.LignesCreees,
	})
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "import_dpgf", nil, details))
	return resultat, nil
}

func rowIsBlank(row map[string]string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseDecimalTolerant accepts a comma or dot as the decimal separator
// and ignores interior spaces (thousands separators).
func parseDecimalTolerant(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("valeur vide")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(v), nil
}
