package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/ports"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

var (
	decimalOne       = decimal.NewFromInt(1)
	decimalEighty    = decimal.NewFromInt(80)
	decimalCinqMille = decimal.NewFromInt(5000)
)

// ConversionUseCase converts an accepted, signed quote into a work site
// via the synchronous ChantierCreationPort, then publishes
// DevisConvertEvent only after the conversion has committed.
type ConversionUseCase struct {
	devis      repository.DevisRepository
	lots       repository.LotRepository
	lignes     repository.LigneRepository
	debourses  repository.DebourseDetailRepository
	signatures repository.SignatureRepository
	journal    repository.JournalRepository
	chantiers  ports.ChantierCreationPort
	events     ports.EventPublisher
}

// NewConversionUseCase wires the use case's collaborators.
func NewConversionUseCase(devis repository.DevisRepository, lots repository.LotRepository, lignes repository.LigneRepository, debourses repository.DebourseDetailRepository, signatures repository.SignatureRepository, journal repository.JournalRepository, chantiers ports.ChantierCreationPort, events ports.EventPublisher) *ConversionUseCase {
	return &ConversionUseCase{devis: devis, lots: lots, lignes: lignes, debourses: debourses, signatures: signatures, journal: journal, chantiers: chantiers, events: events}
}

// Executer converts devisID to a work site.
func (uc *ConversionUseCase) Executer(ctx context.Context, devisID int64) (ports.ChantierCreationResult, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return ports.ChantierCreationResult{}, err
	}
	if err := uc.verifierPreconditions(ctx, d); err != nil {
		return ports.ChantierCreationResult{}, err
	}

	lots, err := uc.lots.FindByDevisID(ctx, devisID)
	if err != nil {
		return ports.ChantierCreationResult{}, err
	}

	var lotsBudget []ports.LotBudgetaireCreationData
	var lotsEvent []ports.LotConvertiDTO
	for ordre, lot := range lots {
		if lot.EstSupprime() {
			continue
		}
		lignes, err := uc.lignes.FindByLotID(ctx, lot.ID)
		if err != nil {
			return ports.ChantierCreationResult{}, err
		}
		montantDebourseHT := lot.MontantTotalHT
		for _, l := range lignes {
			if !l.DebourseSec.IsZero() {
				montantDebourseHT = l.DebourseSec
			}
		}
		lotsBudget = append(lotsBudget, ports.LotBudgetaireCreationData{
			CodeLot: lot.CodeLot, Libelle: lot.Titre, Unite: "forfait",
			QuantitePrevue: decimalOne, PrixUnitaireHT: lot.MontantTotalHT,
			Ordre: ordre, PrixVenteHT: lot.MontantTotalHT,
		})
		lotsEvent = append(lotsEvent, ports.LotConvertiDTO{
			CodeLot: lot.CodeLot, Libelle: lot.Titre,
			MontantDebourseHT: montantDebourseHT, MontantVenteHT: lot.MontantTotalHT,
		})
	}

	chantierData := ports.ChantierCreationData{Nom: d.ClientNom + " - " + d.Objet, Adresse: "", Description: d.Objet}
	if d.ConducteurID != nil {
		chantierData.ConducteurIDs = []int64{*d.ConducteurID}
	}
	budgetData := ports.BudgetCreationData{
		MontantInitialHT:     d.MontantTotalHT,
		RetenueGarantiePct:   d.RetenueGarantiePct,
		SeuilAlertePct:       decimalEighty,
		SeuilValidationAchat: decimalCinqMille,
		DevisID:              devisID,
	}

	resultat, err := uc.chantiers.CreerChantier(ctx, chantierData, budgetData, lotsBudget)
	if err != nil {
		return ports.ChantierCreationResult{}, errors.Conversion(err)
	}

	if err := d.MarquerConvertie(resultat.ChantierID); err != nil {
		return ports.ChantierCreationResult{}, err
	}
	if err := uc.devis.Save(ctx, d); err != nil {
		return ports.ChantierCreationResult{}, err
	}

	event := ports.DevisConvertEvent{
		DevisID: devisID, Numero: d.Numero, ClientNom: d.ClientNom,
		Objet: d.Objet, MontantHT: d.MontantTotalHT, MontantTTC: d.MontantTotalTTC,
		RetenueGarantiePct: d.RetenueGarantiePct, Lots: lotsEvent,
		CommercialID: d.CommercialID, ConducteurID: d.ConducteurID,
		DateConversion: time.Now().UTC(),
	}
	_ = uc.events.Publish(ctx, event)
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "conversion_chantier", nil, nil))

	return resultat, nil
}

func (uc *ConversionUseCase) verifierPreconditions(ctx context.Context, d *entities.Devis) error {
	if d.Statut != valueobjects.Accepte {
		return errors.DevisNonConvertible("le devis doit etre au statut ACCEPTE")
	}
	if d.Convertie {
		return errors.DevisDejaConverti(d.ID)
	}
	if !d.MontantTotalHT.IsPositive() {
		return errors.DevisNonConvertible("le montant HT doit etre strictement positif")
	}
	sig, err := uc.signatures.FindActiveByDevisID(ctx, d.ID)
	if err != nil {
		return err
	}
	if sig == nil {
		return errors.DevisNonConvertible("une signature valide est requise")
	}
	lots, err := uc.lots.FindByDevisID(ctx, d.ID)
	if err != nil {
		return err
	}
	actifs := 0
	for _, l := range lots {
		if !l.EstSupprime() {
			actifs++
		}
	}
	if actifs == 0 {
		return errors.DevisNonConvertible("au moins un lot non supprime est requis")
	}
	return nil
}
