package usecase

import (
	"context"
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/ports"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

var statutsRelancables = map[valueobjects.StatutDevis]bool{
	valueobjects.Envoye:        true,
	valueobjects.Vu:            true,
	valueobjects.EnNegociation: true,
}

// RelanceUseCase plans, executes, and cancels a quote's follow-up
// reminder sequence per its ConfigRelances.
type RelanceUseCase struct {
	devis     repository.DevisRepository
	relances  repository.RelanceRepository
	journal   repository.JournalRepository
	transport ports.NotificationTransport
}

// NewRelanceUseCase wires the use case's collaborators.
func NewRelanceUseCase(devis repository.DevisRepository, relances repository.RelanceRepository, journal repository.JournalRepository, transport ports.NotificationTransport) *RelanceUseCase {
	return &RelanceUseCase{devis: devis, relances: relances, journal: journal, transport: transport}
}

// Planifier creates one Relance per configured delay not yet covered by
// an existing reminder, anchored at the quote's sending date.
func (uc *RelanceUseCase) Planifier(ctx context.Context, devisID int64, envoiDate time.Time) ([]*entities.Relance, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	if !statutsRelancables[d.Statut] {
		return nil, errors.RelanceValidation("la planification de relance necessite un devis envoye, vu, ou en negociation")
	}

	existantes, err := uc.relances.FindByDevisID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	dejaPlanifiees := make(map[int]bool, len(existantes))
	for _, r := range existantes {
		dejaPlanifiees[r.Sequence] = true
	}

	var creees []*entities.Relance
	for i, delai := range d.ConfigRelances.Delais {
		sequence := i + 1
		if dejaPlanifiees[sequence] {
			continue
		}
		r, err := entities.NewRelance(devisID, sequence, d.ConfigRelances.TypeRelanceDefaut, envoiDate.AddDate(0, 0, delai))
		if err != nil {
			return nil, err
		}
		if err := uc.relances.Save(ctx, r); err != nil {
			return nil, err
		}
		creees = append(creees, r)
	}
	return creees, nil
}

// ExecuterLot sends every planned reminder whose date has arrived.
// Failures are counted, not propagated: a transport failure is saved as
// a failed reminder, other failures leave the reminder unchanged.
func (uc *RelanceUseCase) ExecuterLot(ctx context.Context, asOf time.Time) (sent int, failed int, err error) {
	dues, err := uc.relances.FindDues(ctx, asOf)
	if err != nil {
		return 0, 0, err
	}
	for _, r := range dues {
		d, ferr := uc.devis.FindByID(ctx, r.DevisID)
		if ferr != nil {
			failed++
			continue
		}
		if terr := uc.transport.EnvoyerRelance(ctx, r.DevisID, d.ClientNom, "Relance devis "+d.Numero, r.Message); terr != nil {
			_ = r.Echouer()
			_ = uc.relances.Save(ctx, r)
			failed++
			continue
		}
		if err := r.Envoyer(); err != nil {
			failed++
			continue
		}
		if err := uc.relances.Save(ctx, r); err != nil {
			failed++
			continue
		}
		sent++
	}
	return sent, failed, nil
}

// Annuler sweeps all planned reminders of a quote.
func (uc *RelanceUseCase) Annuler(ctx context.Context, devisID int64) error {
	relances, err := uc.relances.FindByDevisID(ctx, devisID)
	if err != nil {
		return err
	}
	for _, r := range relances {
		if r.Statut != entities.StatutRelancePlanifiee {
			continue
		}
		if err := r.Annuler(); err != nil {
			return err
		}
		if err := uc.relances.Save(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
