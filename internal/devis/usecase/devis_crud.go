package usecase

import (
	"context"
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DevisUseCase covers plain lifecycle operations on the Devis aggregate
// root: creation, lookup, metadata edits and soft-deletion. Status
// transitions live in WorkflowUseCase, totals recompute in
// CalculTotauxUseCase.
type DevisUseCase struct {
	devis        repository.DevisRepository
	journal      repository.JournalRepository
	numerotation *services.NumerotationService
}

// NewDevisUseCase wires the use case's collaborators.
func NewDevisUseCase(devis repository.DevisRepository, journal repository.JournalRepository, numerotation *services.NumerotationService) *DevisUseCase {
	return &DevisUseCase{devis: devis, journal: journal, numerotation: numerotation}
}

// Creer builds and persists a brand-new devis in BROUILLON status, with
// an auto-generated reference number.
func (uc *DevisUseCase) Creer(ctx context.Context, clientNom string, createdBy int64) (*entities.Devis, error) {
	total, err := uc.devis.Count(ctx)
	if err != nil {
		return nil, err
	}
	numero := uc.numerotation.GenererNumeroDevis(time.Now().UTC().Year(), total+1)

	d, err := entities.NewDevis(numero, clientNom, createdBy)
	if err != nil {
		return nil, err
	}
	if err := uc.devis.Save(ctx, d); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(d.ID, "creation", &createdBy, nil))
	return d, nil
}

// Consulter loads a devis by id.
func (uc *DevisUseCase) Consulter(ctx context.Context, id int64) (*entities.Devis, error) {
	return uc.devis.FindByID(ctx, id)
}

// ConsulterParNumero loads a devis by its reference number.
func (uc *DevisUseCase) ConsulterParNumero(ctx context.Context, numero string) (*entities.Devis, error) {
	return uc.devis.FindByNumero(ctx, numero)
}

// Lister returns a page of every devis, newest first by creation time.
func (uc *DevisUseCase) Lister(ctx context.Context, limit, offset int) ([]*entities.Devis, error) {
	return uc.devis.FindAll(ctx, limit, offset)
}

// MettreAJourMetadonnees edits the client/site/object descriptive fields
// of a modifiable devis (BROUILLON or EN_NEGOCIATION, not frozen).
// Amount-bearing fields are never touched
// here; recompute them through CalculTotauxUseCase.
func (uc *DevisUseCase) MettreAJourMetadonnees(ctx context.Context, id int64, clientNom, clientAdresse, clientTelephone, clientEmail, chantierRef, objet, notes, conditionsGenerales string, auteurID int64) (*entities.Devis, error) {
	d, err := uc.devis.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := DevisNonModifiablePourTransition(d); err != nil {
		return nil, err
	}
	if clientNom == "" {
		return nil, errors.DevisValidation("le nom du client est obligatoire")
	}

	d.ClientNom = clientNom
	d.ClientAdresse = clientAdresse
	d.ClientTelephone = clientTelephone
	d.ClientEmail = clientEmail
	d.ChantierRef = chantierRef
	d.Objet = objet
	d.Notes = notes
	d.ConditionsGenerales = conditionsGenerales
	d.UpdatedAt = time.Now().UTC()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := uc.devis.Save(ctx, d); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(id, "mise_a_jour_metadonnees", &auteurID, nil))
	return d, nil
}

// Supprimer soft-deletes a devis. Only a non-frozen devis in BROUILLON
// can be deleted.
func (uc *DevisUseCase) Supprimer(ctx context.Context, id, deletedBy int64) error {
	d, err := uc.devis.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Figee {
		return errors.VersionFigee(id)
	}
	if d.Statut != valueobjects.Brouillon {
		return errors.DevisNotModifiable(id, string(d.Statut))
	}
	if err := uc.devis.Delete(ctx, id, deletedBy); err != nil {
		return err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(id, "suppression", &deletedBy, nil))
	return nil
}
