// Package usecase implements the devis module's application operations:
// one logical unit of work per file, one linear code path per request.
// Use cases do not open database transactions; each repository call
// commits on its own.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/services"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// WorkflowUseCase drives devis status transitions, enforcing the role
// guard matrix and journaling every attempted change.
type WorkflowUseCase struct {
	devis   repository.DevisRepository
	journal repository.JournalRepository
	guards  *services.WorkflowGuards
}

// NewWorkflowUseCase wires the use case's collaborators.
func NewWorkflowUseCase(devis repository.DevisRepository, journal repository.JournalRepository, guards *services.WorkflowGuards) *WorkflowUseCase {
	return &WorkflowUseCase{devis: devis, journal: journal, guards: guards}
}

// nomAction maps a target status to the permission-table action name used
// by WorkflowGuards; EXPIRE maps to "expirer", which the guards reserve
// for the admin role.
var nomActionParCible = map[valueobjects.StatutDevis]string{
	valueobjects.EnValidation:  "soumettre",
	valueobjects.Brouillon:     "retourner_brouillon",
	valueobjects.Envoye:        "envoyer",
	valueobjects.Vu:            "marquer_vu",
	valueobjects.EnNegociation: "negociation",
	valueobjects.Accepte:       "accepter",
	valueobjects.Refuse:        "refuser",
	valueobjects.Perdu:         "perdu",
	valueobjects.Expire:        "expirer",
}

// Transitionner moves the devis to cible, enforcing the role guard for
// the corresponding action and the 50k€ HT admin-only validation rule.
func (uc *WorkflowUseCase) Transitionner(ctx context.Context, devisID int64, cible valueobjects.StatutDevis, role string, auteurID int64) (*entities.Devis, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return nil, err
	}

	action, known := nomActionParCible[cible]
	if known {
		if err := uc.guards.VerifierTransition(role, action, &d.MontantTotalHT); err != nil {
			return nil, err
		}
	}

	source := d.Statut
	if err := d.Transitionner(cible); err != nil {
		return nil, err
	}
	if err := uc.devis.Save(ctx, d); err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]string{"de": string(source), "vers": string(cible)})
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "transition_statut", &auteurID, details))

	return d, nil
}

// DevisNonModifiablePourTransition returns the appropriate error when a
// caller attempts a mutation on a frozen or terminal devis.
func DevisNonModifiablePourTransition(d *entities.Devis) error {
	if !d.EstModifiable() {
		return errors.DevisNotModifiable(d.ID, string(d.Statut))
	}
	return nil
}
