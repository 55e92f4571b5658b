package services

import (
	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// SeuilValidationDirection is the HT amount at or above which validating a
// quote (moving it out of EN_VALIDATION, action "valider" or its
// "envoyer" synonym once approved) requires the admin role, regardless
// of the actor's other permissions.
var SeuilValidationDirection = decimal.NewFromInt(50_000)

// transitionsParRole lists, for every guarded workflow transition, the set
// of roles allowed to perform it.
var transitionsParRole = map[string]map[string]bool{
	"soumettre":           {"admin": true, "conducteur": true, "commercial": true},
	"valider":             {"admin": true, "conducteur": true, "commercial": true},
	"retourner_brouillon": {"admin": true, "conducteur": true},
	"envoyer":             {"admin": true, "conducteur": true, "commercial": true},
	"marquer_vu":          {"admin": true, "conducteur": true, "commercial": true},
	"negociation":         {"admin": true, "conducteur": true, "commercial": true},
	"accepter":            {"admin": true, "conducteur": true},
	"refuser":             {"admin": true, "conducteur": true, "commercial": true},
	"perdu":               {"admin": true, "conducteur": true},
	"expirer":             {"admin": true},
	"convertir":           {"admin": true, "conducteur": true},
}

// WorkflowGuards enforces the role/transition permission matrix for devis
// status changes, including the mandatory admin-only threshold on
// high-value validations.
type WorkflowGuards struct{}

// NewWorkflowGuards builds a WorkflowGuards.
func NewWorkflowGuards() *WorkflowGuards { return &WorkflowGuards{} }

// VerifierTransition returns a TransitionNonAutorisee error if role is not
// permitted to perform transition, optionally checking the 50k€ HT
// admin-only validation rule when montantHT is non-nil.
func (WorkflowGuards) VerifierTransition(role, transition string, montantHT *decimal.Decimal) error {
	rolesAutorises, known := transitionsParRole[transition]
	if !known {
		return errors.TransitionNonAutorisee(role, transition, "transition inconnue")
	}
	if !rolesAutorises[role] {
		return errors.TransitionNonAutorisee(role, transition, "role non autorise pour cette transition")
	}
	if (transition == "valider" || transition == "envoyer") && montantHT != nil && montantHT.GreaterThanOrEqual(SeuilValidationDirection) && role != "admin" {
		return errors.TransitionNonAutorisee(role, transition, "la validation d'un devis >= 50000 EUR HT necessite le role admin")
	}
	return nil
}

// PeutEffectuerTransition is the boolean counterpart of VerifierTransition.
func (g WorkflowGuards) PeutEffectuerTransition(role, transition string, montantHT *decimal.Decimal) bool {
	return g.VerifierTransition(role, transition, montantHT) == nil
}
