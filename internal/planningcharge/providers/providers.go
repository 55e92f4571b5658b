// Package providers declares the planning-charge aggregator's read-only
// collaborator ports: chantier listing, affectation projections, and
// user capacity, mirrored from the teacher's detector-registry style of
// narrow, swappable interfaces.
package providers

import (
	"context"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	pcvo "github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// Chantier is the projection of an active work site used by the
// aggregator. It never exposes budget or devis internals.
type Chantier struct {
	ID             int64
	Code           string
	Nom            string
	Couleur        string
	HeuresEstimees float64
}

// ChantierProvider lists active chantiers, optionally filtered by a
// free-text substring search on their name/code.
type ChantierProvider interface {
	ListerActifs(ctx context.Context, recherche string) ([]Chantier, error)
}

// AffectationProvider produces the planned-hours and capacity
// projections the aggregator needs per (chantier, week) and per week.
type AffectationProvider interface {
	HeuresPlanifiees(ctx context.Context, chantierID int64, semaines []pcvo.Semaine) (map[pcvo.Semaine]float64, error)
	CapacitePar(ctx context.Context, semaines []pcvo.Semaine) (map[pcvo.Semaine]float64, error)
	UtilisateursNonAffectes(ctx context.Context, semaines []pcvo.Semaine) (map[pcvo.Semaine]int, error)
}

// UtilisateurProvider exposes per-craft capacity and unassigned-user
// counts. The aggregator does not read it; its footer figures come from
// AffectationProvider.
type UtilisateurProvider interface {
	CapaciteParMetier(ctx context.Context, metier valueobjects.TypeMetier, semaines []pcvo.Semaine) (map[pcvo.Semaine]float64, error)
	ComptageNonAffectes(ctx context.Context, semaines []pcvo.Semaine) (map[pcvo.Semaine]int, error)
}
