package entities

import (
	"fmt"
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/errors"
	pcvo "github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

const heuresParJour = 7.0

// BesoinCharge is one workload requirement: a craft's headcount need, in
// hours, for a chantier during a given ISO week.
type BesoinCharge struct {
	ID            int64
	ChantierID    int64
	Semaine       pcvo.Semaine
	Metier        valueobjects.TypeMetier
	BesoinHeures  float64
	CreatedBy     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBesoinCharge validates and builds a new workload requirement.
func NewBesoinCharge(chantierID int64, semaine pcvo.Semaine, metier valueobjects.TypeMetier, besoinHeures float64, createdBy int64) (*BesoinCharge, error) {
	if chantierID <= 0 {
		return nil, errors.Validation("BesoinChargeValidationError", "l'identifiant du chantier est obligatoire")
	}
	if createdBy <= 0 {
		return nil, errors.Validation("BesoinChargeValidationError", "le createur est obligatoire")
	}
	if besoinHeures < 0 {
		return nil, errors.Validation("BesoinChargeValidationError", "le besoin en heures ne peut pas etre negatif")
	}
	now := time.Now().UTC()
	return &BesoinCharge{
		ChantierID:   chantierID,
		Semaine:      semaine,
		Metier:       metier,
		BesoinHeures: besoinHeures,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// JoursHomme converts the hourly requirement to man-days.
func (b *BesoinCharge) JoursHomme() float64 { return b.BesoinHeures / heuresParJour }

// CodeUnique is the natural key "<chantier>-<semaine>-<metier>".
func (b *BesoinCharge) CodeUnique() string {
	return fmt.Sprintf("%d-%s-%s", b.ChantierID, b.Semaine.String(), b.Metier)
}
