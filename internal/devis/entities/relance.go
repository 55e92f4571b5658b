package entities

import (
	"time"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// StatutRelance is the lifecycle of a single planned reminder.
type StatutRelance string

const (
	StatutRelancePlanifiee StatutRelance = "PLANIFIEE"
	StatutRelanceEnvoyee   StatutRelance = "ENVOYEE"
	StatutRelanceAnnulee   StatutRelance = "ANNULEE"
	StatutRelanceEchouee   StatutRelance = "ECHOUEE"
)

// Relance is one scheduled reminder in a devis's follow-up sequence.
type Relance struct {
	ID          int64
	DevisID     int64
	Sequence    int
	Type        valueobjects.TypeRelance
	DatePrevue  time.Time
	Statut      StatutRelance
	Message     string
	EnvoyeeAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRelance validates and builds the next reminder in sequence.
func NewRelance(devisID int64, sequence int, typ valueobjects.TypeRelance, datePrevue time.Time) (*Relance, error) {
	if devisID <= 0 {
		return nil, errors.RelanceValidation("l'identifiant du devis est obligatoire")
	}
	if sequence <= 0 {
		return nil, errors.RelanceValidation("le numero de sequence doit etre positif")
	}
	now := time.Now().UTC()
	return &Relance{
		DevisID:    devisID,
		Sequence:   sequence,
		Type:       typ,
		DatePrevue: datePrevue,
		Statut:     StatutRelancePlanifiee,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Envoyer marks the reminder as sent. Only a planned reminder can be sent.
func (r *Relance) Envoyer() error {
	if r.Statut != StatutRelancePlanifiee {
		return errors.RelanceValidation("seule une relance planifiee peut etre envoyee")
	}
	now := time.Now().UTC()
	r.Statut = StatutRelanceEnvoyee
	r.EnvoyeeAt = &now
	r.UpdatedAt = now
	return nil
}

// Echouer marks the reminder as failed to deliver.
func (r *Relance) Echouer() error {
	if r.Statut != StatutRelancePlanifiee {
		return errors.RelanceValidation("seule une relance planifiee peut echouer")
	}
	r.Statut = StatutRelanceEchouee
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Annuler cancels a reminder that has not yet been sent.
func (r *Relance) Annuler() error {
	if r.Statut == StatutRelanceEnvoyee {
		return errors.RelanceValidation("une relance deja envoyee ne peut pas etre annulee")
	}
	r.Statut = StatutRelanceAnnulee
	r.UpdatedAt = time.Now().UTC()
	return nil
}
