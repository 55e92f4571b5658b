// Package entities holds the devis module's aggregate roots and leaf entities.
package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// Devis is the commercial quote, the root aggregate of the module.
type Devis struct {
	ID          int64
	Numero      string
	ClientNom   string
	ClientAdresse string
	ClientTelephone string
	ClientEmail string
	ChantierRef string
	Objet       string
	DateCreation    time.Time
	DateValidite    *time.Time
	Statut      valueobjects.StatutDevis

	MontantTotalHT  decimal.Decimal
	MontantTotalTTC decimal.Decimal

	TauxMargeGlobal            decimal.Decimal
	CoefficientFraisGeneraux   decimal.Decimal
	TauxTVADefaut              decimal.Decimal
	RetenueGarantiePct         decimal.Decimal

	TauxMargeMOE           *decimal.Decimal
	TauxMargeMateriaux     *decimal.Decimal
	TauxMargeSousTraitance *decimal.Decimal
	TauxMargeMateriel      *decimal.Decimal
	TauxMargeDeplacement   *decimal.Decimal

	Notes               string
	ConditionsGenerales string

	CommercialID  *int64
	ConducteurID  *int64
	ChantierIDOrig *int64 // site identifier looked up by id only, out of scope

	// Versioning (DEV-19)
	TypeVersion      valueobjects.TypeVersion
	VersionNumero    int
	DevisParentID    *int64 // original-of-the-family id, resolved by versioning use cases
	Figee            bool

	// Presentation & relances
	OptionsPresentation valueobjects.OptionsPresentation
	ConfigRelances      valueobjects.ConfigRelances

	// Conversion to work-site
	Convertie   bool
	ChantierID  *int64

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time

	DeletedAt *time.Time
	DeletedBy *int64
}

// NewDevis validates and builds a brand-new devis in BROUILLON status.
func NewDevis(numero, clientNom string, createdBy int64) (*Devis, error) {
	if numero == "" {
		return nil, errors.DevisValidation("le numero du devis est obligatoire")
	}
	if clientNom == "" {
		return nil, errors.DevisValidation("le nom du client est obligatoire")
	}
	now := time.Now().UTC()
	return &Devis{
		Numero:                   numero,
		ClientNom:                clientNom,
		Statut:                   valueobjects.StatutInitial(),
		MontantTotalHT:           decimal.Zero,
		MontantTotalTTC:          decimal.Zero,
		TauxMargeGlobal:          decimal.NewFromInt(15),
		CoefficientFraisGeneraux: decimal.NewFromInt(12),
		TauxTVADefaut:            decimal.NewFromInt(20),
		RetenueGarantiePct:       decimal.Zero,
		TypeVersion:              valueobjects.VersionOriginal,
		VersionNumero:            1,
		OptionsPresentation:      valueobjects.OptionsPresentationParDefaut(),
		ConfigRelances:           valueobjects.ConfigRelancesParDefaut(),
		CreatedBy:                createdBy,
		DateCreation:             now,
		CreatedAt:                now,
		UpdatedAt:                now,
	}, nil
}

// Validate re-checks the invariants enforced at construction time; callers
// run it again after mutating fields loaded from persistence.
func (d *Devis) Validate() error {
	if d.Numero == "" {
		return errors.DevisValidation("le numero du devis est obligatoire")
	}
	if d.ClientNom == "" {
		return errors.DevisValidation("le nom du client est obligatoire")
	}
	if d.TauxMargeGlobal.IsNegative() {
		return errors.DevisValidation("le taux de marge global ne peut pas etre negatif")
	}
	if d.CoefficientFraisGeneraux.IsNegative() {
		return errors.DevisValidation("le coefficient de frais generaux ne peut pas etre negatif")
	}
	hundred := decimal.NewFromInt(100)
	if d.TauxTVADefaut.IsNegative() || d.TauxTVADefaut.GreaterThan(hundred) {
		return errors.DevisValidation("le taux de TVA par defaut doit etre entre 0 et 100%")
	}
	if d.RetenueGarantiePct.IsNegative() || d.RetenueGarantiePct.GreaterThan(hundred) {
		return errors.DevisValidation("la retenue de garantie doit etre entre 0 et 100%")
	}
	if d.DateValidite != nil && d.DateValidite.Before(d.DateCreation) {
		return errors.DevisValidation("la date de validite ne peut pas etre anterieure a la date de creation")
	}
	return nil
}

// EstModifiable reports whether the devis can currently be edited.
func (d *Devis) EstModifiable() bool {
	return !d.Figee && d.Statut.EstModifiable()
}

// EstSupprime reports whether the devis has been soft-deleted.
func (d *Devis) EstSupprime() bool { return d.DeletedAt != nil }

// EstExpire reports whether today is past the validity date.
func (d *Devis) EstExpire() bool {
	if d.DateValidite == nil {
		return false
	}
	return time.Now().UTC().After(*d.DateValidite)
}

// Transitionner performs a guarded status transition.
func (d *Devis) Transitionner(cible valueobjects.StatutDevis) error {
	if !d.Statut.PeutTransitionnerVers(cible) {
		return errors.TransitionInvalide(string(d.Statut), string(cible))
	}
	d.Statut = cible
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Geler freezes the devis version, forbidding further edits or deletion.
// A frozen devis rejects re-freezing.
func (d *Devis) Geler() error {
	if d.Figee {
		return errors.VersionFigee(d.ID)
	}
	d.Figee = true
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Supprimer marks the devis as soft-deleted. Callers must first verify the
// devis is in BROUILLON and is not frozen (use case responsibility, see
// DevisNotModifiableError / VersionFigeeError in §7/§8).
func (d *Devis) Supprimer(deletedBy int64) {
	now := time.Now().UTC()
	d.DeletedAt = &now
	d.DeletedBy = &deletedBy
}

// MarquerConvertie records the conversion to a work-site, synchronously, per
// the port-based conversion path chosen in SPEC_FULL.md §3.
func (d *Devis) MarquerConvertie(chantierID int64) error {
	if d.Convertie {
		return errors.DevisDejaConverti(d.ID)
	}
	d.Convertie = true
	d.ChantierID = &chantierID
	d.UpdatedAt = time.Now().UTC()
	return nil
}
