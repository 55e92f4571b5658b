package valueobjects

import "github.com/pinggolf/btp-planning-core/internal/devis/errors"

// OptionsPresentation is an immutable bag of presentation flags controlling
// what a generated PDF shows to the client.
//
// AfficherDebourses is always forced to false: the client view never
// reveals internal cost breakdowns, regardless of template or input.
type OptionsPresentation struct {
	AfficherDebourses           bool
	AfficherComposants          bool
	AfficherQuantites           bool
	AfficherPrixUnitaires       bool
	AfficherTVADetaillee        bool
	AfficherConditionsGenerales bool
	AfficherLogo                bool
	AfficherCoordonneesEntreprise bool
	AfficherRetenueGarantie     bool
	AfficherFraisChantierDetail bool
	TemplateNom                 string
}

var templatesPresentation = map[string]OptionsPresentation{
	"standard": {
		AfficherComposants: false, AfficherQuantites: true, AfficherPrixUnitaires: true,
		AfficherTVADetaillee: true, AfficherConditionsGenerales: true, AfficherLogo: true,
		AfficherCoordonneesEntreprise: true, AfficherRetenueGarantie: true, AfficherFraisChantierDetail: true,
		TemplateNom: "standard",
	},
	"simplifie": {
		AfficherComposants: false, AfficherQuantites: true, AfficherPrixUnitaires: true,
		AfficherTVADetaillee: false, AfficherConditionsGenerales: true, AfficherLogo: true,
		AfficherCoordonneesEntreprise: true, AfficherRetenueGarantie: true, AfficherFraisChantierDetail: false,
		TemplateNom: "simplifie",
	},
	"detaille": {
		AfficherComposants: true, AfficherQuantites: true, AfficherPrixUnitaires: true,
		AfficherTVADetaillee: true, AfficherConditionsGenerales: true, AfficherLogo: true,
		AfficherCoordonneesEntreprise: true, AfficherRetenueGarantie: true, AfficherFraisChantierDetail: true,
		TemplateNom: "detaille",
	},
	"minimaliste": {
		AfficherComposants: false, AfficherQuantites: false, AfficherPrixUnitaires: false,
		AfficherTVADetaillee: false, AfficherConditionsGenerales: true, AfficherLogo: true,
		AfficherCoordonneesEntreprise: true, AfficherRetenueGarantie: true, AfficherFraisChantierDetail: false,
		TemplateNom: "minimaliste",
	},
}

// NewOptionsPresentation validates and normalizes the options, forcing
// AfficherDebourses to false regardless of the requested value.
func NewOptionsPresentation(o OptionsPresentation) OptionsPresentation {
	o.AfficherDebourses = false
	return o
}

// OptionsPresentationDepuisTemplate builds the options from a predefined
// template name ({standard, simplifie, detaille, minimaliste}).
func OptionsPresentationDepuisTemplate(nom string) (OptionsPresentation, error) {
	o, ok := templatesPresentation[nom]
	if !ok {
		return OptionsPresentation{}, errors.OptionsPresentationInvalide("template de presentation inconnu: " + nom)
	}
	return NewOptionsPresentation(o), nil
}

// OptionsPresentationParDefaut returns the "standard" template.
func OptionsPresentationParDefaut() OptionsPresentation {
	o, _ := OptionsPresentationDepuisTemplate("standard")
	return o
}
