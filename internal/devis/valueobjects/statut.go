package valueobjects

// StatutDevis is the quote's workflow status.
type StatutDevis string

const (
	Brouillon     StatutDevis = "brouillon"
	EnValidation  StatutDevis = "en_validation"
	Envoye        StatutDevis = "envoye"
	Vu            StatutDevis = "vu"
	EnNegociation StatutDevis = "en_negociation"
	Accepte       StatutDevis = "accepte"
	Refuse        StatutDevis = "refuse"
	Perdu         StatutDevis = "perdu"
	Expire        StatutDevis = "expire"
)

var transitions = map[StatutDevis][]StatutDevis{
	Brouillon:     {EnValidation},
	EnValidation:  {Brouillon, Envoye},
	Envoye:        {Vu, EnNegociation, Accepte, Refuse, Expire},
	Vu:            {EnNegociation, Accepte, Refuse, Expire},
	EnNegociation: {Envoye, Accepte, Refuse, Perdu},
	Accepte:       {},
	Refuse:        {},
	Perdu:         {},
	Expire:        {EnNegociation},
}

var labels = map[StatutDevis]string{
	Brouillon:     "Brouillon",
	EnValidation:  "En validation",
	Envoye:        "Envoye",
	Vu:            "Vu",
	EnNegociation: "En negociation",
	Accepte:       "Accepte",
	Refuse:        "Refuse",
	Perdu:         "Perdu",
	Expire:        "Expire",
}

var couleurs = map[StatutDevis]string{
	Brouillon:     "#9E9E9E",
	EnValidation:  "#FFC107",
	Envoye:        "#2196F3",
	Vu:            "#9C27B0",
	EnNegociation: "#FF9800",
	Accepte:       "#4CAF50",
	Refuse:        "#F44336",
	Perdu:         "#795548",
	Expire:        "#607D8B",
}

// Label returns the displayable label of the status.
func (s StatutDevis) Label() string { return labels[s] }

// Couleur returns the CSS color associated with the status.
func (s StatutDevis) Couleur() string { return couleurs[s] }

// EstFinal reports whether no further transition is possible.
func (s StatutDevis) EstFinal() bool {
	return s == Accepte || s == Refuse || s == Perdu
}

// EstModifiable reports whether a devis in this status can be edited.
func (s StatutDevis) EstModifiable() bool {
	return s == Brouillon || s == EnNegociation
}

// EstActif reports whether the status is part of the active commercial pipeline.
func (s StatutDevis) EstActif() bool {
	return s != Refuse && s != Perdu && s != Expire
}

// TransitionsPossibles returns the set of statuses reachable from s.
func (s StatutDevis) TransitionsPossibles() []StatutDevis {
	return transitions[s]
}

// PeutTransitionnerVers reports whether s -> cible is an allowed edge.
func (s StatutDevis) PeutTransitionnerVers(cible StatutDevis) bool {
	for _, t := range transitions[s] {
		if t == cible {
			return true
		}
	}
	return false
}

// StatutInitial is the status assigned to a brand-new devis.
func StatutInitial() StatutDevis { return Brouillon }
