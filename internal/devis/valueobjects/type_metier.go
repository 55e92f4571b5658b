package valueobjects

// TypeMetier is the fixed craft-type catalog shared by discharge details
// (labor craft) and planning-charge weekly needs.
type TypeMetier string

const (
	Employe       TypeMetier = "employe"
	SousTraitant  TypeMetier = "sous_traitant"
	Charpentier   TypeMetier = "charpentier"
	Couvreur      TypeMetier = "couvreur"
	Electricien   TypeMetier = "electricien"
	Macon         TypeMetier = "macon"
	Coffreur      TypeMetier = "coffreur"
	Ferrailleur   TypeMetier = "ferrailleur"
	Grutier       TypeMetier = "grutier"
)

var metierLabels = map[TypeMetier]string{
	Employe:      "Employe",
	SousTraitant: "Sous-traitant",
	Charpentier:  "Charpentier",
	Couvreur:     "Couvreur",
	Electricien:  "Electricien",
	Macon:        "Macon",
	Coffreur:     "Coffreur",
	Ferrailleur:  "Ferrailleur",
	Grutier:      "Grutier",
}

var metierCouleurs = map[TypeMetier]string{
	Employe:      "#2C3E50",
	SousTraitant: "#E74C3C",
	Charpentier:  "#27AE60",
	Couvreur:     "#E67E22",
	Electricien:  "#EC407A",
	Macon:        "#795548",
	Coffreur:     "#F1C40F",
	Ferrailleur:  "#607D8B",
	Grutier:      "#1ABC9C",
}

// Label returns the readable craft-type label.
func (t TypeMetier) Label() string {
	if l, ok := metierLabels[t]; ok {
		return l
	}
	return string(t)
}

// Couleur returns the presentation color for the craft badge.
func (t TypeMetier) Couleur() string {
	if c, ok := metierCouleurs[t]; ok {
		return c
	}
	return "#3498DB"
}

// AllTypesMetier returns every known craft type, in catalog order.
func AllTypesMetier() []TypeMetier {
	return []TypeMetier{Employe, SousTraitant, Charpentier, Couvreur, Electricien, Macon, Coffreur, Ferrailleur, Grutier}
}
