package valueobjects

// TypeDebourse is the closed set of direct-cost kinds on a discharge detail.
type TypeDebourse string

const (
	MOE            TypeDebourse = "moe"
	Materiaux      TypeDebourse = "materiaux"
	SousTraitance  TypeDebourse = "sous_traitance"
	Materiel       TypeDebourse = "materiel"
	Deplacement    TypeDebourse = "deplacement"
)

// EstMOE reports whether this kind carries the labor-specific fields
// (craft type, hourly rate).
func (t TypeDebourse) EstMOE() bool { return t == MOE }
