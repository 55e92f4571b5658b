package valueobjects

// UniteCharge is the display unit for workload figures: hours, or
// man-days (jours-homme). Purely a presentation conversion — stored
// values always remain in hours.
type UniteCharge string

const (
	UniteHeures     UniteCharge = "heures"
	UniteJoursHomme UniteCharge = "jours_homme"
)

// heuresParJour is the standard working day used to convert hours to
// man-days for display, matching BesoinCharge.JoursHomme.
const heuresParJour = 7.0

// Convertir renders heures in the requested display unit, dividing by 7
// when man-days is selected and leaving the stored value untouched
// otherwise.
func (u UniteCharge) Convertir(heures float64) float64 {
	if u == UniteJoursHomme {
		return heures / heuresParJour
	}
	return heures
}
