// Package valueobjects holds the planning-charge module's value types:
// the ISO week identifier, occupancy ratio, and display-unit converter.
// None of these have an analog in the cost-estimation domain the rest of
// the module is grounded on; they are built directly from the aggregator's
// week-sequence and occupancy-bucket contract.
package valueobjects

import (
	"fmt"
	"time"

	"github.com/pinggolf/btp-planning-core/internal/planningcharge/errors"
)

// Semaine is an ISO year + ISO week number, encoded as "SWW-YYYY" on the
// wire (e.g. "S05-2026").
type Semaine struct {
	annee  int
	numero int
}

// NewSemaine builds a Semaine from its ISO year and week number.
func NewSemaine(annee, numero int) (Semaine, error) {
	if numero < 1 || numero > 53 {
		return Semaine{}, errors.InvalidSemaineRange(fmt.Sprintf("numero de semaine invalide: %d (attendu 1..53)", numero))
	}
	return Semaine{annee: annee, numero: numero}, nil
}

// SemaineDepuisDate derives the ISO week containing t.
func SemaineDepuisDate(t time.Time) Semaine {
	annee, numero := t.ISOWeek()
	return Semaine{annee: annee, numero: numero}
}

// ParseSemaine decodes the "SWW-YYYY" wire format.
func ParseSemaine(s string) (Semaine, error) {
	var numero, annee int
	if _, err := fmt.Sscanf(s, "S%02d-%04d", &numero, &annee); err != nil {
		return Semaine{}, errors.InvalidSemaineRange(fmt.Sprintf("format de semaine invalide: %q (attendu SWW-YYYY)", s))
	}
	return NewSemaine(annee, numero)
}

// String renders the "SWW-YYYY" wire format.
func (s Semaine) String() string {
	return fmt.Sprintf("S%02d-%04d", s.numero, s.annee)
}

// Annee returns the ISO year.
func (s Semaine) Annee() int { return s.annee }

// Numero returns the ISO week number.
func (s Semaine) Numero() int { return s.numero }

// Before reports whether s chronologically precedes o.
func (s Semaine) Before(o Semaine) bool {
	if s.annee != o.annee {
		return s.annee < o.annee
	}
	return s.numero < o.numero
}

// Equal reports whether s and o denote the same ISO week.
func (s Semaine) Equal(o Semaine) bool { return s.annee == o.annee && s.numero == o.numero }

// Next returns the following ISO week, rolling the year over at week 53
// (or 52 for years without a 53rd ISO week).
func (s Semaine) Next() Semaine {
	lundi, _ := s.Plage()
	suivant := lundi.AddDate(0, 0, 7)
	return SemaineDepuisDate(suivant)
}

// Plage returns the [monday, sunday] calendar range covered by the week.
func (s Semaine) Plage() (lundi, dimanche time.Time) {
	// ISO week day 4 (Thursday) of week 1 always falls in the ISO year.
	jan4 := time.Date(s.annee, time.January, 4, 0, 0, 0, 0, time.UTC)
	offsetToMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offsetToMonday)
	lundi = week1Monday.AddDate(0, 0, (s.numero-1)*7)
	dimanche = lundi.AddDate(0, 0, 6)
	return lundi, dimanche
}

// SequenceSemaines generates the inclusive week sequence from start through
// end, per the aggregator's week-range contract.
func SequenceSemaines(start, end Semaine) ([]Semaine, error) {
	if end.Before(start) {
		return nil, errors.InvalidSemaineRange("la semaine de fin precede la semaine de debut")
	}
	var seq []Semaine
	cur := start
	for {
		seq = append(seq, cur)
		if cur.Equal(end) {
			break
		}
		if cur.Before(end) {
			cur = cur.Next()
			continue
		}
		break
	}
	return seq, nil
}
