package valueobjects

import "github.com/pinggolf/btp-planning-core/internal/devis/errors"

// TypeRelance is the channel used for a follow-up.
type TypeRelance string

const (
	RelanceEmail TypeRelance = "email"
	RelancePush  TypeRelance = "push"
	RelanceBoth  TypeRelance = "both"
)

// ConfigRelances configures the automatic follow-up schedule carried by a devis.
type ConfigRelances struct {
	Delais           []int // ordered positive day offsets, e.g. [3, 7, 14]
	Actif            bool
	TypeRelanceDefaut TypeRelance
}

// NewConfigRelances validates that delays are strictly positive and strictly
// ordered (ascending, no duplicates).
func NewConfigRelances(delais []int, actif bool, typeDefaut TypeRelance) (ConfigRelances, error) {
	for i, d := range delais {
		if d <= 0 {
			return ConfigRelances{}, errors.ConfigRelancesInvalide("les delais de relance doivent etre strictement positifs")
		}
		if i > 0 && d <= delais[i-1] {
			return ConfigRelances{}, errors.ConfigRelancesInvalide("les delais de relance doivent etre strictement croissants")
		}
	}
	switch typeDefaut {
	case RelanceEmail, RelancePush, RelanceBoth:
	default:
		return ConfigRelances{}, errors.ConfigRelancesInvalide("type de relance par defaut invalide")
	}
	return ConfigRelances{Delais: delais, Actif: actif, TypeRelanceDefaut: typeDefaut}, nil
}

// ConfigRelancesParDefaut is the out-of-the-box 3/7/14-day schedule.
func ConfigRelancesParDefaut() ConfigRelances {
	cfg, _ := NewConfigRelances([]int{3, 7, 14}, true, RelanceEmail)
	return cfg
}
