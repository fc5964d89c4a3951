package domain

import "fmt"

// Era classifies an artifact by historical period. The set of values is
// closed; anything else is rejected at parse time.
type Era string

const (
	EraPaleolithic Era = "paleolithic"
	EraNeolithic   Era = "neolithic"
	EraBronzeAge   Era = "bronze_age"
	EraIronAge     Era = "iron_age"
	EraAntiquity   Era = "antiquity"
	EraMiddleAges  Era = "middle_ages"
	EraModern      Era = "modern"
)

var eras = map[Era]struct{}{
	EraPaleolithic: {},
	EraNeolithic:   {},
	EraBronzeAge:   {},
	EraIronAge:     {},
	EraAntiquity:   {},
	EraMiddleAges:  {},
	EraModern:      {},
}

func ParseEra(s string) (Era, error) {
	e := Era(s)
	if _, ok := eras[e]; !ok {
		return "", fmt.Errorf("%w: invalid era %q", ErrValidation, s)
	}
	return e, nil
}

func (e Era) String() string { return string(e) }
