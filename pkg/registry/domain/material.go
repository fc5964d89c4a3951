package domain

import "fmt"

// Material classifies what an artifact is made of. Closed enumeration.
type Material string

const (
	MaterialCeramic Material = "ceramic"
	MaterialMetal   Material = "metal"
	MaterialStone   Material = "stone"
	MaterialGlass   Material = "glass"
	MaterialBone    Material = "bone"
	MaterialWood    Material = "wood"
	MaterialTextile Material = "textile"
	MaterialOther   Material = "other"
)

var materials = map[Material]struct{}{
	MaterialCeramic: {},
	MaterialMetal:   {},
	MaterialStone:   {},
	MaterialGlass:   {},
	MaterialBone:    {},
	MaterialWood:    {},
	MaterialTextile: {},
	MaterialOther:   {},
}

func ParseMaterial(s string) (Material, error) {
	m := Material(s)
	if _, ok := materials[m]; !ok {
		return "", fmt.Errorf("%w: invalid material %q", ErrValidation, s)
	}
	return m, nil
}

func (m Material) String() string { return string(m) }
