package skin

import (
	"errors"
	"fmt"
)

// ErrUnknownPart is returned by ParsePart for names outside the part table.
var ErrUnknownPart = errors.New("unknown part")

// Part identifies one box of the player model.
type Part int

// Base body parts, overlay layers and the cape. Overlays follow the base
// parts in the same order so Part.Overlay and Part.Base are offsets.
const (
	Head Part = iota
	Torso
	RightArm
	LeftArm
	RightLeg
	LeftLeg
	Hat
	Jacket
	RightSleeve
	LeftSleeve
	RightPants
	LeftPants
	Cape

	numParts
)

const numBase = Hat - Head

var partNames = [numParts]string{
	Head:        "head",
	Torso:       "torso",
	RightArm:    "right-arm",
	LeftArm:     "left-arm",
	RightLeg:    "right-leg",
	LeftLeg:     "left-leg",
	Hat:         "hat",
	Jacket:      "jacket",
	RightSleeve: "right-sleeve",
	LeftSleeve:  "left-sleeve",
	RightPants:  "right-pants",
	LeftPants:   "left-pants",
	Cape:        "cape",
}

func (p Part) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Part(%d)", int(p))
	}
	return partNames[p]
}

// Valid reports whether p is a member of the part table.
func (p Part) Valid() bool {
	return p >= Head && p < numParts
}

// IsBase reports whether p is a body part drawn from the skin's base layer.
func (p Part) IsBase() bool {
	return p >= Head && p < Hat
}

// IsOverlay reports whether p is a garment layer drawn over a base part.
func (p Part) IsOverlay() bool {
	return p >= Hat && p < Cape
}

// Toggleable reports whether p has a visibility bit.
func (p Part) Toggleable() bool {
	return p.IsOverlay() || p == Cape
}

// Base returns the body part an overlay layer covers. Base parts and the
// cape return themselves.
func (p Part) Base() Part {
	if p.IsOverlay() {
		return p - numBase
	}
	return p
}

// Overlay returns the layer covering a base part. Overlays and the cape
// return themselves.
func (p Part) Overlay() Part {
	if p.IsBase() {
		return p + numBase
	}
	return p
}

// ParsePart looks a part up by its name.
func ParsePart(name string) (Part, error) {
	for p, n := range partNames {
		if n == name {
			return Part(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPart, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Part) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPart, int(p))
	}
	return []byte(partNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Part) UnmarshalText(b []byte) error {
	v, err := ParsePart(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// BaseParts returns the six body parts in draw order.
func BaseParts() []Part {
	return []Part{Head, Torso, RightLeg, LeftLeg, RightArm, LeftArm}
}

// Overlays returns the six garment layers in draw order.
func Overlays() []Part {
	return []Part{Hat, Jacket, RightPants, LeftPants, RightSleeve, LeftSleeve}
}

// Layers returns every part with a visibility bit.
func Layers() []Part {
	return append(Overlays(), Cape)
}

// Visibility is the set of shown layers, one bit per part. Parts without
// a visibility bit are always shown.
type Visibility uint16

// AllVisible shows every layer.
func AllVisible() Visibility {
	var v Visibility
	for _, p := range Layers() {
		v |= 1 << p
	}
	return v
}

// Visible reports whether part p is shown.
func (v Visibility) Visible(p Part) bool {
	if !p.Toggleable() {
		return p.Valid()
	}
	return v&(1<<p) != 0
}

// With returns v with the bit of p set to on. Parts without a visibility
// bit are ignored.
func (v Visibility) With(p Part, on bool) Visibility {
	if !p.Toggleable() {
		return v
	}
	if on {
		return v | 1<<p
	}
	return v &^ (1 << p)
}
