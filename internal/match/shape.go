package match

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"

	"chosenoffset.com/shapesort/internal/core/vec"
	"chosenoffset.com/shapesort/internal/scene"
)

// Kind is a shape family. Every shape and target has exactly one.
type Kind int

const (
	KindCube Kind = iota
	KindCone
	KindSphere
)

// Palette lists the kinds a round draws from.
var Palette = []Kind{KindCube, KindCone, KindSphere}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindCube:
		return scene.KindCube
	case KindCone:
		return scene.KindCone
	case KindSphere:
		return scene.KindSphere
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Color is the clay colour a kind is painted with.
func (k Kind) Color() color.RGBA {
	switch k {
	case KindCube:
		return color.RGBA{0x86, 0xC1, 0xE3, 0xFF}
	case KindCone:
		return color.RGBA{0xFF, 0x8B, 0xA7, 0xFF}
	case KindSphere:
		return color.RGBA{0xF9, 0xD5, 0x6E, 0xFF}
	default:
		return color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	}
}

// Shape is a draggable piece.
type Shape struct {
	ID           uuid.UUID
	Kind         Kind
	Position     vec.Vec3
	BasePosition vec.Vec3 // where it eases back to when let go
	Rotation     vec.Vec3
	Grabbed      bool
	Active       bool // false once matched

	handle scene.Handle
}

// Target is a fixed drop zone.
type Target struct {
	Kind     Kind
	Position vec.Vec3
	Scale    float64

	pulseLeft float64 // seconds
	handle    scene.Handle
}

// Pulsing reports whether the match pulse is still showing.
func (t Target) Pulsing() bool {
	return t.pulseLeft > 0
}

// Matches is the drop rule: same kind and planar distance under tolerance.
func Matches(s Shape, t Target, tolerance float64) bool {
	return s.Kind == t.Kind && vec.PlanarDistance(s.Position, t.Position) < tolerance
}

// targetLayout is the fixed row of drop zones, left to right.
var targetLayout = []struct {
	kind Kind
	x    float64
}{
	{KindCone, -3},
	{KindCube, 0},
	{KindSphere, 3},
}
