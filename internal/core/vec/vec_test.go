package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	v := Vec3{0, 0, 0}.Lerp(Vec3{10, -10, 2}, 0.2)
	assert.InDelta(t, 2.0, v.X, 1e-9)
	assert.InDelta(t, -2.0, v.Y, 1e-9)
	assert.InDelta(t, 0.4, v.Z, 1e-9)
}

func TestPlanarDistanceIgnoresDepth(t *testing.T) {
	d := PlanarDistance(Vec3{0, 0, 0}, Vec3{3, 4, 100})
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(Vec2{0, 0}, Vec2{1, 2})
	assert.Equal(t, Vec2{0.5, 1}, m)
}
