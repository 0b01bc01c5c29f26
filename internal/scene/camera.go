package scene

import (
	"math"

	"chosenoffset.com/shapesort/internal/core/vec"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FOVDegrees float64 // vertical field of view
	Z          float64 // camera distance from the origin
	PlaneZ     float64 // depth of the interaction plane
	Aspect     float64 // width / height
}

// halfHeight is half the visible world height at the given depth.
func (c Camera) halfHeight(depth float64) float64 {
	return math.Tan(c.FOVDegrees*math.Pi/360) * (c.Z - depth)
}

// Unproject maps normalized device coordinates (-1..1, +Y up) onto the
// interaction plane.
func (c Camera) Unproject(ndcX, ndcY float64) vec.Vec3 {
	h := c.halfHeight(c.PlaneZ)
	return vec.Vec3{X: ndcX * h * c.Aspect, Y: ndcY * h, Z: c.PlaneZ}
}

// Project maps a world point to screen pixels. The third result is the number
// of pixels per world unit at the point's depth.
func (c Camera) Project(p vec.Vec3, width, height int) (sx, sy, ppu float64) {
	h := c.halfHeight(p.Z)
	if h <= 0 {
		return 0, 0, 0
	}
	aspect := float64(width) / float64(height)
	ndcX := p.X / (h * aspect)
	ndcY := p.Y / h
	sx = (ndcX + 1) / 2 * float64(width)
	sy = (1 - ndcY) / 2 * float64(height)
	ppu = float64(height) / (2 * h)
	return sx, sy, ppu
}
