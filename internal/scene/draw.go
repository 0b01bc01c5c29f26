package scene

import (
	"image/color"
	"math"

	"chosenoffset.com/shapesort/internal/core/vec"
	"chosenoffset.com/shapesort/internal/render"
)

var (
	targetColor = color.RGBA{255, 255, 255, 255}
	iconColor   = color.RGBA{0x33, 0x33, 0x44, 255}
	shadeColor  = color.RGBA{0, 0, 0, 60}
)

// Draw paints every visual back to front through cam.
func (g *Graph) Draw(dst render.Image, r render.Renderer, cam Camera) {
	w, h := dst.Size()
	if w == 0 || h == 0 {
		return
	}
	for _, v := range g.sorted() {
		sx, sy, ppu := cam.Project(v.Position, w, h)
		size := ppu * v.Scale
		switch v.Kind {
		case KindTarget:
			drawTarget(dst, r, sx, sy, size, v.Material.Icon)
		default:
			drawShape(dst, r, v, sx, sy, size)
		}
	}
}

// DrawPoint paints a small square, used for particles.
func DrawPoint(dst render.Image, r render.Renderer, cam Camera, p vec.Vec3, size float64, clr color.Color) {
	w, h := dst.Size()
	sx, sy, ppu := cam.Project(p, w, h)
	half := float32(size * ppu / 2)
	r.FillRect(dst, float32(sx)-half, float32(sy)-half, 2*half, 2*half, clr)
}

func drawTarget(dst render.Image, r render.Renderer, sx, sy, size float64, icon string) {
	half := size // targets are 2x2 world units
	r.FillRect(dst, float32(sx-half), float32(sy-half), float32(2*half), float32(2*half), targetColor)
	switch icon {
	case KindCube:
		s := 0.4 * size
		r.FillRect(dst, float32(sx-s), float32(sy-s), float32(2*s), float32(2*s), iconColor)
	case KindCone:
		// triangle points down, like the flipped circle geometry it mimics
		r.FillPolygon(dst, regularPolygon(sx, sy, 0.6*size, 3, math.Pi/2), iconColor)
	case KindSphere:
		r.FillCircle(dst, float32(sx), float32(sy), float32(0.5*size), iconColor)
	}
}

func drawShape(dst render.Image, r render.Renderer, v *Visual, sx, sy, size float64) {
	// drop shadow grows with lift
	lift := v.Position.Z * size * 0.15
	r.FillCircle(dst, float32(sx+lift), float32(sy+lift), float32(0.45*size), shadeColor)

	spin := v.Rotation.Z + v.Rotation.Y
	switch v.Kind {
	case KindCube:
		// squash with the x tilt so dragging reads as a lean
		r.FillPolygon(dst, rotatedQuad(sx, sy, 0.4*size, 0.4*size*math.Cos(v.Rotation.X), spin), v.Material.Color)
	case KindCone:
		r.FillPolygon(dst, regularPolygon(sx, sy, 0.55*size, 3, -math.Pi/2+v.Rotation.Z), v.Material.Color)
	case KindSphere:
		r.FillCircle(dst, float32(sx), float32(sy), float32(0.5*size), v.Material.Color)
	}
}

func rotatedQuad(cx, cy, hw, hh, angle float64) []render.Point {
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	sin, cos := math.Sincos(angle)
	pts := make([]render.Point, 4)
	for i, c := range corners {
		pts[i] = render.Point{
			X: float32(cx + c[0]*cos - c[1]*sin),
			Y: float32(cy + c[0]*sin + c[1]*cos),
		}
	}
	return pts
}

func regularPolygon(cx, cy, radius float64, sides int, start float64) []render.Point {
	pts := make([]render.Point, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		sin, cos := math.Sincos(start + step*float64(i))
		pts[i] = render.Point{X: float32(cx + radius*cos), Y: float32(cy + radius*sin)}
	}
	return pts
}
