package game

import (
	"image/color"

	"chosenoffset.com/shapesort/internal/render"
	"chosenoffset.com/shapesort/internal/scene"
)

const particleSize = 0.2 // world units at scale 1

var (
	backgroundColor = color.RGBA{0x2c, 0x2c, 0x34, 255}
	messageColor    = color.NRGBA{240, 240, 240, 255}
)

// Draw renders the current state.
func (m *Manager) Draw(screen render.Image) {
	screen.Fill(backgroundColor)
	m.Game.Draw(screen, m.Renderer)
	m.Panel.Draw(screen, m.Renderer)
	m.drawMessages(screen)
}

// Draw paints the scene and particles.
func (g *Game) Draw(screen render.Image, r render.Renderer) {
	cam := g.Projector.Camera()
	g.Scene.Draw(screen, r, cam)
	for _, p := range g.Particles.Particles() {
		scene.DrawPoint(screen, r, cam, p.Position, particleSize*p.Scale, p.Color)
	}
}

func (m *Manager) drawMessages(screen render.Image) {
	w, h := screen.Size()
	y := h - 60
	for i := len(m.Messages) - 1; i >= 0; i-- {
		msg := m.Messages[i]
		a := msg.Alpha()
		if a <= 0 {
			continue
		}
		clr := messageColor
		clr.A = uint8(a * 255)
		tw, _ := m.Renderer.MeasureText(msg.Text, 1)
		m.Renderer.DrawText(screen, msg.Text, (w-tw)/2, y, clr, 1)
		y -= 18
	}
}
