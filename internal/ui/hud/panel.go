// Package hud draws the prompts, the in-round score and timer, and the final
// podium. Panel receives its data through the session display callbacks.
package hud

import (
	"fmt"
	"image/color"

	"chosenoffset.com/shapesort/internal/leaderboard"
	"chosenoffset.com/shapesort/internal/render"
	"chosenoffset.com/shapesort/internal/session"
)

const (
	barWidth   = 120
	barSpacing = 24
	lineHeight = 18
	padding    = 12
)

// barHeights by 1-based rank
var barHeights = map[int]int{1: 180, 2: 130, 3: 90}

// Panel is the game's 2-D overlay.
type Panel struct {
	screenWidth  int
	screenHeight int

	state     session.State
	score     int
	target    int
	remaining int
	podium    []leaderboard.Slot

	naming    int // player index being named
	players   int
	modeLabel string

	// Field is the text being typed in setup and naming. Set by the owner.
	Field *TextField

	bgColor     color.RGBA
	textColor   color.RGBA
	accentColor color.RGBA
	barColors   map[int]color.RGBA
}

// NewPanel creates a panel for a screen of the given size.
func NewPanel(width, height int) *Panel {
	return &Panel{
		screenWidth:  width,
		screenHeight: height,
		state:        session.StateSetup,
		bgColor:      color.RGBA{20, 20, 30, 220},
		textColor:    color.RGBA{230, 230, 240, 255},
		accentColor:  color.RGBA{0x33, 0x33, 0x44, 255},
		barColors: map[int]color.RGBA{
			1: {0xF9, 0xD5, 0x6E, 255},
			2: {0x86, 0xC1, 0xE3, 255},
			3: {0xFF, 0x8B, 0xA7, 255},
		},
	}
}

func (p *Panel) StateChanged(state session.State) { p.state = state }

func (p *Panel) ScoreChanged(score, target int) {
	p.score = score
	p.target = target
}

func (p *Panel) TimerTick(remaining int) { p.remaining = remaining }

func (p *Panel) PodiumReady(podium []leaderboard.Slot) {
	p.podium = append([]leaderboard.Slot(nil), podium...)
}

// SetNaming records which player the naming prompt is for.
func (p *Panel) SetNaming(index, total int) {
	p.naming = index
	p.players = total
}

// SetModeLabel sets the input source shown during play.
func (p *Panel) SetModeLabel(label string) { p.modeLabel = label }

// SetScreenSize updates the screen dimensions.
func (p *Panel) SetScreenSize(width, height int) {
	p.screenWidth = width
	p.screenHeight = height
}

// State is the last state the session reported.
func (p *Panel) State() session.State { return p.state }

// Draw renders the overlay for the current state.
func (p *Panel) Draw(dst render.Image, r render.Renderer) {
	switch p.state {
	case session.StateSetup:
		p.drawPrompt(dst, r, "How many players?", "Type a number and press Enter")
	case session.StateNaming:
		title := fmt.Sprintf("Player %d of %d, enter your name", p.naming+1, p.players)
		p.drawPrompt(dst, r, title, "Press Enter to start")
	case session.StatePlaying:
		p.drawRoundHUD(dst, r)
	case session.StateLeaderboard:
		p.drawPodium(dst, r)
	}
}

func (p *Panel) drawPrompt(dst render.Image, r render.Renderer, title, hint string) {
	value := ""
	if p.Field != nil {
		value = p.Field.Text()
	}
	lines := []string{title, "", "> " + value + "_", "", hint}

	w := 0
	for _, l := range lines {
		if lw, _ := r.MeasureText(l, 1); lw > w {
			w = lw
		}
	}
	w += padding * 2
	h := len(lines)*lineHeight + padding*2
	x := (p.screenWidth - w) / 2
	y := (p.screenHeight - h) / 2

	r.FillRect(dst, float32(x), float32(y), float32(w), float32(h), p.bgColor)
	for i, l := range lines {
		r.DrawText(dst, l, x+padding, y+padding+i*lineHeight, p.textColor, 1)
	}
}

func (p *Panel) drawRoundHUD(dst render.Image, r render.Renderer) {
	score := fmt.Sprintf("Score: %d/%d", p.score, p.target)
	timeLeft := fmt.Sprintf("Time: %ds", p.remaining)

	r.FillRect(dst, padding, padding, 140, 2*lineHeight+8, p.bgColor)
	r.DrawText(dst, score, padding+6, padding+4, p.textColor, 1)
	if p.modeLabel != "" {
		r.DrawText(dst, p.modeLabel, padding+6, padding+4+lineHeight, p.textColor, 1)
	}

	tw, _ := r.MeasureText(timeLeft, 1)
	x := p.screenWidth - tw - padding*2
	r.FillRect(dst, float32(x-6), padding, float32(tw+12), lineHeight+8, p.bgColor)
	r.DrawText(dst, timeLeft, x, padding+4, p.textColor, 1)
}

// Bar is one podium column in screen pixels.
type Bar struct {
	X, Y, Width, Height int
	Slot                leaderboard.Slot
}

// PodiumBars lays out the podium bottom-aligned and centred on the screen,
// in the given display order.
func PodiumBars(slots []leaderboard.Slot, screenWidth, screenHeight int) []Bar {
	total := len(slots)*barWidth + (len(slots)-1)*barSpacing
	x := (screenWidth - total) / 2
	base := screenHeight - 80

	bars := make([]Bar, 0, len(slots))
	for _, s := range slots {
		h, ok := barHeights[s.Rank]
		if !ok {
			h = barHeights[3]
		}
		bars = append(bars, Bar{X: x, Y: base - h, Width: barWidth, Height: h, Slot: s})
		x += barWidth + barSpacing
	}
	return bars
}

func (p *Panel) drawPodium(dst render.Image, r render.Renderer) {
	r.DrawText(dst, "Leaderboard", p.screenWidth/2-33, 40, p.textColor, 2)

	for _, b := range PodiumBars(p.podium, p.screenWidth, p.screenHeight) {
		clr, ok := p.barColors[b.Slot.Rank]
		if !ok {
			clr = p.accentColor
		}
		r.FillRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), clr)

		label := fmt.Sprintf("#%d", b.Slot.Rank)
		lw, _ := r.MeasureText(label, 1)
		r.DrawText(dst, label, b.X+(b.Width-lw)/2, b.Y+8, p.accentColor, 1)

		name := b.Slot.Entry.Name
		nw, _ := r.MeasureText(name, 1)
		r.DrawText(dst, name, b.X+(b.Width-nw)/2, b.Y-2*lineHeight, p.textColor, 1)

		t := leaderboard.FormatTime(b.Slot.Entry.Time)
		tw, _ := r.MeasureText(t, 1)
		r.DrawText(dst, t, b.X+(b.Width-tw)/2, b.Y-lineHeight, p.textColor, 1)
	}

	hint := "Press R or click to play again"
	hw, _ := r.MeasureText(hint, 1)
	r.DrawText(dst, hint, (p.screenWidth-hw)/2, p.screenHeight-40, p.textColor, 1)
}
