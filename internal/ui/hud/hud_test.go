package hud

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/shapesort/internal/leaderboard"
	"chosenoffset.com/shapesort/internal/render"
	"chosenoffset.com/shapesort/internal/session"
)

type typingInput struct {
	chars    []rune
	justKeys map[render.Key]bool
}

func (t *typingInput) IsKeyJustPressed(k render.Key) bool { return t.justKeys[k] }
func (t *typingInput) GetCursorPosition() (int, int) { return 0, 0 }
func (t *typingInput) IsMouseButtonPressed(render.MouseButton) bool { return false }
func (t *typingInput) IsMouseButtonJustPressed(render.MouseButton) bool { return false }
func (t *typingInput) TouchIDs() []render.TouchID { return nil }
func (t *typingInput) TouchPosition(render.TouchID) (int, int) { return 0, 0 }
func (t *typingInput) AppendInputChars(r []rune) []rune { return append(r, t.chars...) }

type fakeImage struct{}

func (fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 800, 600) }
func (fakeImage) Size() (int, int) { return 800, 600 }
func (fakeImage) Fill(color.Color) {}
func (fakeImage) Clear() {}
func (fakeImage) Dispose() {}

type textRenderer struct {
	texts []string
	rects int
}

func (r *textRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) {}
func (r *textRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {}
func (r *textRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	r.rects++
}
func (r *textRenderer) FillPolygon(render.Image, []render.Point, color.Color) {}
func (r *textRenderer) DrawText(_ render.Image, s string, _, _ int, _ color.Color, _ float64) {
	r.texts = append(r.texts, s)
}
func (r *textRenderer) MeasureText(s string, scale float64) (int, int) {
	return int(float64(len(s)) * 6 * scale), int(16 * scale)
}

func (r *textRenderer) joined() string { return strings.Join(r.texts, "\n") }

func TestTextFieldTypingAndBackspace(t *testing.T) {
	f := NewTextField(5)
	in := &typingInput{chars: []rune("Ada\tLovelace")}
	assert.False(t, f.Update(in))
	assert.Equal(t, "AdaLo", f.Text())

	in = &typingInput{justKeys: map[render.Key]bool{render.KeyBackspace: true}}
	f.Update(in)
	assert.Equal(t, "AdaL", f.Text())

	in = &typingInput{justKeys: map[render.Key]bool{render.KeyEnter: true}}
	assert.True(t, f.Update(in))
}

func TestTextFieldNumeric(t *testing.T) {
	f := NewTextField(2)
	f.Numeric = true
	f.Update(&typingInput{chars: []rune("a3-45")})
	assert.Equal(t, "34", f.Text())

	f.Set("")
	assert.Empty(t, f.Text())
	f.Update(&typingInput{justKeys: map[render.Key]bool{render.KeyBackspace: true}})
	assert.Empty(t, f.Text())
}

func TestPanelTracksDisplayEvents(t *testing.T) {
	p := NewPanel(800, 600)
	var _ session.Display = p

	p.StateChanged(session.StatePlaying)
	p.ScoreChanged(3, 10)
	p.TimerTick(42)

	r := &textRenderer{}
	p.Draw(fakeImage{}, r)
	assert.Contains(t, r.joined(), "Score: 3/10")
	assert.Contains(t, r.joined(), "Time: 42s")
}

func TestPanelPrompts(t *testing.T) {
	p := NewPanel(800, 600)
	p.Field = NewTextField(10)
	p.Field.Set("3")

	r := &textRenderer{}
	p.Draw(fakeImage{}, r)
	assert.Contains(t, r.joined(), "How many players?")
	assert.Contains(t, r.joined(), "> 3_")

	p.StateChanged(session.StateNaming)
	p.SetNaming(1, 3)
	p.Field.Set("Player 2")
	r = &textRenderer{}
	p.Draw(fakeImage{}, r)
	assert.Contains(t, r.joined(), "Player 2 of 3")
	assert.Contains(t, r.joined(), "> Player 2_")
}

func TestPodiumBars(t *testing.T) {
	slots := leaderboard.Podium(leaderboard.Rank([]leaderboard.Entry{
		{Name: "a", Time: 12.3},
		{Name: "b", Time: 8.1},
		{Name: "c", Time: 15.0},
	}), nil)

	bars := PodiumBars(slots, 800, 600)
	require.Len(t, bars, 3)
	assert.Equal(t, "a", bars[0].Slot.Entry.Name)
	assert.Equal(t, "b", bars[1].Slot.Entry.Name)
	assert.Equal(t, "c", bars[2].Slot.Entry.Name)

	// winner in the middle and tallest, all sharing a baseline
	assert.Greater(t, bars[1].Height, bars[0].Height)
	assert.Greater(t, bars[0].Height, bars[2].Height)
	for _, b := range bars {
		assert.Equal(t, 520, b.Y+b.Height)
	}
	assert.Less(t, bars[0].X, bars[1].X)
	assert.Less(t, bars[1].X, bars[2].X)
	// centred
	assert.Equal(t, 800-(bars[2].X+bars[2].Width), bars[0].X)
}

func TestPanelDrawsPodium(t *testing.T) {
	p := NewPanel(800, 600)
	p.StateChanged(session.StateLeaderboard)
	p.PodiumReady([]leaderboard.Slot{
		{Rank: 2, Entry: leaderboard.Entry{Name: "Slow", Time: 60}},
		{Rank: 1, Entry: leaderboard.Entry{Name: "Fast", Time: 10}},
	})

	r := &textRenderer{}
	p.Draw(fakeImage{}, r)
	out := r.joined()
	assert.Contains(t, out, "Fast")
	assert.Contains(t, out, "10.0s")
	assert.Contains(t, out, "60.0s")
	assert.Contains(t, out, "#1")
	assert.Equal(t, 2, r.rects)
}
