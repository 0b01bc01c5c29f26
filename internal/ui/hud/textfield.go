package hud

import (
	"unicode"

	"chosenoffset.com/shapesort/internal/render"
)

// TextField is a single line of typed input.
type TextField struct {
	text    []rune
	MaxLen  int
	Numeric bool // accept digits only
}

// NewTextField creates an empty field holding at most maxLen runes.
func NewTextField(maxLen int) *TextField {
	return &TextField{MaxLen: maxLen}
}

// Set replaces the contents, truncated to MaxLen.
func (f *TextField) Set(s string) {
	f.text = f.text[:0]
	for _, r := range s {
		f.put(r)
	}
}

// Text returns the current contents.
func (f *TextField) Text() string {
	return string(f.text)
}

// Update applies this frame's typing and reports whether Enter was pressed.
func (f *TextField) Update(in render.InputManager) bool {
	for _, r := range in.AppendInputChars(nil) {
		f.put(r)
	}
	if in.IsKeyJustPressed(render.KeyBackspace) && len(f.text) > 0 {
		f.text = f.text[:len(f.text)-1]
	}
	return in.IsKeyJustPressed(render.KeyEnter)
}

func (f *TextField) put(r rune) {
	if !unicode.IsPrint(r) || (f.Numeric && !unicode.IsDigit(r)) {
		return
	}
	if f.MaxLen > 0 && len(f.text) >= f.MaxLen {
		return
	}
	f.text = append(f.text, r)
}
