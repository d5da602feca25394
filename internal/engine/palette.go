package engine

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mvasko/moodmist/internal/draw"
)

// emotionHex maps emotion labels to their display colors. Unlisted labels
// fall back to a neutral gray so an unknown category never errors.
var emotionHex = map[string]string{
	"happy":      "#FFD700",
	"joyful":     "#FFD700",
	"joy":        "#FFD700",
	"excited":    "#FF6B6B",
	"calm":       "#87CEEB",
	"peaceful":   "#87CEEB",
	"relaxed":    "#98D8C8",
	"sad":        "#4A90E2",
	"anxious":    "#9B59B6",
	"stressed":   "#E74C3C",
	"angry":      "#E74C3C",
	"frustrated": "#FF8C42",
	"bored":      "#95A5A6",
	"tired":      "#7F8C8D",
	"energetic":  "#F39C12",
	"focused":    "#27AE60",
	"grateful":   "#F1C40F",
	"hopeful":    "#3498DB",
	"lonely":     "#34495E",
	"confused":   "#9B7FFF",
	"neutral":    "#BDC3C7",
}

const fallbackHex = "#9E9E9E"

// Palette is a read-only emotion to color mapping, built once at startup and
// injected into the engine.
type Palette struct {
	colors   map[string]draw.RGB
	fallback draw.RGB
}

// NewPalette builds the static emotion palette.
func NewPalette() Palette {
	colors := make(map[string]draw.RGB, len(emotionHex))
	for label, hex := range emotionHex {
		colors[label] = mustHex(hex)
	}
	return Palette{
		colors:   colors,
		fallback: mustHex(fallbackHex),
	}
}

// Color returns the display color for an emotion label. Lookup is
// case-insensitive; unknown labels get the neutral fallback.
func (p Palette) Color(emotion string) draw.RGB {
	if c, ok := p.colors[strings.ToLower(emotion)]; ok {
		return c
	}
	return p.fallback
}

// mustHex parses a hex color from the static table. A malformed entry is a
// programmer error.
func mustHex(hex string) draw.RGB {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic("engine: bad palette entry " + hex + ": " + err.Error())
	}
	return draw.RGB{R: c.R, G: c.G, B: c.B}
}
