package engine

import (
	"math"
	"testing"

	"github.com/mvasko/moodmist/internal/draw"
)

func TestFadeAlpha(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		lifespan int
		want     float64
	}{
		{"Newborn fully opaque", 0, 200, 1},
		{"End of life fully transparent", 200, 200, 0},
		{"Past end clamps to zero", 250, 200, 0},
		{"Halfway", 100, 200, 0.5},
		{"Degenerate lifespan", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fadeAlpha(tt.age, tt.lifespan)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("fadeAlpha(%d, %d) = %v, want %v", tt.age, tt.lifespan, got, tt.want)
			}
		})
	}
}

func TestLinkAlpha(t *testing.T) {
	tests := []struct {
		name string
		d    float64
		want float64
	}{
		{"Touching", 0, linkOpacity},
		{"At threshold", linkDistance, 0},
		{"Past threshold", linkDistance * 2, 0},
		{"Halfway", linkDistance / 2, linkOpacity / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linkAlpha(tt.d)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("linkAlpha(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestDrawFrameExpiredParticleInvisible(t *testing.T) {
	c := draw.NewCanvas(64, 64)
	particles := []Particle{
		{X: 32, Y: 32, Radius: 3, Color: draw.RGB{R: 1}, Age: 100, Lifespan: 100},
	}
	DrawFrame(c, particles)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if p := c.PixelAt(x, y); p.R != 0 || p.G != 0 || p.B != 0 {
				t.Fatalf("pixel (%d,%d) = %+v, expired particle must render nothing", x, y, p)
			}
		}
	}
}

func TestDrawFrameNewbornParticleVisible(t *testing.T) {
	c := draw.NewCanvas(64, 64)
	particles := []Particle{
		{X: 32, Y: 32, Radius: 2, Color: draw.RGB{G: 1}, Age: 0, Lifespan: 100},
	}
	DrawFrame(c, particles)

	// Body pass: center pixel at full fade times body opacity
	if got := c.PixelAt(32, 32); math.Abs(got.G-bodyOpacity-(1-bodyOpacity)*glowOpacity) > 0.01 {
		t.Errorf("center pixel G = %v, want body+glow composite", got.G)
	}
	// Glow pass: a pixel outside the body radius but inside 2x radius
	if got := c.PixelAt(32+3, 32); got.G <= 0 {
		t.Error("glow ring pixel not drawn")
	}
}

func TestDrawFrameLinksNearbyPair(t *testing.T) {
	c := draw.NewCanvas(128, 8)
	particles := []Particle{
		{X: 20, Y: 4, Radius: 1, Color: draw.RGB{R: 1}, Age: 0, Lifespan: 100},
		{X: 60, Y: 4, Radius: 1, Color: draw.RGB{B: 1}, Age: 0, Lifespan: 100},
	}
	DrawFrame(c, particles)

	// The midpoint lies on the link line, away from both bodies
	if got := c.PixelAt(40, 4); (got == draw.RGB{}) {
		t.Error("no link drawn between particles 40px apart")
	}

	// A distant pair draws no link
	c2 := draw.NewCanvas(256, 8)
	far := []Particle{
		{X: 10, Y: 4, Radius: 1, Color: draw.RGB{R: 1}, Age: 0, Lifespan: 100},
		{X: 130, Y: 4, Radius: 1, Color: draw.RGB{B: 1}, Age: 0, Lifespan: 100},
	}
	DrawFrame(c2, far)
	if got := c2.PixelAt(70, 4); !(got == draw.RGB{}) {
		t.Errorf("link drawn at distance 120 > threshold: %+v", got)
	}
}

func TestDrawFrameSymmetricPairOrder(t *testing.T) {
	a := Particle{X: 10, Y: 4, Radius: 1, Color: draw.RGB{R: 1}, Age: 0, Lifespan: 100}
	b := Particle{X: 50, Y: 4, Radius: 1, Color: draw.RGB{B: 1}, Age: 0, Lifespan: 100}

	c1 := draw.NewCanvas(64, 8)
	DrawFrame(c1, []Particle{a, b})
	c2 := draw.NewCanvas(64, 8)
	DrawFrame(c2, []Particle{b, a})

	for x := 0; x < 64; x++ {
		for y := 0; y < 8; y++ {
			if c1.PixelAt(x, y) != c2.PixelAt(x, y) {
				t.Fatalf("pair order changed output at (%d,%d)", x, y)
			}
		}
	}
}

func TestDrawFrameDegenerateSurface(t *testing.T) {
	c := draw.NewCanvas(0, 0) // clamps to 1x1
	particles := []Particle{
		{X: 400, Y: 300, Radius: 2, Color: draw.RGB{R: 1}, Age: 0, Lifespan: 100},
	}
	DrawFrame(c, particles) // must not panic
}
