package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// White is the stroke color used for connective lines.
var White = RGB{R: 1, G: 1, B: 1}

// isBlack reports whether the color is close enough to the terminal
// background to skip emitting a cell for it.
func (c RGB) isBlack() bool {
	const eps = 1.0 / 512
	return c.R < eps && c.G < eps && c.B < eps
}

// byte255 converts a channel value to an 8-bit terminal color component.
func byte255(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}

// Canvas is a truecolor drawing buffer with 2x vertical resolution using
// half-block characters. Coordinates are in pixels: width columns by height
// sub-pixel rows (two per terminal row). All drawing composites source-over
// onto a black background.
type Canvas struct {
	width  int
	height int
	pixels []RGB // Flat slice: [y*width + x]

	// Offset for centering the render area when the terminal is larger
	// than the canvas. 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Reusable buffer for batching render output
}

// NewCanvas creates a canvas of width x height pixels. Non-positive
// dimensions are clamped to 1x1.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize sets the canvas dimensions and clears all pixel state. Non-positive
// dimensions are clamped to a minimum of 1x1. Safe to call between frames at
// any time; the next frame simply draws against the new bounds.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width != c.width || height != c.height {
		c.width = width
		c.height = height
		c.pixels = make([]RGB, width*height)
		return
	}
	c.Clear()
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in sub-pixel rows.
func (c *Canvas) Height() int {
	return c.height
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at
// (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels to black.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// BlendPixel composites col at the given opacity onto the pixel at (x, y).
// Out-of-bounds coordinates are ignored.
func (c *Canvas) BlendPixel(x, y int, col RGB, alpha float64) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	i := y*c.width + x
	p := c.pixels[i]
	c.pixels[i] = RGB{
		R: p.R*(1-alpha) + col.R*alpha,
		G: p.G*(1-alpha) + col.G*alpha,
		B: p.B*(1-alpha) + col.B*alpha,
	}
}

// PixelAt returns the composited color of the pixel at (x, y), or black for
// out-of-bounds coordinates.
func (c *Canvas) PixelAt(x, y int) RGB {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return RGB{}
	}
	return c.pixels[y*c.width+x]
}

// FillCircle composites a filled circle of radius r centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col RGB, alpha float64) {
	if r <= 0 || alpha <= 0 {
		return
	}
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	r2 := r * r

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				c.BlendPixel(x, y, col, alpha)
			}
		}
	}
}

// BlendLine composites a line between two points using Bresenham's algorithm.
func (c *Canvas) BlendLine(p1, p2 Point, col RGB, alpha float64) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.BlendPixel(x1, y1, col, alpha)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under typical MTU size for smooth SSH transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer as truecolor half-block cells.
// Each terminal cell carries two vertically stacked pixels: the upper one as
// the foreground of '▀', the lower one as the background. Cells where both
// pixels are black are skipped, so callers should clear the terminal region
// before rendering a new frame.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.width * c.height * 20)

	rows := (c.height + 1) / 2
	for row := 0; row < rows; row++ {
		topY := row * 2
		bottomY := topY + 1
		topOffset := topY * c.width
		bottomOffset := bottomY * c.width

		for col := 0; col < c.width; col++ {
			top := c.pixels[topOffset+col]
			var bottom RGB
			if bottomY < c.height {
				bottom = c.pixels[bottomOffset+col]
			}
			if top.isBlack() && bottom.isBlack() {
				continue
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀",
				row+1+c.offsetRow, col+1+c.offsetCol,
				byte255(top.R), byte255(top.G), byte255(top.B),
				byte255(bottom.R), byte255(bottom.G), byte255(bottom.B))
		}
	}
	c.renderBuf.WriteString("\033[0m")

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
