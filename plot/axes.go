package plot

import (
	"image"
	"image/color"
	"math"

	"github.com/cwbudde/algo-ligo/dsp/core"
)

// Border sizes in pixels around the plotting area.
const (
	borderTop    = 50
	borderLeft   = 90
	borderBottom = 60
	borderRight  = 30
)

// axes maps log-log data coordinates onto the plotting area.
type axes struct {
	area       image.Rectangle
	xMin, xMax float64
	yMin, yMax float64
}

func newAxes(bounds image.Rectangle, xMin, xMax, yMin, yMax float64) axes {
	return axes{
		area: image.Rect(
			bounds.Min.X+borderLeft,
			bounds.Min.Y+borderTop,
			bounds.Max.X-borderRight,
			bounds.Max.Y-borderBottom,
		),
		xMin: xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
	}
}

// point returns the pixel of (x, y) and whether it is drawable. Points
// outside the axis ranges are clamped to the frame edge.
func (a axes) point(x, y float64) (image.Point, bool) {
	if !(x > 0) || !(y > 0) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return image.Point{}, false
	}

	fx := (math.Log10(x) - math.Log10(a.xMin)) / (math.Log10(a.xMax) - math.Log10(a.xMin))
	fy := (math.Log10(y) - math.Log10(a.yMin)) / (math.Log10(a.yMax) - math.Log10(a.yMin))
	fy = core.Clamp(fy, 0, 1)

	px := a.area.Min.X + int(math.Round(fx*float64(a.area.Dx()-1)))
	py := a.area.Max.Y - 1 - int(math.Round(fy*float64(a.area.Dy()-1)))
	return image.Point{X: px, Y: py}, true
}

// xTicks returns the axis positions labelled on the frequency axis: each
// decade and the 2x and 5x multiples inside the range.
func (a axes) xTicks() []float64 {
	var out []float64
	for e := math.Floor(math.Log10(a.xMin)); e <= math.Ceil(math.Log10(a.xMax)); e++ {
		for _, m := range []float64{1, 2, 5} {
			v := m * math.Pow(10, e)
			if v >= a.xMin*(1-1e-9) && v <= a.xMax*(1+1e-9) {
				out = append(out, v)
			}
		}
	}
	return out
}

// yTicks returns the decades of the ASD axis.
func (a axes) yTicks() []float64 {
	var out []float64
	for e := math.Ceil(math.Log10(a.yMin) - 1e-9); e <= math.Floor(math.Log10(a.yMax)+1e-9); e++ {
		out = append(out, math.Pow(10, e))
	}
	return out
}

func (a axes) drawGrid(img *image.RGBA) {
	for _, x := range a.xTicks() {
		p, _ := a.point(x, a.yMin)
		vline(img, p.X, a.area.Min.Y, a.area.Max.Y, gridColor)
	}
	for _, y := range a.yTicks() {
		p, _ := a.point(a.xMin, y)
		hline(img, a.area.Min.X, a.area.Max.X, p.Y, gridColor)
	}
}

func (a axes) drawFrame(img *image.RGBA) {
	r := a.area
	hline(img, r.Min.X, r.Max.X, r.Min.Y, color.Black)
	hline(img, r.Min.X, r.Max.X, r.Max.Y-1, color.Black)
	vline(img, r.Min.X, r.Min.Y, r.Max.Y, color.Black)
	vline(img, r.Max.X-1, r.Min.Y, r.Max.Y, color.Black)
}

// drawCurve joins consecutive drawable points inside the frequency range.
func (a axes) drawCurve(img *image.RGBA, xs, ys []float64, c color.Color) {
	var prev image.Point
	havePrev := false
	for i, x := range xs {
		if x < a.xMin || x > a.xMax {
			havePrev = false
			continue
		}
		p, ok := a.point(x, ys[i])
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			line(img, prev, p, c, a.area)
		} else {
			setClipped(img, p, c, a.area)
		}
		prev, havePrev = p, true
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x < x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		img.Set(x, y, c)
	}
}

// line draws a Bresenham segment from p to q.
func line(img *image.RGBA, p, q image.Point, c color.Color, clip image.Rectangle) {
	dx := abs(q.X - p.X)
	dy := -abs(q.Y - p.Y)
	sx, sy := sign(q.X-p.X), sign(q.Y-p.Y)
	e := dx + dy

	for {
		setClipped(img, p, c, clip)
		if p == q {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

func setClipped(img *image.RGBA, p image.Point, c color.Color, clip image.Rectangle) {
	if p.In(clip) {
		img.Set(p.X, p.Y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
