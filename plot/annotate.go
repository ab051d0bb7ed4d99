package plot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	dpi      = 72.0
	fontSize = 13.0
)

type legendEntry struct {
	label string
	color color.RGBA
}

type annotator struct {
	context  *freetype.Context
	fontFace font.Face
}

func newAnnotator() (*annotator, error) {
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    fontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (a *annotator) Close() error {
	return a.fontFace.Close()
}

func (a *annotator) annotate(img *image.RGBA, ax axes, title string, legend []legendEntry) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	ops := []struct {
		msg string
		fn  func() error
	}{
		{"drawing frequency scale", func() error { return a.drawXScale(ax) }},
		{"drawing ASD scale", func() error { return a.drawYScale(ax) }},
		{"drawing title", func() error { return a.drawTitle(img, ax, title) }},
		{"drawing legend", func() error { return a.drawLegend(img, ax, legend) }},
	}
	for _, op := range ops {
		if err := op.fn(); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}
	return nil
}

func (a *annotator) drawXScale(ax axes) error {
	metrics := a.fontFace.Metrics()
	textY := ax.area.Max.Y + 6 + metrics.Ascent.Round()

	for _, f := range ax.xTicks() {
		p, _ := ax.point(f, ax.yMin)
		label := formatHz(f)
		width := font.MeasureString(a.fontFace, label).Round()
		if _, err := a.context.DrawString(label, freetype.Pt(p.X-width/2, textY)); err != nil {
			return err
		}
	}

	label := "frequency (Hz)"
	width := font.MeasureString(a.fontFace, label).Round()
	x := ax.area.Min.X + (ax.area.Dx()-width)/2
	_, err := a.context.DrawString(label, freetype.Pt(x, textY+metrics.Height.Round()+4))
	return err
}

func (a *annotator) drawYScale(ax axes) error {
	metrics := a.fontFace.Metrics()
	for _, v := range ax.yTicks() {
		p, _ := ax.point(ax.xMin, v)
		label := fmt.Sprintf("1e%d", int(math.Round(math.Log10(v))))
		width := font.MeasureString(a.fontFace, label).Round()
		pt := freetype.Pt(ax.area.Min.X-width-6, p.Y+metrics.Ascent.Round()/2)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return err
		}
	}

	_, err := a.context.DrawString("strain/rtHz", freetype.Pt(4, ax.area.Min.Y-8))
	return err
}

func (a *annotator) drawTitle(img *image.RGBA, ax axes, title string) error {
	width := font.MeasureString(a.fontFace, title).Round()
	x := img.Bounds().Min.X + (img.Bounds().Dx()-width)/2
	_, err := a.context.DrawString(title, freetype.Pt(x, ax.area.Min.Y-18))
	return err
}

func (a *annotator) drawLegend(img *image.RGBA, ax axes, legend []legendEntry) error {
	lineHeight := a.fontFace.Metrics().Height.Round() + 4
	x := ax.area.Max.X - 200
	y := ax.area.Min.Y + lineHeight + 4

	for _, e := range legend {
		hline(img, x, x+24, y-lineHeight/3, e.color)
		hline(img, x, x+24, y-lineHeight/3+1, e.color)
		if _, err := a.context.DrawString(e.label, freetype.Pt(x+30, y)); err != nil {
			return err
		}
		y += lineHeight
	}
	return nil
}

// formatHz renders a tick label with an SI prefix, e.g. "200 Hz" or "1 kHz".
func formatHz(hz float64) string {
	v, prefix := humanize.ComputeSI(hz)
	return fmt.Sprintf("%s %sHz", humanize.Ftoa(v), prefix)
}
