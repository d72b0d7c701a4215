package render

import (
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"minibrowse/pkg/css"
	"minibrowse/pkg/layout"
	"minibrowse/pkg/text"
)

// Options control page geometry.
type Options struct {
	Margin      float64 // left, right and top page margin
	LineSpacing float64 // extra gap added below every line
	FontSize    float64 // size of runs without an explicit size
}

func DefaultOptions() Options {
	return Options{Margin: 8, LineSpacing: 2, FontSize: text.DefaultFontSize}
}

// Placement records where a primitive of the display list ended up. A
// wrapped text run has one placement per line fragment.
type Placement struct {
	Index int
	Text  string
	Rect  layout.Rect
}

// Link is a clickable region produced by a run with a hyperlink.
type Link struct {
	Href string
	Rect layout.Rect
}

// Page is the painted result of a display list.
type Page struct {
	Image      *image.RGBA
	Placements []Placement
	Links      []Link
	// Height is the height the content needs. The image is at least this
	// tall.
	Height float64
}

// LinkAt returns the hyperlink under the point, preferring the region
// painted last.
func (p *Page) LinkAt(x, y float64) (string, bool) {
	for i := len(p.Links) - 1; i >= 0; i-- {
		if p.Links[i].Rect.Contains(x, y) {
			return p.Links[i].Href, true
		}
	}
	return "", false
}

func (p *Page) SavePNG(filename string) error {
	return errors.Wrapf(gg.SavePNG(filename, p.Image), "saving %s", filename)
}

// Painter places display list primitives with a flow cursor and paints
// them with gg. Placement runs first, so the image is as tall as the
// content needs and never shorter than the requested height. A Painter
// draws with a face cache of its own; separate Painters may paint
// concurrently, a single Painter may not.
type Painter struct {
	width, height int
	fonts         *text.Fonts
	opts          Options
}

func NewPainter(width, height int, fonts *text.Fonts, opts Options) *Painter {
	if fonts == nil {
		fonts = text.DefaultFonts()
	} else {
		fonts = fonts.Clone()
	}
	if opts.FontSize <= 0 {
		opts.FontSize = text.DefaultFontSize
	}
	return &Painter{width: width, height: height, fonts: fonts, opts: opts}
}

// flow is the running cursor of one Paint call.
type flow struct {
	x, y       float64 // y is the top of the current line
	lineHeight float64 // tallest fragment on the current line
	hasContent bool
}

// drawOp is one placed piece of a primitive: a rectangle or a line
// fragment of a text run.
type drawOp struct {
	prim layout.Primitive
	text string
	size float64
	rect layout.Rect
}

func (p *Painter) Paint(list layout.DisplayList) *Page {
	page := &Page{}
	ops := p.place(page, list)

	height := p.height
	if need := int(math.Ceil(page.Height)); need > height {
		height = need
	}
	img := image.NewRGBA(image.Rect(0, 0, p.width, height))
	dc := gg.NewContextForRGBA(img)
	dc.SetRGB(css.White.RGB())
	dc.Clear()
	for _, op := range ops {
		if op.prim.Kind == layout.KindRectangle {
			p.fillRect(dc, op.prim)
		} else {
			p.drawText(dc, op)
		}
	}
	page.Image = img
	return page
}

// place resolves every primitive to its position, filling in the page's
// placements, links and content height.
func (p *Painter) place(page *Page, list layout.DisplayList) []drawOp {
	var ops []drawOp
	cur := &flow{x: p.opts.Margin, y: p.opts.Margin}
	bottom := 0.0

	for i, prim := range list {
		switch prim.Kind {
		case layout.KindRectangle:
			ops = append(ops, drawOp{prim: prim, rect: prim.Rect})
			page.Placements = append(page.Placements, Placement{Index: i, Rect: prim.Rect})
			bottom = math.Max(bottom, prim.Rect.Y+prim.Rect.H)
		case layout.KindBlockBreak:
			if cur.hasContent {
				p.newLine(cur)
			} else {
				cur.y += p.fonts.LineHeight(p.opts.FontSize) + p.opts.LineSpacing
			}
		case layout.KindTextRun:
			ops = p.placeRun(ops, page, cur, i, prim)
		}
	}
	if cur.hasContent {
		p.newLine(cur)
	}
	page.Height = math.Max(cur.y+p.opts.Margin, bottom)
	return ops
}

func (p *Painter) newLine(cur *flow) {
	cur.y += cur.lineHeight + p.opts.LineSpacing
	cur.x = p.opts.Margin
	cur.lineHeight = 0
	cur.hasContent = false
}

func (p *Painter) right() float64 {
	return float64(p.width) - p.opts.Margin
}

func (p *Painter) fillRect(dc *gg.Context, prim layout.Primitive) {
	color, ok := css.ParseHex(prim.Props.Color)
	if !ok {
		color = css.Black
	}
	dc.SetRGB(color.RGB())
	dc.DrawRectangle(prim.Rect.X, prim.Rect.Y, prim.Rect.W, prim.Rect.H)
	dc.Fill()
}

// placeRun flows one text run, wrapping between words when the line is
// full. A single word wider than the line is placed anyway.
func (p *Painter) placeRun(ops []drawOp, page *Page, cur *flow, index int, prim layout.Primitive) []drawOp {
	size := prim.Props.FontSize
	if size <= 0 {
		size = p.opts.FontSize
	}
	if prim.Anchor == layout.AnchorNewLine && cur.hasContent {
		p.newLine(cur)
	}
	if cur.hasContent {
		space, _ := p.fonts.Measure(" ", size)
		cur.x += space
	}

	words := strings.Fields(prim.Text)
	if len(words) == 0 {
		words = []string{""}
	}
	segment := ""
	for _, word := range words {
		candidate := word
		if segment != "" {
			candidate = segment + " " + word
		}
		w, _ := p.fonts.Measure(candidate, size)
		if cur.x+w <= p.right() {
			segment = candidate
			continue
		}
		if segment != "" {
			ops = p.placeSegment(ops, page, cur, index, prim, segment, size)
		}
		if cur.hasContent {
			p.newLine(cur)
		}
		segment = word
	}
	return p.placeSegment(ops, page, cur, index, prim, segment, size)
}

func (p *Painter) placeSegment(ops []drawOp, page *Page, cur *flow, index int, prim layout.Primitive, s string, size float64) []drawOp {
	w, h := p.fonts.Measure(s, size)
	rect := layout.Rect{X: cur.x, Y: cur.y, W: w, H: h}
	page.Placements = append(page.Placements, Placement{Index: index, Text: s, Rect: rect})
	if prim.Props.Hyperlink != "" {
		page.Links = append(page.Links, Link{Href: prim.Props.Hyperlink, Rect: rect})
	}
	cur.x += w
	cur.lineHeight = math.Max(cur.lineHeight, h)
	cur.hasContent = true
	return append(ops, drawOp{prim: prim, text: s, size: size, rect: rect})
}

func (p *Painter) drawText(dc *gg.Context, op drawOp) {
	color, ok := css.ParseHex(op.prim.Props.Color)
	if !ok {
		color = css.Black
	}
	dc.SetFontFace(p.fonts.Face(op.size))
	dc.SetRGB(color.RGB())
	baseline := op.rect.Y + p.fonts.Ascent(op.size)
	dc.DrawString(op.text, op.rect.X, baseline)
	if op.prim.Props.Underline && op.rect.W > 0 {
		dc.SetLineWidth(math.Max(1, op.size/12.0))
		underlineY := baseline + op.size*0.1
		dc.DrawLine(op.rect.X, underlineY, op.rect.X+op.rect.W, underlineY)
		dc.Stroke()
	}
}
