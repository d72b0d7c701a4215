package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the draw primitives.
type Kind int

const (
	KindTextRun Kind = iota
	KindBlockBreak
	KindRectangle
)

func (k Kind) String() string {
	switch k {
	case KindTextRun:
		return "text_run"
	case KindBlockBreak:
		return "block_break"
	case KindRectangle:
		return "rectangle"
	}
	return "unknown"
}

// Anchor tells the painter where a text run starts relative to the
// previous one.
type Anchor int

const (
	AnchorNewLine Anchor = iota
	AnchorSameLine
)

func (a Anchor) String() string {
	if a == AnchorSameLine {
		return "same_line"
	}
	return "new_line"
}

// Props are the style properties attached to a primitive. Zero values mean
// "use the painter default".
type Props struct {
	Color     string // #rrggbb
	FontSize  float64
	Hyperlink string
	Underline bool
}

type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle, edges
// included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Primitive is one draw instruction. Which fields are meaningful depends
// on Kind.
type Primitive struct {
	Kind   Kind
	Text   string
	Anchor Anchor
	Props  Props
	Rect   Rect
}

func TextRun(text string, anchor Anchor, props Props) Primitive {
	return Primitive{Kind: KindTextRun, Text: text, Anchor: anchor, Props: props}
}

func BlockBreak() Primitive {
	return Primitive{Kind: KindBlockBreak}
}

func Rectangle(rect Rect, color string) Primitive {
	return Primitive{Kind: KindRectangle, Rect: rect, Props: Props{Color: color}}
}

func (p Primitive) String() string {
	switch p.Kind {
	case KindTextRun:
		var sb strings.Builder
		sb.WriteString("text_run ")
		sb.WriteString(p.Anchor.String())
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(p.Text))
		sb.WriteString(p.Props.String())
		return sb.String()
	case KindRectangle:
		return fmt.Sprintf("rectangle %g,%g %gx%g%s", p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, p.Props.String())
	}
	return p.Kind.String()
}

func (p Props) String() string {
	var parts []string
	if p.Color != "" {
		parts = append(parts, "color="+p.Color)
	}
	if p.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("font_size=%g", p.FontSize))
	}
	if p.Underline {
		parts = append(parts, "underline")
	}
	if p.Hyperlink != "" {
		parts = append(parts, "hyperlink="+p.Hyperlink)
	}
	if len(parts) == 0 {
		return ""
	}
	return " {" + strings.Join(parts, " ") + "}"
}

// DisplayList is the ordered output of a traversal. Order is paint order.
type DisplayList []Primitive

// Texts returns the text of every run in order.
func (l DisplayList) Texts() []string {
	var texts []string
	for _, p := range l {
		if p.Kind == KindTextRun {
			texts = append(texts, p.Text)
		}
	}
	return texts
}

// Count returns how many primitives of kind k the list holds.
func (l DisplayList) Count(k Kind) int {
	n := 0
	for _, p := range l {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func (l DisplayList) String() string {
	var sb strings.Builder
	for _, p := range l {
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
