package css

import "fmt"

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock  DisplayType = "block"
	DisplayInline DisplayType = "inline"
)

// TextDecoration represents the text-decoration-line property value
type TextDecoration string

const (
	TextDecorationNone      TextDecoration = "none"
	TextDecorationUnderline TextDecoration = "underline"
)

// CurrentColor is the inherited foreground. It is not a palette entry.
const CurrentColor = "currentcolor"

// Style is the computed style of one node during a traversal. It is a
// plain value: children receive copies and never write back.
type Style struct {
	Color              string
	TextDecorationLine TextDecoration
	Display            DisplayType

	// FontSize in pixels, 0 selects the renderer default.
	FontSize float64
	// Href is the target of the nearest enclosing link.
	Href string
}

// DefaultStyle is the style a document body starts with.
func DefaultStyle() Style {
	return Style{
		Color:              CurrentColor,
		TextDecorationLine: TextDecorationNone,
		Display:            DisplayBlock,
	}
}

// LinkStyle replaces, not extends, the inherited style below an anchor.
func LinkStyle(href string) Style {
	return Style{
		Color:              "blue",
		TextDecorationLine: TextDecorationUnderline,
		Display:            DisplayInline,
		Href:               href,
	}
}

func (s Style) WithDisplay(d DisplayType) Style {
	s.Display = d
	return s
}

func (s Style) WithFontSize(size float64) Style {
	s.FontSize = size
	return s
}

func (s Style) WithColor(color string) Style {
	s.Color = color
	return s
}

func (s Style) IsBlock() bool {
	return s.Display == DisplayBlock
}

func (s Style) IsUnderlined() bool {
	return s.TextDecorationLine == TextDecorationUnderline
}

func (s Style) String() string {
	str := fmt.Sprintf("color=%s decoration=%s display=%s", s.Color, s.TextDecorationLine, s.Display)
	if s.FontSize > 0 {
		str += fmt.Sprintf(" font-size=%gpx", s.FontSize)
	}
	if s.Href != "" {
		str += " href=" + s.Href
	}
	return str
}

// headingSizes are the UA default font sizes for h1..h6 at a 16px base.
var headingSizes = map[string]float64{
	"h1": 32,
	"h2": 24,
	"h3": 18.72,
	"h4": 16,
	"h5": 13.28,
	"h6": 10.72,
}

// HeadingFontSize returns the font size for a heading tag name.
func HeadingFontSize(tag string) (float64, bool) {
	size, ok := headingSizes[tag]
	return size, ok
}
