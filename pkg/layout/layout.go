package layout

import (
	"strings"

	"minibrowse/pkg/css"
	"minibrowse/pkg/html"
)

// Render walks the tree below root in document order and returns the draw
// primitives for it. The walk is single pass: primitives are appended as
// nodes are visited and never reordered.
func Render(root *html.Element, base css.Style) DisplayList {
	r := &renderer{list: make(DisplayList, 0)}
	if root != nil {
		r.walk(root, base)
	}
	return r.list
}

// RenderBody renders the first body element of a document. A document
// without a body renders nothing.
func RenderBody(doc *html.Element) DisplayList {
	found, body := html.FindFirstTag(doc, html.TagBody)
	if !found {
		return DisplayList{}
	}
	return Render(body, css.DefaultStyle())
}

// RenderDocument drives a whole document: the title comes from the first
// title element and the display list from the first body element.
func RenderDocument(doc *html.Element) (title string, hasTitle bool, list DisplayList) {
	title, hasTitle = Title(doc)
	return title, hasTitle, RenderBody(doc)
}

// Title returns the text of the first title element.
func Title(doc *html.Element) (string, bool) {
	found, title := html.FindFirstTag(doc, html.TagTitle)
	if !found {
		return "", false
	}
	return title.InnerText, true
}

type renderer struct {
	list DisplayList
	// sameLine is set by the flow hint every text run leaves behind and
	// cleared by a block break.
	sameLine bool
}

func (r *renderer) anchor() Anchor {
	if r.sameLine {
		return AnchorSameLine
	}
	return AnchorNewLine
}

func (r *renderer) emitRun(text string, props Props) {
	r.list = append(r.list, TextRun(text, r.anchor(), props))
	r.sameLine = true
}

func (r *renderer) emitBreak() {
	r.list = append(r.list, BlockBreak())
	r.sameLine = false
}

func (r *renderer) walk(node *html.Element, style css.Style) {
	switch node.Tag {
	case html.TagBody:
	case html.TagInnerText:
		if node.InnerText != "" {
			r.emitText(node.InnerText, style)
		}
	case html.TagP:
		r.emitBreak()
	case html.TagDL, html.TagDT, html.TagDD:
	default:
		if node.InnerText != "" {
			r.emitRun(node.InnerText, baseProps(style))
		}
	}

	childBase := style
	if node.Tag == html.TagA {
		href, _ := node.Attr("href")
		childBase = css.LinkStyle(href)
	} else if node.Tag.IsHeading() {
		size, _ := css.HeadingFontSize(string(node.Tag))
		childBase = style.WithFontSize(size)
	}
	for _, child := range node.Children {
		r.walk(child, childStyle(childBase, child))
	}

	if style.IsBlock() {
		r.emitBreak()
	}
}

// childStyle applies the per-child display overrides.
func childStyle(base css.Style, child *html.Element) css.Style {
	switch child.Tag {
	case html.TagInnerText:
		return base.WithDisplay(css.DisplayInline)
	case html.TagDL, html.TagDT, html.TagDD:
		return base.WithDisplay(css.DisplayBlock)
	}
	return base
}

// linkColor is what every palette color currently paints as.
var linkColor = css.Color{R: 0, G: 0, B: 255}

// emitText emits a text leaf. Palette colored text becomes one styled run;
// anything else is split into one plain run per word.
func (r *renderer) emitText(text string, style css.Style) {
	props := baseProps(style)
	if _, ok := css.ParseColor(style.Color); ok {
		props.Color = linkColor.Hex()
		props.Underline = style.IsUnderlined()
		r.emitRun(text, props)
		return
	}
	for _, word := range strings.Split(text, " ") {
		r.emitRun(word, props)
	}
}

func baseProps(style css.Style) Props {
	return Props{FontSize: style.FontSize, Hyperlink: style.Href}
}
