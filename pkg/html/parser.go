package html

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Builder constructs an element tree from a stream of tag and text
// events. It never fails: unknown tags are transparent, stray end tags
// are dropped and text always lands in the innermost open element.
type Builder struct {
	root  *Element
	stack []*Element // open elements, stack[0] is the root

	// Log receives debug traces about ignored markup. Defaults to the
	// standard logrus logger.
	Log logrus.FieldLogger
}

func NewBuilder() *Builder {
	root := NewRoot()
	return &Builder{
		root:  root,
		stack: []*Element{root},
		Log:   logrus.StandardLogger(),
	}
}

// Root returns the tree built so far.
func (b *Builder) Root() *Element {
	return b.root
}

// current returns the innermost open element
func (b *Builder) current() *Element {
	return b.stack[len(b.stack)-1]
}

// StartTag opens a recognized element. Attribute names are lower-cased and
// a repeated attribute keeps its last value.
func (b *Builder) StartTag(name string, attrs []Attribute) {
	tagName := strings.ToLower(strings.TrimSpace(name))
	tag, ok := containerTag(tagName)
	if !ok {
		b.Log.WithField("tag", tagName).Debug("html: transparent start tag")
		return
	}
	el := newElement(tag)
	for _, a := range attrs {
		el.Attrs[strings.ToLower(a.Name)] = a.Value
	}
	b.current().appendChild(el)
	b.stack = append(b.stack, el)
}

// EndTag closes the nearest open element with the same tag. A br end tag
// is a line break marker: it adds a br leaf and leaves the cursor alone.
func (b *Builder) EndTag(name string) {
	tagName := strings.ToLower(strings.TrimSpace(name))
	if Tag(tagName) == TagBr {
		b.current().appendChild(newElement(TagBr))
		return
	}
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].Tag == Tag(tagName) {
			b.stack = b.stack[:i]
			return
		}
	}
	b.Log.WithField("tag", tagName).Debug("html: end tag without open element")
}

// Text attaches a run of character data to the current element.
func (b *Builder) Text(raw string) {
	text := normalizeText(raw)
	if text == "" {
		return
	}
	cur := b.current()
	if cur.Tag == TagTitle {
		cur.InnerText = text
		return
	}
	leaf := newElement(TagInnerText)
	leaf.InnerText = text
	cur.appendChild(leaf)
}

// normalizeText turns newlines into spaces and trims spaces at both ends.
// Interior runs of whitespace are kept as they are.
func normalizeText(raw string) string {
	return strings.Trim(strings.ReplaceAll(raw, "\n", " "), " ")
}

// Feed tokenizes markup and applies every event to the tree.
func (b *Builder) Feed(markup string) {
	tokenizer := NewTokenizer(markup)
	for {
		token := tokenizer.NextToken()
		switch token.Type {
		case TokenEOF:
			return
		case TokenStartTag:
			b.StartTag(token.TagName, token.Attrs)
		case TokenEndTag:
			b.EndTag(token.TagName)
		case TokenText:
			b.Text(token.Text)
		}
	}
}

// Parse builds a tree from markup with a fresh Builder.
func Parse(markup string) *Element {
	b := NewBuilder()
	b.Feed(markup)
	return b.Root()
}
