package html

import (
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// Tag identifies the kind of an Element. The set is closed: anything
// the builder does not know is never materialized as a node.
type Tag string

const (
	TagHTML   Tag = "html"
	TagHeader Tag = "header"
	TagTitle  Tag = "title"
	TagBody   Tag = "body"
	TagH1     Tag = "h1"
	TagH2     Tag = "h2"
	TagH3     Tag = "h3"
	TagH4     Tag = "h4"
	TagH5     Tag = "h5"
	TagH6     Tag = "h6"
	TagA      Tag = "a"
	TagP      Tag = "p"
	TagDL     Tag = "dl"
	TagDT     Tag = "dt"
	TagDD     Tag = "dd"

	// Synthetic leaves created by the builder.
	TagInnerText Tag = "inner_text"
	TagBr        Tag = "br"
)

// containerTag reports whether a start tag with this name opens a node.
// html is the implicit root only and the synthetic leaves never come from
// start tags.
func containerTag(name string) (Tag, bool) {
	switch t := Tag(name); t {
	case TagHeader, TagTitle, TagBody,
		TagH1, TagH2, TagH3, TagH4, TagH5, TagH6,
		TagA, TagP, TagDL, TagDT, TagDD:
		return t, true
	}
	return "", false
}

// IsHeading reports whether t is one of h1..h6.
func (t Tag) IsHeading() bool {
	switch t {
	case TagH1, TagH2, TagH3, TagH4, TagH5, TagH6:
		return true
	}
	return false
}

// Element is a node of the simplified document tree.
//
// InnerText is only ever set on title nodes and on inner_text leaves.
type Element struct {
	Tag       Tag
	Attrs     map[string]string
	Children  []*Element
	InnerText string
}

func newElement(tag Tag) *Element {
	return &Element{
		Tag:      tag,
		Attrs:    map[string]string{},
		Children: make([]*Element, 0),
	}
}

// NewRoot returns an empty html root.
func NewRoot() *Element {
	return newElement(TagHTML)
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if e.Attrs == nil {
		return "", false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) appendChild(child *Element) {
	e.Children = append(e.Children, child)
}

// Equal compares two trees structurally.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Tag != other.Tag || e.InnerText != other.InnerText {
		return false
	}
	if len(e.Attrs) != len(other.Attrs) || len(e.Children) != len(other.Children) {
		return false
	}
	for k, v := range e.Attrs {
		if ov, ok := other.Attrs[k]; !ok || ov != v {
			return false
		}
	}
	for i, c := range e.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// FindFirstTag searches the tree in pre-order and returns the first
// element with the given tag.
func FindFirstTag(tree *Element, tag Tag) (bool, *Element) {
	if tree == nil {
		return false, nil
	}
	if tree.Tag == tag {
		return true, tree
	}
	for _, child := range tree.Children {
		if found, el := FindFirstTag(child, tag); found {
			return true, el
		}
	}
	return false, nil
}

// String renders the tree as an indented outline, one element per line.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	tree := treeprint.NewWithRoot(e.label())
	addBranches(tree, e)
	return tree.String()
}

func addBranches(tree treeprint.Tree, e *Element) {
	for _, child := range e.Children {
		if len(child.Children) == 0 {
			tree.AddNode(child.label())
			continue
		}
		addBranches(tree.AddBranch(child.label()), child)
	}
}

func (e *Element) label() string {
	var sb strings.Builder
	sb.WriteString(string(e.Tag))
	if len(e.Attrs) > 0 {
		keys := make([]string, 0, len(e.Attrs))
		for k := range e.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(e.Attrs[k])
			sb.WriteByte('"')
		}
	}
	if e.InnerText != "" {
		sb.WriteString(` "`)
		sb.WriteString(e.InnerText)
		sb.WriteByte('"')
	}
	return sb.String()
}
