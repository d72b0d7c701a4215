package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(text string) *Element {
	el := newElement(TagInnerText)
	el.InnerText = text
	return el
}

func elem(tag Tag, attrs map[string]string, children ...*Element) *Element {
	el := newElement(tag)
	for k, v := range attrs {
		el.Attrs[k] = v
	}
	el.Children = append(el.Children, children...)
	return el
}

func TestParser_Empty(t *testing.T) {
	root := Parse("")
	assert.True(t, NewRoot().Equal(root))
	assert.Empty(t, root.Children)
	assert.Empty(t, root.Attrs)
	assert.Equal(t, "", root.InnerText)
}

func TestParser_ExplicitHTMLIsImplicitRoot(t *testing.T) {
	root := Parse("<html></html>")
	assert.True(t, NewRoot().Equal(root), "got\n%s", root)
}

func TestParser_NoRecognizedTags(t *testing.T) {
	for _, markup := range []string{
		"<div><span></span></div>",
		"<!DOCTYPE html><html><head><meta charset=utf-8></head></html>",
		"<!-- just a comment -->",
		"   \n\n  ",
	} {
		root := Parse(markup)
		assert.True(t, NewRoot().Equal(root), "markup %q built\n%s", markup, root)
	}
}

func TestParser_BrEndTagSplitsText(t *testing.T) {
	root := Parse("<header>hello</br>next line</header>")
	require.Len(t, root.Children, 1)
	header := root.Children[0]
	assert.Equal(t, TagHeader, header.Tag)
	assert.Empty(t, header.Attrs)
	assert.Equal(t, "", header.InnerText)
	expected := []*Element{leaf("hello"), newElement(TagBr), leaf("next line")}
	require.Len(t, header.Children, len(expected))
	for i, want := range expected {
		assert.True(t, want.Equal(header.Children[i]), "child %d: %s", i, header.Children[i])
	}
}

func TestParser_SelfClosingBr(t *testing.T) {
	root := Parse("<p>one<br/>two</p>")
	require.Len(t, root.Children, 1)
	p := root.Children[0]
	require.Len(t, p.Children, 3)
	assert.Equal(t, TagBr, p.Children[1].Tag)
}

func TestParser_BrStartTagIsIgnored(t *testing.T) {
	root := Parse("<p>one<br>two</p>")
	require.Len(t, root.Children, 1)
	p := root.Children[0]
	require.Len(t, p.Children, 2)
	assert.Equal(t, "one", p.Children[0].InnerText)
	assert.Equal(t, "two", p.Children[1].InnerText)
}

func TestParser_AttributeKeysLowerCased(t *testing.T) {
	root := Parse(`<a HREF="http://localhost">hello</a>`)
	expected := elem(TagHTML, nil,
		elem(TagA, map[string]string{"href": "http://localhost"}, leaf("hello")))
	assert.True(t, expected.Equal(root), "got\n%s", root)
}

func TestParser_DuplicateAttributeLastWins(t *testing.T) {
	root := Parse(`<a href="first" HREF="second">x</a>`)
	require.Len(t, root.Children, 1)
	assert.Equal(t, map[string]string{"href": "second"}, root.Children[0].Attrs)
}

func TestParser_NestedDefinitionList(t *testing.T) {
	root := Parse(`<dl><dt name="test">a term</dt></dl>`)
	expected := elem(TagHTML, nil,
		elem(TagDL, nil,
			elem(TagDT, map[string]string{"name": "test"}, leaf("a term"))))
	assert.True(t, expected.Equal(root), "got\n%s", root)
}

func TestParser_DeepNestingClosesOneLevelAtATime(t *testing.T) {
	root := Parse(`<body><dl><dt>term</dt><dd>def</dd></dl><p>after</p></body>`)
	expected := elem(TagHTML, nil,
		elem(TagBody, nil,
			elem(TagDL, nil,
				elem(TagDT, nil, leaf("term")),
				elem(TagDD, nil, leaf("def"))),
			elem(TagP, nil, leaf("after"))))
	assert.True(t, expected.Equal(root), "got\n%s", root)
}

func TestParser_StrayEndTagIsIgnored(t *testing.T) {
	root := Parse(`<a HREF="http://localhost">hello</header>world`)
	require.Len(t, root.Children, 1)
	a := root.Children[0]
	require.Len(t, a.Children, 2)
	assert.Equal(t, "hello", a.Children[0].InnerText)
	assert.Equal(t, "world", a.Children[1].InnerText)
}

func TestParser_TransparentTagsKeepText(t *testing.T) {
	root := Parse(`<p>some <b>bold</b> text</p>`)
	require.Len(t, root.Children, 1)
	p := root.Children[0]
	var texts []string
	for _, c := range p.Children {
		assert.Equal(t, TagInnerText, c.Tag)
		texts = append(texts, c.InnerText)
	}
	assert.Equal(t, []string{"some", "bold", "text"}, texts)
}

func TestParser_UnclosedTags(t *testing.T) {
	root := Parse(`<body><h1>Title<p>para`)
	expected := elem(TagHTML, nil,
		elem(TagBody, nil,
			elem(TagH1, nil, leaf("Title"),
				elem(TagP, nil, leaf("para")))))
	assert.True(t, expected.Equal(root), "got\n%s", root)
}

func TestParser_TextNormalization(t *testing.T) {
	root := Parse("<p>\n  two  spaces\ninside \n</p>")
	require.Len(t, root.Children, 1)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "two  spaces inside", root.Children[0].Children[0].InnerText)
}

func TestParser_TitleHoldsItsText(t *testing.T) {
	root := Parse("<header><title>\nMy page\n</title></header>")
	found, title := FindFirstTag(root, TagTitle)
	require.True(t, found)
	assert.Equal(t, "My page", title.InnerText)
	assert.Empty(t, title.Children)
	found, header := FindFirstTag(root, TagHeader)
	require.True(t, found)
	assert.Equal(t, "", header.InnerText)
}

func TestParser_TransparentTagsKeepMarkup(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   *Element
	}{
		{
			"noscript",
			"<body><noscript><p>enable js</p></noscript></body>",
			elem(TagBody, nil, elem(TagP, nil, leaf("enable js"))),
		},
		{
			"textarea",
			`<body><textarea><a href="/x">link</a></textarea></body>`,
			elem(TagBody, nil, elem(TagA, map[string]string{"href": "/x"}, leaf("link"))),
		},
		{
			"plaintext",
			"<body><plaintext>x</plaintext><p>after</p></body>",
			elem(TagBody, nil, leaf("x"), elem(TagP, nil, leaf("after"))),
		},
		{
			"iframe",
			"<body><iframe><h1>inside</h1></iframe></body>",
			elem(TagBody, nil, elem(TagH1, nil, leaf("inside"))),
		},
		{
			"script stays text",
			"<body><script>if (a<b) go()</script></body>",
			elem(TagBody, nil, leaf("if (a<b) go()")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := NewRoot()
			want.Children = append(want.Children, tt.want)
			got := Parse(tt.markup)
			assert.True(t, want.Equal(got), "got:\n%s", got)
		})
	}
}

func TestParser_TitleTextAfterTransparentTag(t *testing.T) {
	root := Parse("<title>A <b>B</b></title>")
	found, title := FindFirstTag(root, TagTitle)
	require.True(t, found)
	assert.Equal(t, "B", title.InnerText)
	assert.Empty(t, title.Children)
}

func TestBuilder_TitleOverwrites(t *testing.T) {
	b := NewBuilder()
	b.StartTag("TITLE", nil)
	b.Text("first")
	b.Text("second")
	b.EndTag("title")
	found, title := FindFirstTag(b.Root(), TagTitle)
	require.True(t, found)
	assert.Equal(t, "second", title.InnerText)
	assert.Empty(t, title.Children)
}

func TestBuilder_EndTagNeverPopsRoot(t *testing.T) {
	b := NewBuilder()
	b.EndTag("html")
	b.EndTag("p")
	b.Text("loose")
	root := b.Root()
	require.Len(t, root.Children, 1)
	assert.Equal(t, "loose", root.Children[0].InnerText)
}

func TestParser_EntitiesDecoded(t *testing.T) {
	root := Parse(`<p>fish &amp; chips</p>`)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "fish & chips", root.Children[0].Children[0].InnerText)
}

func TestParser_Idempotent(t *testing.T) {
	markup := `<header><title>t</title></header><body><h1>Head</h1>` +
		`<p>Text <a href="/x">link</a></p><dl><dt>a</dt><dd>b</dd></dl></body>`
	assert.True(t, Parse(markup).Equal(Parse(markup)))
}

func TestFindFirstTag(t *testing.T) {
	root := NewRoot()
	found, el := FindFirstTag(root, TagHTML)
	assert.True(t, found)
	assert.Same(t, root, el)

	dt := elem(TagDT, map[string]string{"name": "test"})
	dt.InnerText = "a term"
	tree := elem(TagHTML, nil, elem(TagDL, nil, dt))
	found, el = FindFirstTag(tree, TagDT)
	assert.True(t, found)
	assert.Same(t, dt, el)

	found, el = FindFirstTag(tree, TagBody)
	assert.False(t, found)
	assert.Nil(t, el)

	found, el = FindFirstTag(nil, TagBody)
	assert.False(t, found)
	assert.Nil(t, el)
}

func TestFindFirstTag_PreOrder(t *testing.T) {
	root := Parse(`<body><dl><dt>deep</dt></dl><dt>shallow</dt></body>`)
	found, el := FindFirstTag(root, TagDT)
	require.True(t, found)
	require.Len(t, el.Children, 1)
	assert.Equal(t, "deep", el.Children[0].InnerText)
}
