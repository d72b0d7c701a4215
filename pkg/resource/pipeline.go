package resource

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"minibrowse/pkg/html"
	"minibrowse/pkg/layout"
	"minibrowse/pkg/render"
	"minibrowse/pkg/text"
)

// NoTitle is shown for documents without a title element.
const NoTitle = "no title"

// Document is a parsed page together with its display list.
type Document struct {
	URI      string
	Title    string
	HasTitle bool
	Root     *html.Element
	List     layout.DisplayList
}

// WindowTitle returns the title to show for the document.
func (d *Document) WindowTitle() string {
	if !d.HasTitle {
		return NoTitle
	}
	return d.Title
}

// Pipeline loads markup, builds the tree and display list, and paints.
type Pipeline struct {
	fetcher Fetcher
	fonts   *text.Fonts
	opts    render.Options

	Log logrus.FieldLogger
}

// NewPipeline creates a Pipeline. A nil fonts selects the bundled fonts.
func NewPipeline(fetcher Fetcher, fonts *text.Fonts, opts render.Options) *Pipeline {
	if fonts == nil {
		fonts = text.DefaultFonts()
	}
	return &Pipeline{
		fetcher: fetcher,
		fonts:   fonts,
		opts:    opts,
		Log:     logrus.StandardLogger(),
	}
}

// Load fetches uri and turns it into a Document.
func (p *Pipeline) Load(ctx context.Context, uri string) (*Document, error) {
	if p.fetcher == nil {
		return nil, errors.New("pipeline has no fetcher")
	}
	body, contentType, err := p.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, errors.Wrap(err, "loading page")
	}
	p.Log.WithFields(logrus.Fields{
		"uri":          uri,
		"bytes":        len(body),
		"content_type": contentType,
	}).Debug("fetched")
	return p.Build(uri, string(body)), nil
}

// Build parses markup that has already been loaded.
func (p *Pipeline) Build(uri, markup string) *Document {
	builder := html.NewBuilder()
	builder.Log = p.Log
	builder.Feed(markup)
	root := builder.Root()

	doc := &Document{URI: uri, Root: root}
	doc.Title, doc.HasTitle, doc.List = layout.RenderDocument(root)
	p.Log.WithFields(logrus.Fields{
		"uri":        uri,
		"title":      doc.Title,
		"primitives": len(doc.List),
	}).Debug("laid out")
	return doc
}

// Paint paints the document's display list onto a width x height page.
func (p *Pipeline) Paint(doc *Document, width, height int) *render.Page {
	return render.NewPainter(width, height, p.fonts, p.opts).Paint(doc.List)
}
