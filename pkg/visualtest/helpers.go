package visualtest

import (
	"minibrowse/pkg/html"
	"minibrowse/pkg/layout"
	"minibrowse/pkg/render"
	"minibrowse/pkg/text"
)

// RenderHTML runs markup through parse, layout and paint at width x height.
func RenderHTML(markup string, width, height int) *render.Page {
	list := layout.RenderBody(html.Parse(markup))
	return render.NewPainter(width, height, text.DefaultFonts(), render.DefaultOptions()).Paint(list)
}

// RenderHTMLToFile renders markup to a PNG file.
func RenderHTMLToFile(markup, outputPath string, width, height int) error {
	return RenderHTML(markup, width, height).SavePNG(outputPath)
}
