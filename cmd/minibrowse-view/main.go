package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"minibrowse/pkg/config"
	"minibrowse/pkg/render"
	"minibrowse/pkg/resource"
)

// pageView shows a painted page and follows links on tap.
type pageView struct {
	widget.BaseWidget
	img    *canvas.Image
	page   *render.Page
	onLink func(href string)
}

func newPageView(width, height int, onLink func(string)) *pageView {
	v := &pageView{onLink: onLink}
	v.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	v.img.FillMode = canvas.ImageFillOriginal
	v.ExtendBaseWidget(v)
	return v
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *pageView) show(page *render.Page) {
	v.page = page
	v.img.Image = page.Image
	v.img.Refresh()
	v.Refresh()
}

func (v *pageView) Tapped(ev *fyne.PointEvent) {
	if v.page == nil {
		return
	}
	scale := float32(1)
	if c := fyne.CurrentApp().Driver().CanvasForObject(v); c != nil {
		scale = c.Scale()
	}
	x := float64(ev.Position.X * scale)
	y := float64(ev.Position.Y * scale)
	if href, ok := v.page.LinkAt(x, y); ok {
		v.onLink(href)
	}
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minibrowse-view [flags] [file-or-url]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}

	fetcher := resource.NewFetcher(cfg.Fetch.Timeout.Duration, cfg.Fetch.CacheTTL.Duration, cfg.Fetch.UserAgent)
	pipeline := resource.NewPipeline(fetcher, nil, cfg.RenderOptions())

	a := app.New()
	w := a.NewWindow(resource.NoTitle)
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height+80)))

	status := widget.NewLabel("Enter a file or URL and press Enter")
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com")

	var current string
	var load func(uri string)
	view := newPageView(cfg.Viewport.Width, cfg.Viewport.Height, func(href string) {
		load(resource.ResolveURL(current, href))
	})

	// load runs on the UI goroutine. Starting a load cancels the one in
	// flight; a result from a superseded load is dropped.
	var cancelLoad context.CancelFunc
	generation := 0
	load = func(uri string) {
		if cancelLoad != nil {
			cancelLoad()
		}
		generation++
		gen := generation
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout.Duration)
		cancelLoad = cancel

		urlEntry.SetText(uri)
		status.SetText("Loading " + uri + "...")
		go func() {
			defer cancel()
			doc, err := pipeline.Load(ctx, uri)
			if err != nil {
				logrus.WithError(err).WithField("uri", uri).Warn("load failed")
				fyne.Do(func() {
					if gen == generation {
						status.SetText("Error: " + err.Error())
					}
				})
				return
			}
			page := pipeline.Paint(doc, cfg.Viewport.Width, cfg.Viewport.Height)
			fyne.Do(func() {
				if gen != generation {
					return
				}
				current = uri
				view.show(page)
				w.SetTitle(doc.WindowTitle())
				status.SetText(fmt.Sprintf("%s (%d links)", uri, len(page.Links)))
			})
		}()
	}
	urlEntry.OnSubmitted = load

	topBar := container.NewBorder(nil, nil, nil, nil, urlEntry)
	content := container.NewBorder(topBar, status, nil, nil, container.NewScroll(view))
	w.SetContent(content)
	w.Canvas().Focus(urlEntry)

	if flag.NArg() > 0 {
		load(flag.Arg(0))
	}
	w.ShowAndRun()
}
