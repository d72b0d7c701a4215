package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"minibrowse/pkg/config"
	"minibrowse/pkg/resource"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logrus.WithError(err).Error("minibrowse failed")
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("minibrowse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	width := fs.Int("w", 0, "viewport width in pixels (overrides config)")
	height := fs.Int("h", 0, "viewport height in pixels (overrides config)")
	output := fs.String("o", "", "output PNG file path")
	dumpTree := fs.Bool("tree", false, "print the element tree")
	dumpList := fs.Bool("list", false, "print the display list")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: minibrowse [flags] <file-or-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("missing file or url")
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *width > 0 {
		cfg.Viewport.Width = *width
	}
	if *height > 0 {
		cfg.Viewport.Height = *height
	}

	uri := fs.Arg(0)
	fetcher := resource.NewFetcher(cfg.Fetch.Timeout.Duration, cfg.Fetch.CacheTTL.Duration, cfg.Fetch.UserAgent)
	pipeline := resource.NewPipeline(fetcher, nil, cfg.RenderOptions())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout.Duration)
	defer cancel()
	doc, err := pipeline.Load(ctx, uri)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "title: %s\n", doc.WindowTitle())
	if *dumpTree {
		fmt.Fprintln(stdout, doc.Root.String())
	}
	if *dumpList {
		fmt.Fprint(stdout, doc.List.String())
	}
	if *output == "" {
		return nil
	}

	page := pipeline.Paint(doc, cfg.Viewport.Width, cfg.Viewport.Height)
	if err := page.SavePNG(*output); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"uri":        uri,
		"output":     *output,
		"primitives": len(doc.List),
		"links":      len(page.Links),
	}).Info("rendered")
	return nil
}
