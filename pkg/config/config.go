// Package config holds the tunables shared by the command line tools.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"minibrowse/pkg/render"
)

type Config struct {
	Viewport Viewport `toml:"viewport"`
	Page     Page     `toml:"page"`
	Fetch    Fetch    `toml:"fetch"`
}

type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Page struct {
	FontSize    float64 `toml:"font_size"`
	Margin      float64 `toml:"margin"`
	LineSpacing float64 `toml:"line_spacing"`
}

type Fetch struct {
	Timeout   Duration `toml:"timeout"`
	CacheTTL  Duration `toml:"cache_ttl"`
	UserAgent string   `toml:"user_agent"`
}

// Duration reads TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() Config {
	opts := render.DefaultOptions()
	return Config{
		Viewport: Viewport{Width: 800, Height: 600},
		Page: Page{
			FontSize:    opts.FontSize,
			Margin:      opts.Margin,
			LineSpacing: opts.LineSpacing,
		},
		Fetch: Fetch{
			Timeout:   Duration{30 * time.Second},
			CacheTTL:  Duration{5 * time.Minute},
			UserAgent: "minibrowse/1.0 (compatible; Go)",
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file
// keep their default values. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "loading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown config key %s in %s", undecoded[0], path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Page.FontSize <= 0 {
		return errors.Errorf("font size must be positive, got %g", c.Page.FontSize)
	}
	if c.Page.Margin < 0 || c.Page.LineSpacing < 0 {
		return errors.New("margin and line spacing must not be negative")
	}
	if c.Fetch.Timeout.Duration <= 0 {
		return errors.Errorf("fetch timeout must be positive, got %s", c.Fetch.Timeout.Duration)
	}
	if c.Fetch.CacheTTL.Duration < 0 {
		return errors.Errorf("cache ttl must not be negative, got %s", c.Fetch.CacheTTL.Duration)
	}
	return nil
}

// RenderOptions converts the page section for the painter.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		Margin:      c.Page.Margin,
		LineSpacing: c.Page.LineSpacing,
		FontSize:    c.Page.FontSize,
	}
}
