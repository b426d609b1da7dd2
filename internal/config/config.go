package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gardar/ocrproof/pkg/layout"
	"github.com/gardar/ocrproof/pkg/pdfocr"
	"github.com/gardar/ocrproof/pkg/proofreader"
)

// Config holds the settings of the ocrproof tool
type Config struct {
	Listen  string `yaml:"listen"`   // Address the HTTP host listens on
	BaseURL string `yaml:"base_url"` // Default base URL for page images

	Stylesheet string  `yaml:"stylesheet"`  // Editor stylesheet added on load, empty for none
	FontFamily string  `yaml:"font_family"` // Font family of the word text layer
	FontSize   float64 `yaml:"font_size"`   // Word font size, 0 derives it from the word box
	Zoom       string  `yaml:"zoom"`        // page-full, page-width or original

	Viewport Viewport `yaml:"viewport"`
	PDF      PDF      `yaml:"pdf"`

	SnapshotTimeout time.Duration `yaml:"snapshot_timeout"`
	NoSandbox       bool          `yaml:"no_sandbox"`
}

// Viewport is the size of each of the two views, placed side by side
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PDF holds the proof sheet settings
type PDF struct {
	PageWidth float64 `yaml:"page_width"` // Points, 0 keeps the hOCR units
	Debug     bool    `yaml:"debug"`
}

// Default returns the built-in configuration
func Default() Config {
	pr := proofreader.DefaultConfig()
	return Config{
		Listen:          ":8080",
		Stylesheet:      pr.Stylesheet,
		FontFamily:      pr.FontFamily,
		FontSize:        pr.FontSize,
		Zoom:            string(pr.Zoom),
		Viewport:        Viewport{Width: 800, Height: 1000},
		SnapshotTimeout: 30 * time.Second,
	}
}

// Load reads the configuration file at path, when given, on top of the
// defaults and then applies OCRPROOF_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Listen = envOr("OCRPROOF_LISTEN", cfg.Listen)
	cfg.BaseURL = envOr("OCRPROOF_BASE_URL", cfg.BaseURL)
	cfg.Stylesheet = envOr("OCRPROOF_STYLESHEET", cfg.Stylesheet)
	cfg.FontFamily = envOr("OCRPROOF_FONT_FAMILY", cfg.FontFamily)
	cfg.FontSize = envFloat("OCRPROOF_FONT_SIZE", cfg.FontSize)
	cfg.Zoom = envOr("OCRPROOF_ZOOM", cfg.Zoom)
	cfg.SnapshotTimeout = envDuration("OCRPROOF_SNAPSHOT_TIMEOUT", cfg.SnapshotTimeout)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := layout.ParseZoom(c.Zoom); err != nil {
		return fmt.Errorf("zoom: %w", err)
	}
	if c.FontSize < 0 {
		return fmt.Errorf("font size must not be negative, got %g", c.FontSize)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must have a positive size, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.PDF.PageWidth < 0 {
		return fmt.Errorf("pdf page width must not be negative, got %g", c.PDF.PageWidth)
	}
	return nil
}

// Proofreader returns the widget settings
func (c Config) Proofreader() proofreader.Config {
	zoom, _ := layout.ParseZoom(c.Zoom)
	return proofreader.Config{
		Stylesheet: c.Stylesheet,
		FontFamily: c.FontFamily,
		FontSize:   c.FontSize,
		Zoom:       zoom,
	}
}

// Bounds returns the on-screen rectangles of the layout view and, to its
// right, the editor view
func (c Config) Bounds() (layoutBounds, editorBounds layout.Rect) {
	w, h := c.Viewport.Width, c.Viewport.Height
	return layout.Rect{Right: w, Bottom: h}, layout.Rect{Left: w, Right: 2 * w, Bottom: h}
}

// ProofSheet returns the PDF settings
func (c Config) ProofSheet() pdfocr.OCRConfig {
	pc := pdfocr.DefaultConfig()
	pc.PageWidth = c.PDF.PageWidth
	pc.Debug = c.PDF.Debug
	return pc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
