// Package render draws schedule pressure slides as square PNG images.
package render

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
)

const (
	defaultPerSlide = 5
	defaultOutDir   = "ig_pressure"
	defaultTimezone = "America/Toronto"
)

// Options control where and how slides are written.
type Options struct {
	OutDir   string
	PerSlide int
	LogoPath string
	Location *time.Location
}

// Renderer writes carousel slides for a day's games.
type Renderer struct {
	opts   Options
	fonts  *fontCache
	logger *slog.Logger
}

// New returns a renderer with defaults applied to opts.
func New(opts Options, logger *slog.Logger) *Renderer {
	if opts.OutDir == "" {
		opts.OutDir = defaultOutDir
	}
	if opts.PerSlide <= 0 {
		opts.PerSlide = defaultPerSlide
	}
	if opts.Location == nil {
		opts.Location = defaultLocation()
	}
	return &Renderer{opts: opts, fonts: newFontCache(), logger: logger}
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlideName is the file name of slide n (1-based) for date.
func SlideName(date string, n int) string {
	return fmt.Sprintf("ig_schedule_pressure_%s_p%d.png", date, n)
}

// Chunk splits games into slides of at most per games. An empty day still
// yields one empty slide.
func Chunk(gs []games.Game, per int) [][]games.Game {
	if per <= 0 {
		per = defaultPerSlide
	}
	if len(gs) == 0 {
		return [][]games.Game{nil}
	}
	var out [][]games.Game
	for i := 0; i < len(gs); i += per {
		out = append(out, gs[i:min(i+per, len(gs))])
	}
	return out
}

// RenderCarousel sorts games by start time, writes one PNG per chunk into
// OutDir and returns the written paths in slide order.
func (r *Renderer) RenderCarousel(date string, gs []games.Game, loads fatigue.Loads) ([]string, error) {
	if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("render: create %s: %w", r.opts.OutDir, err)
	}
	logo := r.loadLogo()

	slides := Chunk(games.SortByStart(gs), r.opts.PerSlide)
	paths := make([]string, 0, len(slides))
	for i, chunk := range slides {
		path := filepath.Join(r.opts.OutDir, SlideName(date, i+1))
		if err := r.writeSlide(path, date, chunk, loads, logo); err != nil {
			return paths, err
		}
		logging.Info(r.logger, "slide written", logging.FieldDate, date, logging.FieldFile, path, logging.FieldCount, len(chunk))
		paths = append(paths, path)
	}
	return paths, nil
}

// RenderCard encodes a single slide as PNG to w.
func (r *Renderer) RenderCard(w io.Writer, date string, gs []games.Game, loads fatigue.Loads) error {
	return r.drawCard(date, gs, loads, r.loadLogo()).EncodePNG(w)
}

func (r *Renderer) writeSlide(path, date string, gs []games.Game, loads fatigue.Loads, logo image.Image) error {
	dc := r.drawCard(date, gs, loads, logo)
	tmp := path + ".tmp"
	if err := dc.SavePNG(tmp); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) drawCard(date string, gs []games.Game, loads fatigue.Loads, logo image.Image) *gg.Context {
	c := &card{
		dc:    gg.NewContext(Width, Height),
		fonts: r.fonts,
		loc:   r.opts.Location,
		logo:  logo,
	}
	c.draw(date, gs, loads)
	return c.dc
}

// loadLogo returns nil when no logo is configured or it cannot be read.
func (r *Renderer) loadLogo() image.Image {
	if r.opts.LogoPath == "" {
		return nil
	}
	img, err := gg.LoadImage(r.opts.LogoPath)
	if err != nil {
		logging.Warn(r.logger, "logo unavailable", logging.FieldFile, r.opts.LogoPath, "error", err)
		return nil
	}
	return img
}
