package site

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/ziadkadry99/copybtn/internal/copybutton"
	"github.com/ziadkadry99/copybtn/internal/dom"
	"github.com/ziadkadry99/copybtn/internal/progress"
	"github.com/ziadkadry99/copybtn/internal/walker"
)

// Processor adds copy buttons to every page of an already built static site.
type Processor struct {
	Root     string
	Include  []string
	Exclude  []string
	Options  copybutton.Options
	Reporter progress.Reporter
	// DryRun counts what would change without writing anything.
	DryRun bool
	Logger *slog.Logger
}

// Stats summarises a Processor run.
type Stats struct {
	Scanned int // pages parsed
	Changed int // pages that received at least one button
	Skipped int // pages that already load the script
	Buttons int // buttons injected
}

// Run processes the site. Pages already loading the copy button script are
// left alone, so running twice is a no-op.
func (p *Processor) Run() (Stats, error) {
	var stats Stats
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}
	rep := p.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	// Fail on bad options before touching any file.
	if _, err := copybutton.New(p.Options); err != nil {
		return stats, fmt.Errorf("invalid copy button options: %w", err)
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:    p.Root,
		Extensions: walker.HTMLExtensions,
		Include:    p.Include,
		Exclude:    p.Exclude,
	})
	if err != nil {
		return stats, err
	}

	rep.Start(len(files))
	defer rep.Finish()

	for i, f := range files {
		n, skipped, err := p.processFile(f)
		if err != nil {
			return stats, fmt.Errorf("processing %s: %w", f.RelPath, err)
		}
		stats.Scanned++
		switch {
		case skipped:
			stats.Skipped++
			log.Debug("page already processed", "page", f.RelPath)
		case n > 0:
			stats.Changed++
			stats.Buttons += n
			log.Debug("page processed", "page", f.RelPath, "buttons", n)
		}
		rep.Update(i+1, f.RelPath)
	}

	if stats.Changed > 0 && !p.DryRun {
		if err := writeAssets(p.Root, p.Options); err != nil {
			return stats, err
		}
	}

	log.Info("site processed", "root", p.Root, "pages", stats.Scanned, "changed", stats.Changed,
		"skipped", stats.Skipped, "buttons", stats.Buttons, "dry_run", p.DryRun)
	return stats, nil
}

// processFile injects buttons into one page and returns how many it added.
func (p *Processor) processFile(f walker.FileInfo) (int, bool, error) {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, false, err
	}
	doc, err := dom.Parse(bytes.NewReader(src))
	if err != nil {
		return 0, false, err
	}
	if hasScript(doc) {
		return 0, true, nil
	}

	// One injector per document.
	in, err := copybutton.New(p.Options)
	if err != nil {
		return 0, false, err
	}
	buttons := in.Initialize(doc)
	if len(buttons) == 0 || p.DryRun {
		return len(buttons), false, nil
	}

	linkAssets(doc, basePath(f.RelPath))

	var out bytes.Buffer
	if err := dom.Render(&out, doc); err != nil {
		return 0, false, fmt.Errorf("rendering html: %w", err)
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		return 0, false, err
	}
	if err := os.WriteFile(f.Path, out.Bytes(), info.Mode().Perm()); err != nil {
		return 0, false, err
	}
	return len(buttons), false, nil
}
