package copybutton

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ziadkadry99/copybtn/internal/clipboard"
)

const (
	// DefaultSelector matches the code element of a rouge-highlighted block.
	DefaultSelector = "pre.highlight > code"
	// DefaultTextSelector locates the plain-text node inside a matched block.
	DefaultTextSelector = ".rouge-code"
	// DefaultClassName is assigned to every injected button.
	DefaultClassName = "copy-btn"
	// IdleGlyph is the button content while idle (Font Awesome clipboard icon).
	IdleGlyph = "<i class='fas fa-clipboard'></i>"
	// ConfirmedGlyph is shown after a successful copy (Font Awesome check icon).
	ConfirmedGlyph = "<i class='fas fa-check'></i>"
	// DefaultRevertAfter is how long the confirmation stays visible.
	DefaultRevertAfter = 2000 * time.Millisecond
)

// Options configures an Injector. Zero fields take the defaults above.
type Options struct {
	Selector      string
	TextSelector  string
	ClassName     string
	IdleHTML      string
	ConfirmedHTML string
	RevertAfter   time.Duration

	// Clipboard receives copied text. Defaults to the system clipboard.
	Clipboard clipboard.Writer
	// Clock schedules the revert. Defaults to the real clock.
	Clock  clockwork.Clock
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Selector == "" {
		o.Selector = DefaultSelector
	}
	if o.TextSelector == "" {
		o.TextSelector = DefaultTextSelector
	}
	if o.ClassName == "" {
		o.ClassName = DefaultClassName
	}
	if o.IdleHTML == "" {
		o.IdleHTML = IdleGlyph
	}
	if o.ConfirmedHTML == "" {
		o.ConfirmedHTML = ConfirmedGlyph
	}
	if o.RevertAfter == 0 {
		o.RevertAfter = DefaultRevertAfter
	}
	if o.Clipboard == nil {
		o.Clipboard = clipboard.NewSystem()
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
