// Package copybutton injects copy-to-clipboard buttons in front of highlighted
// code blocks of a parsed HTML document and handles their clicks.
package copybutton

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/copybtn/internal/dom"
)

// ErrUnknownButton is returned by ClickID for an ID no Initialize call produced.
var ErrUnknownButton = errors.New("unknown copy button")

// State is the display state of a button.
type State int

const (
	Idle State = iota
	Confirmed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Button pairs an injected button element with the code block it copies.
type Button struct {
	ID    int
	Node  *html.Node
	Block *html.Node
}

// Injector wires copy buttons into documents. One mutex guards every DOM read
// and write the injector performs, so clicks, continuations and reverts run
// one at a time.
type Injector struct {
	opts         Options
	log          *slog.Logger
	selector     *dom.Selector
	textSelector *dom.Selector

	confirmedHTML string

	mu       sync.Mutex
	buttons  []*Button
	bindings map[int]*Button
	// last closes when the most recent click has finished; the next click
	// waits on it so clipboard writes happen in click order.
	last    chan struct{}
	pending sync.WaitGroup
}

// New validates opts and returns an Injector.
func New(opts Options) (*Injector, error) {
	opts = opts.withDefaults()
	if opts.RevertAfter < 0 {
		return nil, fmt.Errorf("revert delay must be positive, got %s", opts.RevertAfter)
	}

	sel, err := dom.Compile(opts.Selector)
	if err != nil {
		return nil, fmt.Errorf("block selector: %w", err)
	}
	textSel, err := dom.Compile(opts.TextSelector)
	if err != nil {
		return nil, fmt.Errorf("text selector: %w", err)
	}

	button := dom.NewElement(atom.Button)
	idle, err := dom.ParseFragment(button, opts.IdleHTML)
	if err != nil {
		return nil, fmt.Errorf("idle content: %w", err)
	}
	confirmed, err := dom.ParseFragment(button, opts.ConfirmedHTML)
	if err != nil {
		return nil, fmt.Errorf("confirmed content: %w", err)
	}

	if renderAll(idle) == renderAll(confirmed) {
		return nil, errors.New("idle and confirmed content must differ")
	}

	return &Injector{
		opts:          opts,
		log:           opts.Logger,
		selector:      sel,
		textSelector:  textSel,
		confirmedHTML: renderAll(confirmed),
		bindings:      make(map[int]*Button),
	}, nil
}

// Initialize inserts one button before every block under root that matches
// the block selector, in document order, and returns the new buttons. A root
// without matching blocks yields an empty slice. Existing nodes are never
// removed.
func (in *Injector) Initialize(root *html.Node) []*Button {
	in.mu.Lock()
	defer in.mu.Unlock()

	blocks := in.selector.MatchAll(root)
	created := make([]*Button, 0, len(blocks))
	for _, block := range blocks {
		node := dom.NewElement(atom.Button, html.Attribute{Key: "class", Val: in.opts.ClassName})
		in.display(node, in.opts.IdleHTML)
		block.Parent.InsertBefore(node, block)

		b := &Button{ID: len(in.buttons), Node: node, Block: block}
		in.buttons = append(in.buttons, b)
		in.bindings[b.ID] = b
		created = append(created, b)
	}

	in.log.Debug("copy buttons injected", "selector", in.selector.String(), "count", len(created))
	return created
}

// Buttons returns every button created so far, in creation order.
func (in *Injector) Buttons() []*Button {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]*Button, len(in.buttons))
	copy(out, in.buttons)
	return out
}

// Lookup returns the button bound to id.
func (in *Injector) Lookup(id int) (*Button, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	b, ok := in.bindings[id]
	return b, ok
}

// ClickID clicks the button bound to id.
func (in *Injector) ClickID(ctx context.Context, id int) (<-chan struct{}, error) {
	b, ok := in.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownButton, id)
	}
	return in.Click(ctx, b), nil
}

// Click copies the plain text of b's block to the clipboard without blocking
// the caller. After a successful write the button shows the confirmed content
// and a revert to the idle content is scheduled; earlier reverts are not
// cancelled. A failed write changes nothing visible and is only logged. The
// returned channel is closed once the click has been fully handled.
func (in *Injector) Click(ctx context.Context, b *Button) <-chan struct{} {
	done := make(chan struct{})

	in.mu.Lock()
	text, found := in.blockText(b)
	prev := in.last
	in.last = done
	in.pending.Add(1)
	in.mu.Unlock()

	go func() {
		defer in.pending.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}

		if !found {
			in.log.Warn("code block has no text node", "button", b.ID, "text_selector", in.textSelector.String())
			return
		}
		if err := in.opts.Clipboard.WriteText(ctx, text); err != nil {
			in.log.Debug("clipboard write failed", "button", b.ID, "error", err)
			return
		}

		in.mu.Lock()
		in.display(b.Node, in.opts.ConfirmedHTML)
		in.mu.Unlock()
		in.log.Debug("code block copied", "button", b.ID, "bytes", len(text))

		in.opts.Clock.AfterFunc(in.opts.RevertAfter, func() {
			in.mu.Lock()
			defer in.mu.Unlock()
			in.display(b.Node, in.opts.IdleHTML)
		})
	}()

	return done
}

// Wait blocks until every click issued so far has been handled. Pending
// reverts are not waited for.
func (in *Injector) Wait() {
	in.pending.Wait()
}

// State reports the display state of b.
func (in *Injector) State(b *Button) State {
	in.mu.Lock()
	defer in.mu.Unlock()
	if dom.InnerHTML(b.Node) == in.confirmedHTML {
		return Confirmed
	}
	return Idle
}

// Content returns the markup currently displayed by b.
func (in *Injector) Content(b *Button) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return dom.InnerHTML(b.Node)
}

// Text returns the text a click on b would copy, and whether the block has a
// text node at all.
func (in *Injector) Text(b *Button) (string, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.blockText(b)
}

// blockText must be called with in.mu held.
func (in *Injector) blockText(b *Button) (string, bool) {
	n := in.textSelector.MatchFirst(b.Block)
	if n == nil {
		return "", false
	}
	return dom.InnerText(n), true
}

// display must be called with in.mu held. The markup was already parsed
// once by New, so a parse error here is only logged.
func (in *Injector) display(node *html.Node, markup string) {
	if err := dom.SetInnerHTML(node, markup); err != nil {
		in.log.Error("setting button content", "error", err)
	}
}

func renderAll(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		_ = html.Render(&b, n)
	}
	return b.String()
}
