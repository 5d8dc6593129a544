package copybutton

import (
	"context"
	"errors"
	"html"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	xhtml "golang.org/x/net/html"

	"github.com/ziadkadry99/copybtn/internal/clipboard"
	"github.com/ziadkadry99/copybtn/internal/dom"
)

// block renders a rouge-style highlighted block holding text.
func block(text string) string {
	return `<div class="highlight"><pre class="highlight"><code><span class="rouge-code">` +
		html.EscapeString(text) + `</span></code></pre></div>`
}

func parseDoc(t *testing.T, body string) *xhtml.Node {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader("<!DOCTYPE html><html><body>" + body + "</body></html>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

type harness struct {
	in    *Injector
	clock *clockwork.FakeClock
	board *clipboard.Memory
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{clock: clockwork.NewFakeClock(), board: clipboard.NewMemory()}
	opts.Clock = h.clock
	opts.Clipboard = h.board
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	in, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.in = in
	return h
}

// click clicks b and waits for the click to be handled.
func (h *harness) click(t *testing.T, b *Button) {
	t.Helper()
	select {
	case <-h.in.Click(context.Background(), b):
	case <-time.After(5 * time.Second):
		t.Fatal("click was never handled")
	}
}

// settle waits until b shows want. Reverts run on the clock's callback path,
// so a state check right after Advance may need a moment.
func (h *harness) settle(t *testing.T, b *Button, want State) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.in.State(b) != want {
		if time.Now().After(deadline) {
			t.Fatalf("state = %v, want %v", h.in.State(b), want)
		}
		time.Sleep(time.Millisecond)
	}
}

// noReverts fails unless no revert is waiting on the clock.
func (h *harness) noReverts(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.clock.BlockUntilContext(ctx, 0); err != nil {
		t.Errorf("reverts still pending: %v", err)
	}
}

const idleRendered = `<i class="fas fa-clipboard"></i>`
const confirmedRendered = `<i class="fas fa-check"></i>`

func TestInitializeOneButtonPerBlock(t *testing.T) {
	h := newHarness(t, Options{})
	doc := parseDoc(t, block("echo hello")+
		`<pre class="plain"><code><span class="rouge-code">skip</span></code></pre>`+
		`<pre class="highlight"><div><code>nested</code></div></pre>`+
		block("ls -la"))

	buttons := h.in.Initialize(doc)
	if len(buttons) != 2 {
		t.Fatalf("created %d buttons, want 2", len(buttons))
	}

	var texts []string
	for i, b := range buttons {
		if b.ID != i {
			t.Errorf("button %d has ID %d", i, b.ID)
		}
		if b.Node.NextSibling != b.Block {
			t.Errorf("button %d is not the immediate previous sibling of its block", i)
		}
		if b.Node.Parent != b.Block.Parent || b.Node.Parent.Data != "pre" {
			t.Errorf("button %d parent = %v, want the block's pre", i, b.Node.Parent)
		}
		if b.Node.Data != "button" || dom.Attr(b.Node, "class") != DefaultClassName {
			t.Errorf("button %d = <%s class=%q>", i, b.Node.Data, dom.Attr(b.Node, "class"))
		}
		if got := h.in.Content(b); got != idleRendered {
			t.Errorf("button %d content = %q, want %q", i, got, idleRendered)
		}
		if h.in.State(b) != Idle {
			t.Errorf("button %d state = %v, want idle", i, h.in.State(b))
		}
		text, _ := h.in.Text(b)
		texts = append(texts, text)
	}
	if diff := cmp.Diff([]string{"echo hello", "ls -la"}, texts); diff != "" {
		t.Errorf("buttons not in document order (-want +got):\n%s", diff)
	}

	if got := len(dom.MustCompile("button.copy-btn").MatchAll(doc)); got != 2 {
		t.Errorf("document holds %d buttons, want 2", got)
	}
	if got := len(dom.MustCompile("pre.highlight > code").MatchAll(doc)); got != 2 {
		t.Errorf("document lost code blocks: %d left", got)
	}
}

func TestInitializeNoBlocks(t *testing.T) {
	h := newHarness(t, Options{})
	doc := parseDoc(t, `<p>no code here</p><pre><code>plain</code></pre>`)

	buttons := h.in.Initialize(doc)
	if len(buttons) != 0 {
		t.Fatalf("created %d buttons, want 0", len(buttons))
	}
	if len(h.in.Buttons()) != 0 {
		t.Errorf("Buttons() = %d, want 0", len(h.in.Buttons()))
	}
}

func TestInitializeAcrossRootsKeepsBindings(t *testing.T) {
	h := newHarness(t, Options{})
	first := h.in.Initialize(parseDoc(t, block("a")))
	second := h.in.Initialize(parseDoc(t, block("b")+block("c")))

	if len(first) != 1 || len(second) != 2 {
		t.Fatalf("created %d and %d buttons, want 1 and 2", len(first), len(second))
	}
	for _, id := range []int{0, 1, 2} {
		b, ok := h.in.Lookup(id)
		if !ok {
			t.Fatalf("Lookup(%d) missing", id)
		}
		if b.ID != id {
			t.Errorf("Lookup(%d).ID = %d", id, b.ID)
		}
	}
	if b, _ := h.in.Lookup(2); b != second[1] {
		t.Error("Lookup(2) does not return the last button")
	}
}

func TestClickCopiesTextVerbatim(t *testing.T) {
	tests := []string{
		"echo hello",
		"  leading and trailing  ",
		"line one\n\tline two\n\n",
		`if a < b && c > "d" { return 'e' }`,
		"unicode: héllo ✓",
	}
	for _, text := range tests {
		h := newHarness(t, Options{})
		buttons := h.in.Initialize(parseDoc(t, block(text)))
		h.click(t, buttons[0])
		if got := h.board.Text(); got != text {
			t.Errorf("clipboard = %q, want %q", got, text)
		}
	}
}

func TestClickCopiesRougeTableCode(t *testing.T) {
	h := newHarness(t, Options{})
	doc := parseDoc(t, `<div class="highlight"><pre class="highlight"><code><table class="rouge-table"><tbody><tr>`+
		`<td class="rouge-gutter gl"><pre class="lineno">1
2
</pre></td><td class="rouge-code"><pre><span class="nb">echo</span> hello
<span class="nb">ls</span> -la
</pre></td></tr></tbody></table></code></pre></div>`)

	buttons := h.in.Initialize(doc)
	if len(buttons) != 1 {
		t.Fatalf("created %d buttons, want 1", len(buttons))
	}
	h.click(t, buttons[0])
	if got, want := h.board.Text(), "echo hello\nls -la\n"; got != want {
		t.Errorf("clipboard = %q, want %q", got, want)
	}
}

func TestConfirmationRevertsAfterDelay(t *testing.T) {
	h := newHarness(t, Options{})
	b := h.in.Initialize(parseDoc(t, block("echo hello")))[0]

	h.click(t, b)
	if got := h.in.Content(b); got != confirmedRendered {
		t.Fatalf("content after click = %q, want %q", got, confirmedRendered)
	}

	h.clock.Advance(DefaultRevertAfter - time.Millisecond)
	if h.in.State(b) != Confirmed {
		t.Fatalf("state at 1999ms = %v, want confirmed", h.in.State(b))
	}

	h.clock.Advance(time.Millisecond)
	h.settle(t, b, Idle)
	if got := h.in.Content(b); got != idleRendered {
		t.Errorf("content after revert = %q, want %q", got, idleRendered)
	}
}

func TestOverlappingClicksEndIdle(t *testing.T) {
	h := newHarness(t, Options{})
	b := h.in.Initialize(parseDoc(t, block("echo hello")))[0]

	h.click(t, b)
	h.clock.Advance(500 * time.Millisecond)
	h.click(t, b)
	if h.in.State(b) != Confirmed {
		t.Fatalf("state after second click = %v, want confirmed", h.in.State(b))
	}

	// The first revert is not cancelled by the second click.
	h.clock.Advance(1500 * time.Millisecond)
	h.settle(t, b, Idle)

	h.clock.Advance(500 * time.Millisecond)
	if h.in.State(b) != Idle {
		t.Errorf("final state = %v, want idle", h.in.State(b))
	}
	h.noReverts(t)
	if diff := cmp.Diff([]string{"echo hello", "echo hello"}, h.board.Writes()); diff != "" {
		t.Errorf("clipboard writes mismatch (-want +got):\n%s", diff)
	}
}

func TestClipboardFailureIsSilent(t *testing.T) {
	h := newHarness(t, Options{})
	h.board.Fail(errors.New("permission denied"))
	b := h.in.Initialize(parseDoc(t, block("secret")))[0]

	h.click(t, b)
	if got := h.in.Content(b); got != idleRendered {
		t.Errorf("content after failed copy = %q, want %q", got, idleRendered)
	}
	h.noReverts(t)
	h.clock.Advance(DefaultRevertAfter)
	if h.in.State(b) != Idle {
		t.Errorf("state = %v, want idle", h.in.State(b))
	}
}

func TestClickWithoutTextNode(t *testing.T) {
	h := newHarness(t, Options{})
	b := h.in.Initialize(parseDoc(t, `<pre class="highlight"><code>no rouge markup</code></pre>`))[0]

	if _, ok := h.in.Text(b); ok {
		t.Fatal("Text reported a text node for a block without one")
	}
	h.click(t, b)
	if len(h.board.Writes()) != 0 {
		t.Errorf("clipboard written: %v", h.board.Writes())
	}
	if h.in.State(b) != Idle {
		t.Errorf("state = %v, want idle", h.in.State(b))
	}
}

func TestTwoBlockScenario(t *testing.T) {
	h := newHarness(t, Options{})
	buttons := h.in.Initialize(parseDoc(t, block("echo hello")+block("ls -la")))
	if len(buttons) != 2 {
		t.Fatalf("created %d buttons, want 2", len(buttons))
	}
	first, second := buttons[0], buttons[1]

	h.click(t, first)
	if got := h.board.Text(); got != "echo hello" {
		t.Errorf("clipboard = %q, want %q", got, "echo hello")
	}
	if h.in.State(first) != Confirmed || h.in.State(second) != Idle {
		t.Errorf("states = %v/%v, want confirmed/idle", h.in.State(first), h.in.State(second))
	}

	h.clock.Advance(2 * time.Second)
	h.settle(t, first, Idle)
	if h.in.State(second) != Idle {
		t.Errorf("second state after 2s = %v, want idle", h.in.State(second))
	}
}

func TestClicksWriteInClickOrder(t *testing.T) {
	h := newHarness(t, Options{})
	var body strings.Builder
	var want []string
	for i := 0; i < 8; i++ {
		text := strings.Repeat("x", i+1)
		body.WriteString(block(text))
		want = append(want, text)
	}
	buttons := h.in.Initialize(parseDoc(t, body.String()))

	for _, b := range buttons {
		h.in.Click(context.Background(), b)
	}
	h.in.Wait()

	if diff := cmp.Diff(want, h.board.Writes()); diff != "" {
		t.Errorf("write order mismatch (-want +got):\n%s", diff)
	}
}

func TestClickID(t *testing.T) {
	h := newHarness(t, Options{})
	h.in.Initialize(parseDoc(t, block("a")+block("b")))

	done, err := h.in.ClickID(context.Background(), 1)
	if err != nil {
		t.Fatalf("ClickID(1): %v", err)
	}
	<-done
	if h.board.Text() != "b" {
		t.Errorf("clipboard = %q, want %q", h.board.Text(), "b")
	}

	if _, err := h.in.ClickID(context.Background(), 7); !errors.Is(err, ErrUnknownButton) {
		t.Errorf("ClickID(7) error = %v, want ErrUnknownButton", err)
	}
}

func TestCustomOptions(t *testing.T) {
	h := newHarness(t, Options{
		Selector:      "div.listing > code",
		TextSelector:  ".src",
		ClassName:     "clip",
		IdleHTML:      "Copy",
		ConfirmedHTML: "Copied!",
		RevertAfter:   500 * time.Millisecond,
	})
	b := h.in.Initialize(parseDoc(t, `<div class="listing"><code><span class="src">make test</span></code></div>`))[0]

	if dom.Attr(b.Node, "class") != "clip" || h.in.Content(b) != "Copy" {
		t.Fatalf("button = class %q content %q", dom.Attr(b.Node, "class"), h.in.Content(b))
	}
	h.click(t, b)
	if h.in.Content(b) != "Copied!" || h.board.Text() != "make test" {
		t.Errorf("after click content %q clipboard %q", h.in.Content(b), h.board.Text())
	}
	h.clock.Advance(500 * time.Millisecond)
	h.settle(t, b, Idle)
	if h.in.Content(b) != "Copy" {
		t.Errorf("after revert content %q, want %q", h.in.Content(b), "Copy")
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad selector", Options{Selector: "pre >"}},
		{"bad text selector", Options{TextSelector: ".a["}},
		{"negative delay", Options{RevertAfter: -time.Second}},
		{"same glyphs", Options{IdleHTML: "x", ConfirmedHTML: "x"}},
	}
	for _, tt := range tests {
		if _, err := New(tt.opts); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Confirmed.String() != "confirmed" {
		t.Errorf("State strings = %q, %q", Idle, Confirmed)
	}
}
