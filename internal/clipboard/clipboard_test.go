package clipboard

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryRecordsWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if m.Text() != "" {
		t.Errorf("empty clipboard Text = %q", m.Text())
	}
	for _, s := range []string{"echo hello", "  ls -la\n"} {
		if err := m.WriteText(ctx, s); err != nil {
			t.Fatalf("WriteText(%q): %v", s, err)
		}
	}
	if got, want := m.Text(), "  ls -la\n"; got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"echo hello", "  ls -la\n"}, m.Writes()); diff != "" {
		t.Errorf("Writes mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryFail(t *testing.T) {
	m := NewMemory()
	denied := errors.New("permission denied")
	m.Fail(denied)

	if err := m.WriteText(context.Background(), "x"); !errors.Is(err, denied) {
		t.Fatalf("WriteText error = %v, want %v", err, denied)
	}
	if len(m.Writes()) != 0 {
		t.Errorf("rejected write was recorded: %v", m.Writes())
	}

	m.Fail(nil)
	if err := m.WriteText(context.Background(), "y"); err != nil {
		t.Fatalf("WriteText after recovery: %v", err)
	}
	if m.Text() != "y" {
		t.Errorf("Text = %q, want %q", m.Text(), "y")
	}
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemory().WriteText(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteText error = %v, want context.Canceled", err)
	}
}

func TestStream(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)
	if err := s.WriteText(context.Background(), "a\tb\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if buf.String() != "a\tb\n" {
		t.Errorf("stream got %q", buf.String())
	}
}
