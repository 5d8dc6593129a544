// Package clipboard provides the asynchronous clipboard capability used by
// copy buttons.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend exists on this host.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer writes text to a clipboard. WriteText blocks until the write has
// completed, failed, or ctx is done.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// System writes to the operating system clipboard using github.com/atotto/clipboard.
type System struct{}

// NewSystem returns the system clipboard writer.
func NewSystem() *System {
	return &System{}
}

// WriteText copies text to the system clipboard.
func (s *System) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	done := make(chan error, 1)
	go func() {
		done <- clipboard.WriteAll(text)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("clipboard write failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Memory is an in-process clipboard. It records every successful write.
type Memory struct {
	mu     sync.Mutex
	writes []string
	err    error
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText records text, or rejects it if Fail was called.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, text)
	return nil
}

// Fail makes subsequent writes return err. A nil err restores normal behaviour.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Text returns the current clipboard content (the last successful write).
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return ""
	}
	return m.writes[len(m.writes)-1]
}

// Writes returns a copy of every successful write, oldest first.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

// Stream writes clipboard text to an io.Writer, e.g. stdout when no system
// clipboard is wanted.
type Stream struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStream returns a Writer that prints each write to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

// WriteText writes text to the underlying writer verbatim.
func (s *Stream) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, text)
	return err
}

var (
	_ Writer = (*System)(nil)
	_ Writer = (*Memory)(nil)
	_ Writer = (*Stream)(nil)
)
