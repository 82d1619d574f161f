package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a status line on w until stopped. It reuses the frame set
// of the bubbles spinners so the plain CLI matches the focus TUI.
type Spinner struct {
	w       io.Writer
	kind    spinner.Spinner
	message string

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a stopped spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		kind:    spinner.MiniDot,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.done)
	interval := s.kind.FPS
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frames := s.kind.Frames
	for i := 0; ; i++ {
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frames[i%len(frames)]), Dim(s.message))
		}
	}
}

// Stop clears the line and waits for the animation to exit. Safe to call
// more than once; only valid after Start.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// StartSpinner starts a spinner and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
