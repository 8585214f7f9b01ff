package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/storefront-demo/internal/domain"
)

var (
	toastStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color("#ffffff"))

	successStyle = toastStyle.Background(lipgloss.Color("#1a237e"))
	errorStyle   = toastStyle.Background(lipgloss.Color("#e53935"))
)

// TerminalSurface prints each notification once as a styled line. A
// terminal cannot take a line back, so Dismiss and Remove draw nothing.
type TerminalSurface struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalSurface(w io.Writer) *TerminalSurface {
	return &TerminalSurface{w: w}
}

func (s *TerminalSurface) Show(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	style := successStyle
	if n.Kind == domain.NotificationError {
		style = errorStyle
	}

	_, _ = fmt.Fprintln(s.w, style.Render(n.Message))
}

func (s *TerminalSurface) Dismiss(domain.Notification) {}

func (s *TerminalSurface) Remove(domain.Notification) {}
