package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jkowalczyk/retain/internal/ui/layout"
)

// Screen is the interface every application screen implements. The router
// owns a stack of these.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen plus a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens that want custom
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// RefreshMsg tells a screen that data it displays may have changed (a
// session finished, the day advanced) and it should reload.
type RefreshMsg struct{}
