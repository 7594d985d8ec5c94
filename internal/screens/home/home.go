package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/jkowalczyk/retain/internal/clock"
	"github.com/jkowalczyk/retain/internal/router"
	"github.com/jkowalczyk/retain/internal/screen"
	"github.com/jkowalczyk/retain/internal/screens/editor"
	"github.com/jkowalczyk/retain/internal/screens/study"
	"github.com/jkowalczyk/retain/internal/store"
	"github.com/jkowalczyk/retain/internal/ui/components"
	"github.com/jkowalczyk/retain/internal/ui/layout"
	"github.com/jkowalczyk/retain/internal/ui/theme"
)

// deckListMsg carries freshly loaded deck info.
type deckListMsg struct {
	Decks []store.DeckInfo
	Err   error
}

// dayAdvancedMsg reports the result of an advance-day action.
type dayAdvancedMsg struct {
	Day int
	Err error
}

// HomeScreen lists decks and offers the advance-day control.
type HomeScreen struct {
	db     *store.DB
	clk    *clock.Simulated
	log    *zap.Logger
	menu   components.Menu
	decks  []store.DeckInfo
	errMsg string

	defaultDeck string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. defaultDeck, when set and present, is
// preselected in the menu.
func New(db *store.DB, clk *clock.Simulated, log *zap.Logger, defaultDeck string) *HomeScreen {
	h := &HomeScreen{db: db, clk: clk, log: log}
	h.menu = components.NewMenu(nil)
	h.defaultDeck = defaultDeck
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDecks()
}

func (h *HomeScreen) Title() string {
	return "Decks"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Study"},
		{Key: "N", Description: "Add card"},
		{Key: "D", Description: "Advance day"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckListMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.decks = msg.Decks
		h.rebuildMenu()
		return h, nil

	case dayAdvancedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.log.Info("day advanced", zap.Int("day", msg.Day))
		return h, h.loadDecks()

	case screen.RefreshMsg:
		return h, h.loadDecks()

	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			return h, h.advanceDay()
		case "n":
			if info, ok := h.selectedDeck(); ok {
				ed := editor.New(h.db, h.clk, h.log, info.Name)
				return h, func() tea.Msg { return router.PushScreenMsg{Screen: ed} }
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	if h.errMsg != "" {
		return layout.Center(theme.Bad.Render(h.errMsg), width, height)
	}
	if len(h.decks) == 0 {
		empty := theme.Subtitle.Render("No decks yet.") + "\n\n" +
			theme.Hint.Render("Create one with: retain deck create <name>")
		return layout.Center(empty, width, height)
	}

	title := theme.Title.Render("Pick a deck to study") + "\n\n"
	return layout.Center(title+h.menu.View(), width, height)
}

func (h *HomeScreen) rebuildMenu() {
	items := make([]components.MenuItem, 0, len(h.decks))
	selected := 0
	for i, info := range h.decks {
		info := info
		if info.Name == h.defaultDeck {
			selected = i
		}
		items = append(items, components.MenuItem{
			Label:    info.Name,
			Detail:   fmt.Sprintf("%d cards · %d due", info.Cards, info.Due),
			Disabled: info.Due == 0,
			Action: func() tea.Cmd {
				s := study.New(h.db, h.clk, h.log, info.Name)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		})
	}
	h.menu = components.NewMenu(items)
	if selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) selectedDeck() (store.DeckInfo, bool) {
	if h.menu.Selected < 0 || h.menu.Selected >= len(h.decks) {
		return store.DeckInfo{}, false
	}
	return h.decks[h.menu.Selected], true
}

func (h *HomeScreen) loadDecks() tea.Cmd {
	return func() tea.Msg {
		decks, err := h.db.ListDecks(context.Background(), h.clk.Today())
		return deckListMsg{Decks: decks, Err: err}
	}
}

func (h *HomeScreen) advanceDay() tea.Cmd {
	return func() tea.Msg {
		day, err := h.clk.Advance(context.Background())
		return dayAdvancedMsg{Day: day, Err: err}
	}
}
