package editor

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/jkowalczyk/retain/internal/clock"
	"github.com/jkowalczyk/retain/internal/router"
	"github.com/jkowalczyk/retain/internal/screen"
	"github.com/jkowalczyk/retain/internal/store"
	"github.com/jkowalczyk/retain/internal/ui/components"
	"github.com/jkowalczyk/retain/internal/ui/layout"
	"github.com/jkowalczyk/retain/internal/ui/theme"
)

// cardSavedMsg reports the result of saving a new card.
type cardSavedMsg struct {
	Term string
	Err  error
}

// EditorScreen is a small form for adding cards to a deck. New cards are
// immediately due.
type EditorScreen struct {
	db       *store.DB
	clk      *clock.Simulated
	log      *zap.Logger
	deckName string

	term       components.TextInput
	definition components.TextInput
	focusDef   bool
	added      int
	status     string
	statusBad  bool
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// New creates an editor for the given deck.
func New(db *store.DB, clk *clock.Simulated, log *zap.Logger, deckName string) *EditorScreen {
	return &EditorScreen{
		db:         db,
		clk:        clk,
		log:        log,
		deckName:   deckName,
		term:       components.NewTextInput("Term", "e.g. hello", 120),
		definition: components.NewTextInput("Definition", "e.g. cześć", 240),
	}
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.term.Focus()
}

func (e *EditorScreen) Title() string {
	return "Add cards · " + e.deckName
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save card"},
		{Key: "Esc", Description: "Done"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardSavedMsg:
		if msg.Err != nil {
			e.status = msg.Err.Error()
			e.statusBad = true
			return e, nil
		}
		e.added++
		e.status = fmt.Sprintf("Added %q (%d this visit)", msg.Term, e.added)
		e.statusBad = false
		e.term.Reset()
		e.definition.Reset()
		e.definition.Blur()
		e.focusDef = false
		return e, e.term.Focus()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return e, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return screen.RefreshMsg{} },
			)
		case "tab", "shift+tab":
			return e, e.toggleFocus()
		case "enter":
			if !e.focusDef {
				return e, e.toggleFocus()
			}
			return e, e.save()
		}
	}

	var cmd tea.Cmd
	if e.focusDef {
		e.definition, cmd = e.definition.Update(msg)
	} else {
		e.term, cmd = e.term.Update(msg)
	}
	return e, cmd
}

func (e *EditorScreen) View(width, height int) string {
	form := e.term.View() + "\n\n" + e.definition.View()

	content := theme.Title.Render("New card") + "\n\n" +
		theme.Card.Width(min(width-8, 60)).Render(form)

	if e.status != "" {
		style := theme.Good
		if e.statusBad {
			style = theme.Bad
		}
		content += "\n\n" + style.Render(e.status)
	}
	return layout.Center(content, width, height)
}

func (e *EditorScreen) toggleFocus() tea.Cmd {
	e.focusDef = !e.focusDef
	if e.focusDef {
		e.term.Blur()
		return e.definition.Focus()
	}
	e.definition.Blur()
	return e.term.Focus()
}

func (e *EditorScreen) save() tea.Cmd {
	term := strings.TrimSpace(e.term.Value())
	definition := strings.TrimSpace(e.definition.Value())
	if term == "" || definition == "" {
		e.status = "Both term and definition are required."
		e.statusBad = true
		return nil
	}

	return func() tea.Msg {
		_, err := e.db.AddCard(context.Background(), e.deckName, term, definition, e.clk.Today())
		if err == nil {
			e.log.Info("card added", zap.String("deck", e.deckName), zap.String("term", term))
		}
		return cardSavedMsg{Term: term, Err: err}
	}
}
