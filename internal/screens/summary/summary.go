package summary

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/jkowalczyk/retain/internal/router"
	"github.com/jkowalczyk/retain/internal/screen"
	"github.com/jkowalczyk/retain/internal/session"
	"github.com/jkowalczyk/retain/internal/ui/layout"
	"github.com/jkowalczyk/retain/internal/ui/theme"
)

// SummaryScreen shows the results of a finished session.
type SummaryScreen struct {
	deckName string
	sum      session.Summary
	persist  error // non-nil if some records could not be saved
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for the given session results.
func New(deckName string, sum session.Summary, persist error) *SummaryScreen {
	return &SummaryScreen{deckName: deckName, sum: sum, persist: persist}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Summary" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Back to decks"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return screen.RefreshMsg{} },
		)
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.sum.Total == 0 {
		msg := theme.Title.Render("Nothing due in "+s.deckName) + "\n\n" +
			theme.Hint.Render("Advance the day to bring reviews forward.")
		return layout.Center(msg, width, height)
	}

	lines := theme.Title.Render("Session complete") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Deck        %s", s.deckName)) + "\n" +
		theme.Body.Render(fmt.Sprintf("Cards       %d", s.sum.Total)) + "\n" +
		theme.Body.Render(fmt.Sprintf("Mastered    %d", s.sum.Mastered)) + "\n" +
		theme.Body.Render(fmt.Sprintf("Ratings     %d", s.sum.Ratings)) + "\n" +
		theme.Body.Render(fmt.Sprintf("Retries     %d", s.sum.Failed))

	if s.persist != nil {
		lines += "\n\n" + theme.Bad.Render("Some records were not saved: "+s.persist.Error())
	}

	return layout.Center(theme.Card.Render(lines), width, height)
}
