package study

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/jkowalczyk/retain/internal/ui/components"
	"github.com/jkowalczyk/retain/internal/ui/layout"
	"github.com/jkowalczyk/retain/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" && !s.persistErr {
		return layout.Center(theme.Bad.Render(s.errMsg), width, height)
	}
	if s.engine == nil {
		return layout.Center(theme.Hint.Render("Loading session..."), width, height)
	}
	if s.confirmQuit {
		return s.renderQuitConfirm(width, height)
	}
	if s.persistErr {
		return s.renderPersistError(width, height)
	}
	return s.renderCard(width, height)
}

func (s *StudyScreen) renderCard(width, height int) string {
	card, ok := s.engine.Current()
	if !ok {
		return layout.Center(theme.Hint.Render("No card to show."), width, height)
	}

	sum := s.engine.Summarize()
	total := sum.Total
	done := sum.Mastered
	progress := components.NewProgressBar(
		fmt.Sprintf("%d/%d mastered", done, total),
		safeRatio(done, total),
		30,
	)

	var feedback string
	if s.lastPassed != nil {
		if *s.lastPassed {
			feedback = theme.Good.Render("✓ mastered")
		} else {
			feedback = theme.Bad.Render("✗ recycled — it will come back")
		}
	}

	term := theme.Title.Render(card.Term)
	body := term
	if s.revealed {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Render(card.Definition)
		body += "\n\n" + theme.Hint.Render("0 blackout · 3 hard · 5 easy")
	} else {
		body += "\n\n" + theme.Hint.Render("press space to reveal")
	}

	face := theme.Card.Width(min(width-8, 60)).Align(lipgloss.Center).Render(body)

	content := progress.View() + "\n\n" + face
	if feedback != "" {
		content += "\n\n" + feedback
	}
	return layout.Center(content, width, height)
}

func (s *StudyScreen) renderQuitConfirm(width, height int) string {
	remaining := s.engine.Remaining()
	msg := theme.Title.Render("End this session?") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("%d card(s) still in play.", remaining)) + "\n" +
		theme.Hint.Render("Progress on rated cards is kept.")
	return layout.Center(theme.Card.Render(msg), width, height)
}

func (s *StudyScreen) renderPersistError(width, height int) string {
	msg := theme.Bad.Render("Saving the review failed") + "\n\n" +
		theme.Body.Render(s.errMsg) + "\n\n" +
		theme.Hint.Render("P to retry · Esc to give up")
	return layout.Center(theme.Card.Render(msg), width, height)
}

func safeRatio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
