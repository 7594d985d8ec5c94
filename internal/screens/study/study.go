package study

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/jkowalczyk/retain/internal/clock"
	"github.com/jkowalczyk/retain/internal/router"
	"github.com/jkowalczyk/retain/internal/screen"
	"github.com/jkowalczyk/retain/internal/screens/summary"
	"github.com/jkowalczyk/retain/internal/session"
	"github.com/jkowalczyk/retain/internal/store"
	"github.com/jkowalczyk/retain/internal/ui/layout"
)

// StudyScreen runs one review session over a deck's due cards.
type StudyScreen struct {
	db       *store.DB
	clk      *clock.Simulated
	log      *zap.Logger
	deckName string

	engine      *session.Engine
	revealed    bool
	confirmQuit bool
	lastPassed  *bool // feedback for the previous rating
	errMsg      string
	persistErr  bool // a save failed and can be retried
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a study screen for the given deck.
func New(db *store.DB, clk *clock.Simulated, log *zap.Logger, deckName string) *StudyScreen {
	return &StudyScreen{db: db, clk: clk, log: log, deckName: deckName}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *StudyScreen) Title() string {
	return "Study · " + s.deckName
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.persistErr:
		return []layout.KeyHint{
			{Key: "P", Description: "Retry save"},
			{Key: "Esc", Description: "Quit"},
		}
	case !s.revealed:
		return []layout.KeyHint{
			{Key: "Space", Description: "Show answer"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "0-5", Description: "Rate recall"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)
	case ratedMsg:
		return s.handleRated(msg)
	case abortedMsg:
		return s.finish(msg.Err)
	case retriedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.persistErr = false
		s.errMsg = ""
		if s.engine.State() == session.StateComplete {
			return s.finish(nil)
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StudyScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.engine = msg.Engine
	s.log.Info("session started",
		zap.String("session", s.engine.ID()),
		zap.String("deck", s.deckName),
		zap.Int("due", len(msg.Due)),
	)
	if s.engine.State() == session.StateComplete {
		// Nothing due: go straight to the (empty) summary.
		return s.finish(nil)
	}
	return s, nil
}

func (s *StudyScreen) handleRated(msg ratedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var pe *session.PersistError
		if errors.As(msg.Err, &pe) {
			// The rating took effect; only the save needs retrying.
			s.persistErr = true
			s.errMsg = msg.Err.Error()
			s.log.Warn("review record save failed", zap.Error(msg.Err))
			return s, nil
		}
		if errors.Is(msg.Err, session.ErrCardNotQueued) {
			// Stale keypress raced with an earlier rating; ignore it.
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	out := msg.Outcome
	passed := out.Passed
	s.lastPassed = &passed
	s.revealed = false
	s.errMsg = ""
	s.log.Debug("card rated",
		zap.Int64("card", out.CardID),
		zap.Int("quality", out.Quality),
		zap.Bool("passed", out.Passed),
		zap.Bool("recycled", out.Recycled),
	)

	if out.Complete {
		return s.finish(nil)
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y":
			return s, s.abort()
		case "n", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.persistErr {
		switch key {
		case "p":
			return s, s.retryPersist()
		case "esc":
			// Give up on the save; it was logged and the session state is
			// otherwise consistent.
			return s.finish(nil)
		}
		return s, nil
	}

	if s.engine == nil || s.engine.State() != session.StateActive {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case " ", "space", "enter":
		s.revealed = true
		return s, nil
	case "0", "1", "2", "3", "4", "5":
		if !s.revealed {
			return s, nil
		}
		s.revealed = false
		quality := int(key[0] - '0')
		return s, s.rate(quality)
	}
	return s, nil
}

// finish replaces this screen with the session summary and asks the home
// screen to refresh its due counts.
func (s *StudyScreen) finish(err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.log.Warn("session ended with persistence errors", zap.Error(err))
	}
	sum := s.engine.Summarize()
	s.log.Info("session finished",
		zap.String("session", sum.ID),
		zap.Int("mastered", sum.Mastered),
		zap.Int("ratings", sum.Ratings),
	)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.deckName, sum, err)}
	}
}

func (s *StudyScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		due, err := s.db.DueCards(context.Background(), s.deckName, s.clk.Today())
		if err != nil {
			return sessionReadyMsg{Err: err}
		}
		engine := session.NewEngine(s.db)
		if err := engine.Start(due); err != nil {
			return sessionReadyMsg{Err: err}
		}
		return sessionReadyMsg{Engine: engine, Due: due}
	}
}

func (s *StudyScreen) rate(quality int) tea.Cmd {
	card, ok := s.engine.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		out, err := s.engine.Rate(context.Background(), card.ID, quality, s.clk.Today())
		return ratedMsg{Outcome: out, Err: err}
	}
}

func (s *StudyScreen) abort() tea.Cmd {
	return func() tea.Msg {
		return abortedMsg{Err: s.engine.Abort(context.Background())}
	}
}

func (s *StudyScreen) retryPersist() tea.Cmd {
	return func() tea.Msg {
		return retriedMsg{Err: s.engine.RetryPersist(context.Background())}
	}
}
