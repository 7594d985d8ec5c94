package study

import (
	"github.com/jkowalczyk/retain/internal/deck"
	"github.com/jkowalczyk/retain/internal/session"
)

// sessionReadyMsg is sent when the due cards are loaded and the engine has
// started.
type sessionReadyMsg struct {
	Engine *session.Engine
	Due    []deck.Card
	Err    error
}

// ratedMsg carries the outcome of a rating.
type ratedMsg struct {
	Outcome session.Outcome
	Err     error
}

// abortedMsg is sent after an abort commit finishes.
type abortedMsg struct {
	Err error
}

// retriedMsg is sent after a persist retry.
type retriedMsg struct {
	Err error
}
