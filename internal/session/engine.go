// Package session drives one learning session over a set of due cards.
//
// The engine is a small state machine (Idle -> Active -> Complete) built on
// two explicit queues: a primary queue holding the first-pass order and a
// recycle queue for cards that failed their rating. A failing card goes to
// the back of the recycle queue and stays in play; only the record computed
// by a card's final rating is ever persisted, so one session contributes
// exactly one scheduling update per card.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jkowalczyk/retain/internal/deck"
	"github.com/jkowalczyk/retain/internal/sm2"
)

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateActive
	StateComplete
)

// String returns the state name for logs and errors.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrNoActiveSession is returned when rating or aborting without an
	// active session.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionActive is returned when starting a session while one is
	// already running.
	ErrSessionActive = errors.New("a session is already active")

	// ErrCardNotQueued is returned when the rated card is not the one
	// currently presented. The engine serves exactly one card at a time.
	ErrCardNotQueued = errors.New("card is not the current card of this session")
)

// PersistError reports a failed review-record save. The engine keeps the
// computed record in memory, so the save can be retried via RetryPersist
// without recomputation; session state is otherwise unaffected.
type PersistError struct {
	CardID int64
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist review record for card %d: %v", e.CardID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Saver persists review records. Saves are idempotent upserts, so retrying
// a failed save is always safe.
type Saver interface {
	SaveReviewRecord(ctx context.Context, cardID int64, rec sm2.ReviewRecord) error
}

// Outcome describes the effect of a single rating.
type Outcome struct {
	CardID   int64
	Quality  int
	Passed   bool             // quality reached the pass threshold
	Recycled bool             // card went to the back of the recycle queue
	Record   sm2.ReviewRecord // the newly computed record
	Complete bool             // the session finished with this rating
}

// Summary captures session results for display.
type Summary struct {
	ID       string
	Total    int // distinct cards the session started with
	Mastered int // cards that passed
	Ratings  int // total ratings given, including failed attempts
	Failed   int // failing ratings
}

// Engine orchestrates a single session. It is not safe for concurrent use;
// one session runs at a time and the UI is its only caller.
type Engine struct {
	id    string
	state State
	saver Saver

	cards   map[int64]deck.Card
	records map[int64]sm2.ReviewRecord // latest record per card

	primary  []int64
	recycle  []int64
	mastered map[int64]bool

	// pending holds records computed by failing ratings: persisted only if
	// the session is aborted before the card passes.
	pending map[int64]sm2.ReviewRecord

	// unsaved holds records whose save failed; retried by RetryPersist.
	unsaved map[int64]sm2.ReviewRecord

	total   int
	ratings int
	failed  int
}

// NewEngine creates an idle engine that persists through saver.
func NewEngine(saver Saver) *Engine {
	return &Engine{state: StateIdle, saver: saver}
}

// Start begins a session over the given due cards, preserving their order.
// An empty due set completes immediately with no cards presented.
func (e *Engine) Start(cards []deck.Card) error {
	if e.state == StateActive {
		return ErrSessionActive
	}

	e.id = uuid.NewString()
	e.cards = make(map[int64]deck.Card, len(cards))
	e.records = make(map[int64]sm2.ReviewRecord, len(cards))
	e.primary = make([]int64, 0, len(cards))
	e.recycle = nil
	e.mastered = make(map[int64]bool)
	e.pending = make(map[int64]sm2.ReviewRecord)
	e.unsaved = make(map[int64]sm2.ReviewRecord)
	e.total = len(cards)
	e.ratings = 0
	e.failed = 0

	for _, c := range cards {
		e.cards[c.ID] = c
		e.records[c.ID] = c.Review
		e.primary = append(e.primary, c.ID)
	}

	if len(e.primary) == 0 {
		e.state = StateComplete
	} else {
		e.state = StateActive
	}
	return nil
}

// ID returns the session identifier, empty before the first Start.
func (e *Engine) ID() string { return e.id }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Current returns the card to present next: the head of the primary queue,
// or of the recycle queue once the primary is drained. ok is false when the
// session is not active.
func (e *Engine) Current() (deck.Card, bool) {
	if e.state != StateActive {
		return deck.Card{}, false
	}
	if len(e.primary) > 0 {
		return e.cards[e.primary[0]], true
	}
	if len(e.recycle) > 0 {
		return e.cards[e.recycle[0]], true
	}
	return deck.Card{}, false
}

// Rate applies a quality rating to the currently presented card.
//
// A failing rating (below the pass threshold) recycles the card to the back
// of the recycle queue without persisting, so at least one other card (if
// any remains) is shown before it repeats. A passing rating masters the
// card and persists its newly computed record. Validation failures leave
// all session state untouched. A *PersistError means the rating took
// effect but the save must be retried.
func (e *Engine) Rate(ctx context.Context, cardID int64, quality, today int) (Outcome, error) {
	if e.state != StateActive {
		return Outcome{}, ErrNoActiveSession
	}
	current, ok := e.Current()
	if !ok || current.ID != cardID {
		return Outcome{}, fmt.Errorf("%w: card %d", ErrCardNotQueued, cardID)
	}

	next, err := sm2.Schedule(e.records[cardID], quality, today)
	if err != nil {
		return Outcome{}, err
	}

	e.pop()
	e.records[cardID] = next
	e.ratings++

	out := Outcome{
		CardID:  cardID,
		Quality: quality,
		Passed:  quality >= sm2.PassThreshold,
		Record:  next,
	}

	var saveErr error
	if out.Passed {
		e.mastered[cardID] = true
		delete(e.pending, cardID)
		if err := e.save(ctx, cardID, next); err != nil {
			saveErr = &PersistError{CardID: cardID, Err: err}
		}
	} else {
		e.failed++
		e.recycle = append(e.recycle, cardID)
		e.pending[cardID] = next
		out.Recycled = true
	}

	if len(e.primary) == 0 && len(e.recycle) == 0 {
		e.state = StateComplete
		out.Complete = true
	}
	return out, saveErr
}

// Abort terminates the session early. Records already computed for cards
// still in play are persisted as-is: an abort commits partial progress, it
// does not roll it back. Failed saves are retried once here and any that
// still fail are reported joined.
func (e *Engine) Abort(ctx context.Context) error {
	if e.state != StateActive {
		return ErrNoActiveSession
	}
	e.state = StateComplete

	var errs []error
	if err := e.RetryPersist(ctx); err != nil {
		errs = append(errs, err)
	}
	for cardID, rec := range e.pending {
		if err := e.save(ctx, cardID, rec); err != nil {
			errs = append(errs, &PersistError{CardID: cardID, Err: err})
		}
		delete(e.pending, cardID)
	}
	return errors.Join(errs...)
}

// RetryPersist re-saves records whose earlier save failed. Safe to call any
// number of times; records are never recomputed.
func (e *Engine) RetryPersist(ctx context.Context) error {
	var errs []error
	for cardID, rec := range e.unsaved {
		if err := e.saver.SaveReviewRecord(ctx, cardID, rec); err != nil {
			errs = append(errs, &PersistError{CardID: cardID, Err: err})
		} else {
			delete(e.unsaved, cardID)
		}
	}
	return errors.Join(errs...)
}

// Remaining returns the number of cards still in play.
func (e *Engine) Remaining() int {
	return len(e.primary) + len(e.recycle)
}

// MasteredCount returns the number of cards mastered so far.
func (e *Engine) MasteredCount() int { return len(e.mastered) }

// Summarize returns the session results so far.
func (e *Engine) Summarize() Summary {
	return Summary{
		ID:       e.id,
		Total:    e.total,
		Mastered: len(e.mastered),
		Ratings:  e.ratings,
		Failed:   e.failed,
	}
}

func (e *Engine) pop() {
	if len(e.primary) > 0 {
		e.primary = e.primary[1:]
		return
	}
	if len(e.recycle) > 0 {
		e.recycle = e.recycle[1:]
	}
}

func (e *Engine) save(ctx context.Context, cardID int64, rec sm2.ReviewRecord) error {
	err := e.saver.SaveReviewRecord(ctx, cardID, rec)
	if err != nil {
		e.unsaved[cardID] = rec
	}
	return err
}
