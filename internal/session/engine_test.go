package session

import (
	"context"
	"errors"
	"testing"

	"github.com/jkowalczyk/retain/internal/deck"
	"github.com/jkowalczyk/retain/internal/sm2"
)

// mockSaver records saves and can be made to fail per card.
type mockSaver struct {
	saved   map[int64][]sm2.ReviewRecord
	failFor map[int64]bool
}

func newMockSaver() *mockSaver {
	return &mockSaver{
		saved:   make(map[int64][]sm2.ReviewRecord),
		failFor: make(map[int64]bool),
	}
}

func (m *mockSaver) SaveReviewRecord(_ context.Context, cardID int64, rec sm2.ReviewRecord) error {
	if m.failFor[cardID] {
		return errors.New("write failed")
	}
	m.saved[cardID] = append(m.saved[cardID], rec)
	return nil
}

func dueCards(ids ...int64) []deck.Card {
	cards := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, deck.Card{ID: id, Term: "t", Definition: "d", Review: sm2.NewRecord(0)})
	}
	return cards
}

func mustRate(t *testing.T, e *Engine, cardID int64, quality int) Outcome {
	t.Helper()
	out, err := e.Rate(context.Background(), cardID, quality, 0)
	if err != nil {
		t.Fatalf("Rate(card=%d, q=%d): %v", cardID, quality, err)
	}
	return out
}

func TestStart_EmptyDueSetCompletesImmediately(t *testing.T) {
	e := NewEngine(newMockSaver())
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if e.State() != StateComplete {
		t.Errorf("State = %v, want complete", e.State())
	}
	if _, ok := e.Current(); ok {
		t.Error("Current() should report no card")
	}
}

func TestStart_WhileActiveFails(t *testing.T) {
	e := NewEngine(newMockSaver())
	if err := e.Start(dueCards(1)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := e.Start(dueCards(2)); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Start error = %v, want ErrSessionActive", err)
	}
}

func TestRate_SpecScenario_OnlyFinalAttemptsPersisted(t *testing.T) {
	// Cards [A, B, C]: A=1 (fail), B=4 (pass), C=1 (fail), then the recycle
	// queue [A, C] is drained with A=5, C=4. Only the final rating of each
	// card may reach storage.
	saver := newMockSaver()
	e := NewEngine(saver)
	if err := e.Start(dueCards(1, 2, 3)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	mustRate(t, e, 1, 1)
	mustRate(t, e, 2, 4)
	mustRate(t, e, 3, 1)

	// Primary drained; recycle queue preserves fail order A, C.
	if cur, _ := e.Current(); cur.ID != 1 {
		t.Fatalf("recycle head = card %d, want 1", cur.ID)
	}
	mustRate(t, e, 1, 5)
	if cur, _ := e.Current(); cur.ID != 3 {
		t.Fatalf("recycle head = card %d, want 3", cur.ID)
	}
	out := mustRate(t, e, 3, 4)

	if !out.Complete || e.State() != StateComplete {
		t.Error("session should be complete after draining both queues")
	}

	for _, id := range []int64{1, 2, 3} {
		if n := len(saver.saved[id]); n != 1 {
			t.Errorf("card %d persisted %d times, want exactly 1", id, n)
		}
	}
	// A's persisted record must come from the passing rating: reps reset by
	// the first fail, then one pass.
	if rec := saver.saved[1][0]; rec.Repetitions != 1 {
		t.Errorf("card 1 persisted Repetitions = %d, want 1", rec.Repetitions)
	}
}

func TestRate_FailRecyclesToBack(t *testing.T) {
	e := NewEngine(newMockSaver())
	if err := e.Start(dueCards(1, 2)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	out := mustRate(t, e, 1, 0)
	if !out.Recycled {
		t.Error("failing rating should recycle the card")
	}
	// Card 2 must be shown before card 1 repeats.
	if cur, _ := e.Current(); cur.ID != 2 {
		t.Errorf("Current = card %d, want 2", cur.ID)
	}
	mustRate(t, e, 2, 2)
	if cur, _ := e.Current(); cur.ID != 1 {
		t.Errorf("Current = card %d, want 1", cur.ID)
	}
}

func TestRate_SoleCardRepeatsImmediately(t *testing.T) {
	e := NewEngine(newMockSaver())
	if err := e.Start(dueCards(7)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	mustRate(t, e, 7, 1)
	cur, ok := e.Current()
	if !ok || cur.ID != 7 {
		t.Errorf("only card left should repeat, got %v ok=%v", cur.ID, ok)
	}
}

func TestRate_InvalidRatingLeavesStateUntouched(t *testing.T) {
	saver := newMockSaver()
	e := NewEngine(saver)
	if err := e.Start(dueCards(1)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, err := e.Rate(context.Background(), 1, 6, 0)
	if !errors.Is(err, sm2.ErrInvalidRating) {
		t.Fatalf("error = %v, want ErrInvalidRating", err)
	}
	if e.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1", e.Remaining())
	}
	if len(saver.saved) != 0 {
		t.Error("nothing should have been persisted")
	}
	if s := e.Summarize(); s.Ratings != 0 {
		t.Errorf("Ratings = %d, want 0", s.Ratings)
	}
}

func TestRate_WrongCardRejected(t *testing.T) {
	e := NewEngine(newMockSaver())
	if err := e.Start(dueCards(1, 2)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, err := e.Rate(context.Background(), 2, 4, 0)
	if !errors.Is(err, ErrCardNotQueued) {
		t.Errorf("error = %v, want ErrCardNotQueued", err)
	}
	_, err = e.Rate(context.Background(), 99, 4, 0)
	if !errors.Is(err, ErrCardNotQueued) {
		t.Errorf("error = %v, want ErrCardNotQueued", err)
	}
}

func TestRate_WithoutSessionRejected(t *testing.T) {
	e := NewEngine(newMockSaver())
	_, err := e.Rate(context.Background(), 1, 4, 0)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("error = %v, want ErrNoActiveSession", err)
	}
}

func TestRate_PersistFailureIsRetryable(t *testing.T) {
	saver := newMockSaver()
	saver.failFor[1] = true
	e := NewEngine(saver)
	if err := e.Start(dueCards(1)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	out, err := e.Rate(context.Background(), 1, 4, 0)
	var pe *PersistError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *PersistError", err)
	}
	// The rating itself took effect.
	if !out.Passed || !out.Complete {
		t.Error("rating should have completed the session despite the failed save")
	}
	if e.MasteredCount() != 1 {
		t.Errorf("MasteredCount = %d, want 1", e.MasteredCount())
	}

	// Retrying re-saves the already-computed record.
	saver.failFor[1] = false
	if err := e.RetryPersist(context.Background()); err != nil {
		t.Fatalf("RetryPersist: %v", err)
	}
	if n := len(saver.saved[1]); n != 1 {
		t.Fatalf("card 1 persisted %d times, want 1", n)
	}
	if rec := saver.saved[1][0]; rec != out.Record {
		t.Errorf("persisted record %+v differs from computed %+v", rec, out.Record)
	}
}

func TestAbort_PersistsLastComputedRecords(t *testing.T) {
	saver := newMockSaver()
	e := NewEngine(saver)
	if err := e.Start(dueCards(1, 2, 3)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	failOut := mustRate(t, e, 1, 1) // recycled, not yet persisted
	mustRate(t, e, 2, 4)            // mastered, persisted

	if err := e.Abort(context.Background()); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if e.State() != StateComplete {
		t.Errorf("State = %v, want complete", e.State())
	}

	// Card 1's failing record is committed as-is by the abort.
	if n := len(saver.saved[1]); n != 1 {
		t.Fatalf("card 1 persisted %d times, want 1", n)
	}
	if saver.saved[1][0] != failOut.Record {
		t.Error("abort should persist the last computed record unchanged")
	}
	// Card 3 was never rated: nothing to commit.
	if len(saver.saved[3]) != 0 {
		t.Error("unrated card must not be persisted")
	}
}

func TestSummarize_CountsAttempts(t *testing.T) {
	e := NewEngine(newMockSaver())
	if err := e.Start(dueCards(1, 2)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	mustRate(t, e, 1, 2)
	mustRate(t, e, 2, 5)
	mustRate(t, e, 1, 4)

	s := e.Summarize()
	if s.Total != 2 || s.Mastered != 2 || s.Ratings != 3 || s.Failed != 1 {
		t.Errorf("Summary = %+v, want Total 2, Mastered 2, Ratings 3, Failed 1", s)
	}
	if s.ID == "" {
		t.Error("session ID should be set")
	}
}
