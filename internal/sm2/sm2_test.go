package sm2

import (
	"errors"
	"math"
	"testing"
)

func TestNewRecord_DueImmediately(t *testing.T) {
	r := NewRecord(7)
	if r.Easiness != DefaultEasiness {
		t.Errorf("Easiness = %v, want %v", r.Easiness, DefaultEasiness)
	}
	if r.IntervalDays != 0 {
		t.Errorf("IntervalDays = %d, want 0", r.IntervalDays)
	}
	if r.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", r.Repetitions)
	}
	if !r.IsDue(7) {
		t.Error("new record should be due on its creation day")
	}
	if r.IsDue(6) {
		t.Error("new record should not be due before its creation day")
	}
}

func TestSchedule_FirstPass(t *testing.T) {
	next, err := Schedule(NewRecord(0), 4, 0)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if next.Repetitions != 1 {
		t.Errorf("Repetitions = %d, want 1", next.Repetitions)
	}
	if next.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", next.IntervalDays)
	}
	if next.NextReviewDay != 1 {
		t.Errorf("NextReviewDay = %d, want 1", next.NextReviewDay)
	}
}

func TestSchedule_SecondPass(t *testing.T) {
	r := ReviewRecord{Easiness: 2.5, IntervalDays: 1, Repetitions: 1, NextReviewDay: 1}
	next, err := Schedule(r, 4, 1)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if next.Repetitions != 2 {
		t.Errorf("Repetitions = %d, want 2", next.Repetitions)
	}
	if next.IntervalDays != 6 {
		t.Errorf("IntervalDays = %d, want 6", next.IntervalDays)
	}
	if next.NextReviewDay != 7 {
		t.Errorf("NextReviewDay = %d, want 7", next.NextReviewDay)
	}
}

func TestSchedule_ThirdPass_ScalesByNewEasiness(t *testing.T) {
	r := ReviewRecord{Easiness: 2.5, IntervalDays: 6, Repetitions: 2, NextReviewDay: 7}
	next, err := Schedule(r, 5, 7)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	// q=5 raises easiness to 2.6; round(6 * 2.6) = 16.
	if math.Abs(next.Easiness-2.6) > 1e-9 {
		t.Errorf("Easiness = %v, want 2.6", next.Easiness)
	}
	if next.IntervalDays != 16 {
		t.Errorf("IntervalDays = %d, want 16", next.IntervalDays)
	}
	if next.NextReviewDay != 23 {
		t.Errorf("NextReviewDay = %d, want 23", next.NextReviewDay)
	}
}

func TestSchedule_FailResetsProgress(t *testing.T) {
	r := ReviewRecord{Easiness: 2.5, IntervalDays: 30, Repetitions: 5, NextReviewDay: 40}
	for q := 0; q < PassThreshold; q++ {
		next, err := Schedule(r, q, 40)
		if err != nil {
			t.Fatalf("Schedule(q=%d): %v", q, err)
		}
		if next.Repetitions != 0 {
			t.Errorf("q=%d: Repetitions = %d, want 0", q, next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("q=%d: IntervalDays = %d, want 1", q, next.IntervalDays)
		}
		if next.NextReviewDay != 41 {
			t.Errorf("q=%d: NextReviewDay = %d, want 41", q, next.NextReviewDay)
		}
	}
}

func TestSchedule_FailStillUpdatesEasiness(t *testing.T) {
	r := ReviewRecord{Easiness: 2.5, IntervalDays: 10, Repetitions: 3, NextReviewDay: 12}
	next, err := Schedule(r, 2, 12)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if next.Easiness >= 2.5 {
		t.Errorf("Easiness = %v, want < 2.5 after a failing rating", next.Easiness)
	}
}

func TestSchedule_EasinessFloor(t *testing.T) {
	r := ReviewRecord{Easiness: MinEasiness, IntervalDays: 1, Repetitions: 1, NextReviewDay: 1}
	for q := 0; q <= MaxQuality; q++ {
		next, err := Schedule(r, q, 1)
		if err != nil {
			t.Fatalf("Schedule(q=%d): %v", q, err)
		}
		if next.Easiness < MinEasiness {
			t.Errorf("q=%d: Easiness = %v, below floor %v", q, next.Easiness, MinEasiness)
		}
	}
}

func TestSchedule_IntervalFloor(t *testing.T) {
	// Zero prior interval at high repetitions would otherwise round to 0.
	r := ReviewRecord{Easiness: 1.3, IntervalDays: 0, Repetitions: 5, NextReviewDay: 0}
	for q := 0; q <= MaxQuality; q++ {
		next, err := Schedule(r, q, 0)
		if err != nil {
			t.Fatalf("Schedule(q=%d): %v", q, err)
		}
		if next.IntervalDays < 1 {
			t.Errorf("q=%d: IntervalDays = %d, want >= 1", q, next.IntervalDays)
		}
		if next.NextReviewDay <= 0 {
			t.Errorf("q=%d: NextReviewDay = %d, want > today", q, next.NextReviewDay)
		}
	}
}

func TestSchedule_RejectsOutOfRangeRating(t *testing.T) {
	for _, q := range []int{-1, 6, 100} {
		_, err := Schedule(NewRecord(0), q, 0)
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Schedule(q=%d) error = %v, want ErrInvalidRating", q, err)
		}
	}
}

func TestSchedule_Pure(t *testing.T) {
	r := ReviewRecord{Easiness: 2.1, IntervalDays: 6, Repetitions: 2, NextReviewDay: 9}
	a, err := Schedule(r, 4, 9)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	b, err := Schedule(r, 4, 9)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if a != b {
		t.Errorf("repeated calls disagree: %+v vs %+v", a, b)
	}
	if r.IntervalDays != 6 || r.Repetitions != 2 {
		t.Error("input record was mutated")
	}
}
