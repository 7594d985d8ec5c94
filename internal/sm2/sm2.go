// Package sm2 implements the SuperMemo-2 spaced repetition algorithm.
//
// The scheduler is a pure function over a card's ReviewRecord: given a
// quality rating (0-5) and the current simulated day, it computes the new
// easiness factor, repetition count, interval and next review day. It has
// no side effects; persisting the result is the caller's job.
package sm2

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultEasiness is the easiness factor assigned to a card that has
	// never been reviewed.
	DefaultEasiness = 2.5

	// MinEasiness is the floor below which the easiness factor never falls.
	MinEasiness = 1.3

	// PassThreshold is the lowest quality rating that counts as a successful
	// recall. Ratings below it reset the repetition streak.
	PassThreshold = 3

	// MaxQuality is the highest valid quality rating.
	MaxQuality = 5
)

// ErrInvalidRating is returned when a quality rating falls outside [0, 5].
var ErrInvalidRating = errors.New("quality rating must be between 0 and 5")

// ReviewRecord holds the scheduling state for a single card. Days are
// integer indices relative to the simulated clock's epoch (day 0).
type ReviewRecord struct {
	Easiness      float64 `json:"easiness_factor"`
	IntervalDays  int     `json:"interval_days"`
	Repetitions   int     `json:"repetitions"`
	NextReviewDay int     `json:"next_review_day"`
}

// NewRecord returns the default record for a freshly added card: it is due
// immediately on the given day.
func NewRecord(today int) ReviewRecord {
	return ReviewRecord{
		Easiness:      DefaultEasiness,
		IntervalDays:  0,
		Repetitions:   0,
		NextReviewDay: today,
	}
}

// IsDue reports whether the card should be reviewed on the given day.
func (r ReviewRecord) IsDue(today int) bool {
	return r.NextReviewDay <= today
}

// ValidRating reports whether q is a legal quality rating.
func ValidRating(q int) bool {
	return q >= 0 && q <= MaxQuality
}

// Schedule applies one SM-2 update to a record and returns the successor.
//
// The easiness factor is updated from the raw quality signal regardless of
// pass or fail, then clamped to MinEasiness. A passing rating (q >= 3)
// advances the repetition ladder: 1 day, then 6 days, then the previous
// interval scaled by the new easiness factor. A failing rating resets
// repetitions and makes the card due the next simulated day, so it can be
// re-studied near-term. The interval never drops below 1 day.
func Schedule(r ReviewRecord, quality, today int) (ReviewRecord, error) {
	if !ValidRating(quality) {
		return ReviewRecord{}, fmt.Errorf("%w: got %d", ErrInvalidRating, quality)
	}

	q := float64(quality)
	ef := r.Easiness + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEasiness {
		ef = MinEasiness
	}

	next := ReviewRecord{Easiness: ef}

	if quality < PassThreshold {
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = r.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(r.IntervalDays) * ef))
		}
	}

	if next.IntervalDays < 1 {
		next.IntervalDays = 1
	}
	next.NextReviewDay = today + next.IntervalDays

	return next, nil
}
