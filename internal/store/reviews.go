package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jkowalczyk/retain/internal/sm2"
)

const upsertReviewSQL = `
	INSERT INTO review_records (card_id, easiness_factor, interval_days, repetitions, next_review_day)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (card_id) DO UPDATE SET
		easiness_factor = excluded.easiness_factor,
		interval_days   = excluded.interval_days,
		repetitions     = excluded.repetitions,
		next_review_day = excluded.next_review_day`

// SaveReviewRecord upserts the scheduling state for a card. Saving the same
// record twice is a no-op, which lets the session engine retry failed saves.
func (db *DB) SaveReviewRecord(ctx context.Context, cardID int64, rec sm2.ReviewRecord) error {
	_, err := db.ExecContext(ctx, upsertReviewSQL,
		cardID, rec.Easiness, rec.IntervalDays, rec.Repetitions, rec.NextReviewDay)
	if err != nil {
		return fmt.Errorf("save review record for card %d: %w", cardID, err)
	}
	return nil
}

// ReviewRecord returns the scheduling state for a card.
func (db *DB) ReviewRecord(ctx context.Context, cardID int64) (sm2.ReviewRecord, error) {
	var rec sm2.ReviewRecord
	err := db.QueryRowContext(ctx, `
		SELECT easiness_factor, interval_days, repetitions, next_review_day
		FROM review_records WHERE card_id = ?`, cardID).
		Scan(&rec.Easiness, &rec.IntervalDays, &rec.Repetitions, &rec.NextReviewDay)
	if errors.Is(err, sql.ErrNoRows) {
		return sm2.ReviewRecord{}, fmt.Errorf("%w: %d", ErrCardNotFound, cardID)
	}
	if err != nil {
		return sm2.ReviewRecord{}, fmt.Errorf("load review record for card %d: %w", cardID, err)
	}
	return rec, nil
}
