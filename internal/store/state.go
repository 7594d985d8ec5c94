package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const currentDayKey = "current_day"

// CurrentDay returns the persisted simulated day, or 0 on first run.
// Implements clock.Store.
func (db *DB) CurrentDay(ctx context.Context) (int, error) {
	var value string
	err := db.QueryRowContext(ctx,
		"SELECT value FROM app_state WHERE key = ?", currentDayKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load current day: %w", err)
	}

	day, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse current day %q: %w", value, err)
	}
	return day, nil
}

// SetCurrentDay persists the simulated day. Implements clock.Store.
func (db *DB) SetCurrentDay(ctx context.Context, day int) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		currentDayKey, strconv.Itoa(day))
	if err != nil {
		return fmt.Errorf("save current day: %w", err)
	}
	return nil
}
