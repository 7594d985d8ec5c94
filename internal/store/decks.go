package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jkowalczyk/retain/internal/deck"
	"github.com/jkowalczyk/retain/internal/sm2"
)

var (
	// ErrDeckNotFound is returned when a named deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckExists is returned when creating a deck whose name is taken.
	ErrDeckExists = errors.New("deck already exists")

	// ErrCardNotFound is returned when a card id does not exist.
	ErrCardNotFound = errors.New("card not found")
)

// DeckInfo summarizes one deck for listings.
type DeckInfo struct {
	Name     string
	Cards    int
	Due      int
	NewCards int // cards never reviewed
}

// CreateDeck creates an empty deck.
func (db *DB) CreateDeck(ctx context.Context, name string) error {
	res, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO decks (name) VALUES (?)", name)
	if err != nil {
		return fmt.Errorf("create deck %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create deck %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrDeckExists, name)
	}
	return nil
}

// DeleteDeck removes a deck with all its cards and review records.
func (db *DB) DeleteDeck(ctx context.Context, name string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM decks WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete deck %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrDeckNotFound, name)
	}
	return nil
}

// DeckExists reports whether a deck with the given name exists.
func (db *DB) DeckExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM decks WHERE name = ?", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check deck %q: %w", name, err)
	}
	return true, nil
}

// ListDecks returns all decks with card and due counts, ordered by name.
func (db *DB) ListDecks(ctx context.Context, today int) ([]DeckInfo, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT d.name,
		       COUNT(c.id),
		       COALESCE(SUM(CASE WHEN r.next_review_day <= ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN r.repetitions = 0 AND r.interval_days = 0 THEN 1 ELSE 0 END), 0)
		FROM decks d
		LEFT JOIN cards c ON c.deck_name = d.name
		LEFT JOIN review_records r ON r.card_id = c.id
		GROUP BY d.name
		ORDER BY d.name`, today)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	var infos []DeckInfo
	for rows.Next() {
		var info DeckInfo
		if err := rows.Scan(&info.Name, &info.Cards, &info.Due, &info.NewCards); err != nil {
			return nil, fmt.Errorf("scan deck row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// AddCard adds a card to a deck and initializes its review record so the
// card is due on the given day. Duplicate terms within a deck are rejected.
func (db *DB) AddCard(ctx context.Context, deckName, term, definition string, today int) (int64, error) {
	exists, err := db.DeckExists(ctx, deckName)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %q", ErrDeckNotFound, deckName)
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO cards (deck_name, term, definition) VALUES (?, ?, ?)",
		deckName, term, definition)
	if err != nil {
		return 0, fmt.Errorf("add card %q to %q: %w", term, deckName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add card %q: %w", term, err)
	}

	if err := db.SaveReviewRecord(ctx, id, sm2.NewRecord(today)); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteCard removes a card; its review record goes with it via cascade.
func (db *DB) DeleteCard(ctx context.Context, cardID int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", cardID)
	if err != nil {
		return fmt.Errorf("delete card %d: %w", cardID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrCardNotFound, cardID)
	}
	return nil
}

// Cards returns all cards of a deck with their review records, in insertion
// order.
func (db *DB) Cards(ctx context.Context, deckName string) ([]deck.Card, error) {
	return db.queryCards(ctx, `
		SELECT c.id, c.term, c.definition,
		       r.easiness_factor, r.interval_days, r.repetitions, r.next_review_day
		FROM cards c
		JOIN review_records r ON r.card_id = c.id
		WHERE c.deck_name = ?
		ORDER BY c.id`, deckName)
}

// DueCards returns the cards of a deck due on the given day, most overdue
// first. This ordering becomes the session's primary queue.
func (db *DB) DueCards(ctx context.Context, deckName string, today int) ([]deck.Card, error) {
	return db.queryCards(ctx, `
		SELECT c.id, c.term, c.definition,
		       r.easiness_factor, r.interval_days, r.repetitions, r.next_review_day
		FROM cards c
		JOIN review_records r ON r.card_id = c.id
		WHERE c.deck_name = ? AND r.next_review_day <= ?
		ORDER BY r.next_review_day, c.id`, deckName, today)
}

func (db *DB) queryCards(ctx context.Context, query string, args ...any) ([]deck.Card, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []deck.Card
	for rows.Next() {
		var c deck.Card
		if err := rows.Scan(&c.ID, &c.Term, &c.Definition,
			&c.Review.Easiness, &c.Review.IntervalDays,
			&c.Review.Repetitions, &c.Review.NextReviewDay); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// LoadDeck loads a full deck for export.
func (db *DB) LoadDeck(ctx context.Context, name string) (deck.Deck, error) {
	exists, err := db.DeckExists(ctx, name)
	if err != nil {
		return deck.Deck{}, err
	}
	if !exists {
		return deck.Deck{}, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
	}

	cards, err := db.Cards(ctx, name)
	if err != nil {
		return deck.Deck{}, err
	}
	return deck.Deck{Name: name, Cards: cards}, nil
}

// ImportDeck stores an imported deck. The deck is created if missing; cards
// are matched by term and their scheduling state overwritten, so re-import
// reproduces the exported state exactly.
func (db *DB) ImportDeck(ctx context.Context, d deck.Deck) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import deck %q: %w", d.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO decks (name) VALUES (?)", d.Name); err != nil {
		return fmt.Errorf("import deck %q: %w", d.Name, err)
	}

	for _, c := range d.Cards {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cards (deck_name, term, definition) VALUES (?, ?, ?)
			ON CONFLICT (deck_name, term) DO UPDATE SET definition = excluded.definition`,
			d.Name, c.Term, c.Definition); err != nil {
			return fmt.Errorf("import card %q: %w", c.Term, err)
		}

		var id int64
		if err := tx.QueryRowContext(ctx,
			"SELECT id FROM cards WHERE deck_name = ? AND term = ?",
			d.Name, c.Term).Scan(&id); err != nil {
			return fmt.Errorf("resolve imported card %q: %w", c.Term, err)
		}

		if _, err := tx.ExecContext(ctx, upsertReviewSQL,
			id, c.Review.Easiness, c.Review.IntervalDays,
			c.Review.Repetitions, c.Review.NextReviewDay); err != nil {
			return fmt.Errorf("import review record for %q: %w", c.Term, err)
		}
	}

	return tx.Commit()
}
