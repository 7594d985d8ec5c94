// Package deck defines the flashcard domain model and its JSON
// serialization. A deck is a named set of term/definition cards, each
// owning exactly one scheduling record.
package deck

import "github.com/jkowalczyk/retain/internal/sm2"

// Card is a single flashcard. ID is the storage identity (0 for cards not
// yet persisted, e.g. freshly imported ones).
type Card struct {
	ID         int64
	Term       string
	Definition string
	Review     sm2.ReviewRecord
}

// Deck is a named collection of cards.
type Deck struct {
	Name  string
	Cards []Card
}

// DueCards returns the cards due for review on the given day, in slice order.
func (d Deck) DueCards(today int) []Card {
	var due []Card
	for _, c := range d.Cards {
		if c.Review.IsDue(today) {
			due = append(due, c)
		}
	}
	return due
}
