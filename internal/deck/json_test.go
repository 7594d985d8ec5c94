package deck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkowalczyk/retain/internal/sm2"
)

func sampleDeck() Deck {
	return Deck{
		Name: "Polish 101",
		Cards: []Card{
			{
				ID:         1,
				Term:       "hello",
				Definition: "cześć",
				Review:     sm2.ReviewRecord{Easiness: 2.36, IntervalDays: 6, Repetitions: 2, NextReviewDay: 9},
			},
			{
				ID:         2,
				Term:       "thank you",
				Definition: "dziękuję",
				Review:     sm2.NewRecord(3),
			},
		},
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	orig := sampleDeck()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, orig))

	got, err := Import(&buf, 99)
	require.NoError(t, err)

	assert.Equal(t, orig.Name, got.Name)
	require.Len(t, got.Cards, len(orig.Cards))
	for i, c := range orig.Cards {
		assert.Equal(t, c.Term, got.Cards[i].Term)
		assert.Equal(t, c.Definition, got.Cards[i].Definition)
		// Scheduling state must survive byte-for-byte.
		assert.Equal(t, c.Review, got.Cards[i].Review)
	}
}

func TestImport_DefaultsMissingReviewState(t *testing.T) {
	doc := `{"name": "Basics", "cards": [{"term": "dog", "definition": "pies"}]}`

	d, err := Import(strings.NewReader(doc), 4)
	require.NoError(t, err)

	require.Len(t, d.Cards, 1)
	assert.Equal(t, sm2.NewRecord(4), d.Cards[0].Review)
}

func TestImport_RejectsMissingName(t *testing.T) {
	_, err := Import(strings.NewReader(`{"cards": []}`), 0)
	assert.ErrorIs(t, err, ErrEmptyDeckName)
}

func TestImport_RejectsMalformedJSON(t *testing.T) {
	_, err := Import(strings.NewReader(`{"name": "x", "cards": [`), 0)
	assert.Error(t, err)
}

func TestDueCards_FiltersByDay(t *testing.T) {
	d := Deck{
		Name: "d",
		Cards: []Card{
			{ID: 1, Term: "a", Review: sm2.ReviewRecord{Easiness: 2.5, NextReviewDay: 2}},
			{ID: 2, Term: "b", Review: sm2.ReviewRecord{Easiness: 2.5, NextReviewDay: 5}},
			{ID: 3, Term: "c", Review: sm2.ReviewRecord{Easiness: 2.5, NextReviewDay: 3}},
		},
	}

	due := d.DueCards(3)
	require.Len(t, due, 2)
	assert.Equal(t, int64(1), due[0].ID)
	assert.Equal(t, int64(3), due[1].ID)
}
