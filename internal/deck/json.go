package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jkowalczyk/retain/internal/sm2"
)

// ErrEmptyDeckName is returned when an imported document has no deck name.
var ErrEmptyDeckName = errors.New("deck name is empty")

// deckJSON is the wire format for a deck. Scheduling fields are inlined
// into each card so the export is self-contained and round-trips losslessly.
type deckJSON struct {
	Name  string     `json:"name"`
	Cards []cardJSON `json:"cards"`
}

type cardJSON struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	sm2.ReviewRecord
}

// Export writes the deck as indented JSON, including the full scheduling
// state of every card.
func Export(w io.Writer, d Deck) error {
	doc := deckJSON{Name: d.Name, Cards: make([]cardJSON, 0, len(d.Cards))}
	for _, c := range d.Cards {
		doc.Cards = append(doc.Cards, cardJSON{
			Term:         c.Term,
			Definition:   c.Definition,
			ReviewRecord: c.Review,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode deck %q: %w", d.Name, err)
	}
	return nil
}

// Import reads a deck from JSON. Cards that carry no scheduling state (an
// easiness factor of zero is impossible for a reviewed card) receive the
// default record, due on the given day.
func Import(r io.Reader, today int) (Deck, error) {
	var doc deckJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Deck{}, fmt.Errorf("decode deck: %w", err)
	}
	if doc.Name == "" {
		return Deck{}, ErrEmptyDeckName
	}

	d := Deck{Name: doc.Name, Cards: make([]Card, 0, len(doc.Cards))}
	for _, c := range doc.Cards {
		rec := c.ReviewRecord
		if rec.Easiness == 0 {
			rec = sm2.NewRecord(today)
		}
		d.Cards = append(d.Cards, Card{
			Term:       c.Term,
			Definition: c.Definition,
			Review:     rec,
		})
	}
	return d, nil
}

// ExportFile exports the deck to the file at path, creating or truncating it.
func ExportFile(path string, d Deck) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Export(f, d); err != nil {
		return err
	}
	return f.Close()
}

// ImportFile imports a deck from the file at path.
func ImportFile(path string, today int) (Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return Deck{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Import(f, today)
}
