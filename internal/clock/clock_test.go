package clock

import (
	"context"
	"errors"
	"testing"
)

// memStore is an in-memory clock store for tests.
type memStore struct {
	day     int
	saveErr error
}

func (m *memStore) CurrentDay(_ context.Context) (int, error) { return m.day, nil }

func (m *memStore) SetCurrentDay(_ context.Context, day int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.day = day
	return nil
}

func TestLoad_StartsAtZero(t *testing.T) {
	c, err := Load(context.Background(), &memStore{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Today() != 0 {
		t.Errorf("Today = %d, want 0", c.Today())
	}
}

func TestLoad_ResumesPersistedDay(t *testing.T) {
	c, err := Load(context.Background(), &memStore{day: 12})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Today() != 12 {
		t.Errorf("Today = %d, want 12", c.Today())
	}
}

func TestAdvance_Monotonic(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	c, err := Load(ctx, st)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for n := 1; n <= 5; n++ {
		day, err := c.Advance(ctx)
		if err != nil {
			t.Fatalf("Advance #%d: %v", n, err)
		}
		if day != n {
			t.Errorf("Advance #%d = %d, want %d", n, day, n)
		}
		if st.day != n {
			t.Errorf("persisted day = %d, want %d", st.day, n)
		}
	}
	if c.Today() != 5 {
		t.Errorf("Today = %d, want 5", c.Today())
	}
}

func TestAdvance_PersistFailureLeavesClockUnchanged(t *testing.T) {
	ctx := context.Background()
	st := &memStore{day: 3, saveErr: errors.New("disk full")}
	c, err := Load(ctx, st)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	day, err := c.Advance(ctx)
	if err == nil {
		t.Fatal("expected error from Advance")
	}
	if day != 3 || c.Today() != 3 {
		t.Errorf("clock advanced despite persist failure: got %d, want 3", c.Today())
	}
}
