package playqueue

import (
	"testing"

	"github.com/sakina-app/core/internal/quran"
)

func verses(n int) []quran.Verse {
	out := make([]quran.Verse, n)
	for i := range out {
		out[i] = quran.Verse{
			ID:      quran.VerseID{Surah: 1, Verse: i + 1},
			Ordinal: i + 1,
		}
	}
	return out
}

func TestNew(t *testing.T) {
	q := New()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if _, ok := q.Current(); ok {
		t.Error("Current() should report no verse for empty queue")
	}
}

func TestQueue_Load(t *testing.T) {
	q := New()

	if err := q.Load(verses(3), 1); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	v, ok := q.Current()
	if !ok || v.ID.Verse != 2 {
		t.Errorf("Current() = %v, %v, want verse 1:2", v, ok)
	}
}

func TestQueue_Load_InvalidStartIndex(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		startIndex int
	}{
		{name: "negative", count: 3, startIndex: -1},
		{name: "equal to length", count: 3, startIndex: 3},
		{name: "past length", count: 3, startIndex: 10},
		{name: "empty list", count: 0, startIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New()
			if err := q.Load(verses(tt.count), tt.startIndex); err == nil {
				t.Error("Load() expected error")
			}
			// Queue unchanged on error
			if q.Len() != 0 || q.CurrentIndex() != -1 {
				t.Errorf("queue mutated on failed load: len=%d index=%d", q.Len(), q.CurrentIndex())
			}
		})
	}
}

func TestQueue_Load_ReplacesContents(t *testing.T) {
	q := New()
	if err := q.Load(verses(5), 4); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if err := q.Load(verses(2), 0); err != nil {
		t.Fatalf("second Load() error: %v", err)
	}

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_AdvanceRetreat(t *testing.T) {
	q := New()
	if err := q.Load(verses(3), 0); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !q.Advance() {
		t.Error("Advance() from 0 should succeed")
	}
	if !q.Advance() {
		t.Error("Advance() from 1 should succeed")
	}
	if q.Advance() {
		t.Error("Advance() at last entry should fail")
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2 (boundary does not wrap)", q.CurrentIndex())
	}

	if !q.Retreat() {
		t.Error("Retreat() from 2 should succeed")
	}
	if !q.Retreat() {
		t.Error("Retreat() from 1 should succeed")
	}
	if q.Retreat() {
		t.Error("Retreat() at first entry should fail")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_AdvanceEmpty(t *testing.T) {
	q := New()

	if q.Advance() {
		t.Error("Advance() on empty queue should fail")
	}
	if q.Retreat() {
		t.Error("Retreat() on empty queue should fail")
	}
}

func TestQueue_IndexStaysInBounds(t *testing.T) {
	q := New()
	if err := q.Load(verses(4), 2); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for range 10 {
		q.Advance()
		if q.CurrentIndex() < 0 || q.CurrentIndex() >= q.Len() {
			t.Fatalf("index %d out of bounds after Advance()", q.CurrentIndex())
		}
	}
	for range 10 {
		q.Retreat()
		if q.CurrentIndex() < 0 || q.CurrentIndex() >= q.Len() {
			t.Fatalf("index %d out of bounds after Retreat()", q.CurrentIndex())
		}
	}
}

func TestQueue_VersesReturnsCopy(t *testing.T) {
	q := New()
	if err := q.Load(verses(2), 0); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got := q.Verses()
	got[0].ID.Verse = 99

	v, _ := q.Current()
	if v.ID.Verse == 99 {
		t.Error("Verses() should return a copy, not the backing slice")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := New()
	if err := q.Load(verses(3), 1); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	q.Clear()

	if !q.IsEmpty() {
		t.Error("IsEmpty() should be true after Clear()")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}
