// Package playqueue holds the ordered verse queue a recitation session
// plays through. The queue owns no audio resources, only identifiers and a
// cursor.
package playqueue

import (
	"fmt"

	"github.com/sakina-app/core/internal/quran"
)

// Queue is an ordered list of verses with a current-position cursor.
// The cursor is -1 when the queue is empty and always within [0, Len())
// otherwise.
type Queue struct {
	verses       []quran.Verse
	currentIndex int
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{currentIndex: -1}
}

// Load replaces the queue contents and positions the cursor at startIndex.
// Returns an error if verses is empty or startIndex is out of bounds; the
// queue is left unchanged on error.
func (q *Queue) Load(verses []quran.Verse, startIndex int) error {
	if len(verses) == 0 {
		return fmt.Errorf("load queue: empty verse list")
	}
	if startIndex < 0 || startIndex >= len(verses) {
		return fmt.Errorf("load queue: start index %d out of bounds [0,%d)", startIndex, len(verses))
	}
	q.verses = make([]quran.Verse, len(verses))
	copy(q.verses, verses)
	q.currentIndex = startIndex
	return nil
}

// Current returns the verse at the cursor.
// ok is false when the queue is empty.
func (q *Queue) Current() (quran.Verse, bool) {
	if q.currentIndex < 0 || q.currentIndex >= len(q.verses) {
		return quran.Verse{}, false
	}
	return q.verses[q.currentIndex], true
}

// CurrentIndex returns the cursor position (-1 if empty).
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// Advance moves the cursor forward by one.
// Returns false without moving when the cursor is already at the last entry
// or the queue is empty.
func (q *Queue) Advance() bool {
	if !q.HasNext() {
		return false
	}
	q.currentIndex++
	return true
}

// Retreat moves the cursor back by one.
// Returns false without moving when the cursor is already at the first entry
// or the queue is empty.
func (q *Queue) Retreat() bool {
	if !q.HasPrevious() {
		return false
	}
	q.currentIndex--
	return true
}

// HasNext reports whether a verse follows the cursor.
func (q *Queue) HasNext() bool {
	return q.currentIndex >= 0 && q.currentIndex < len(q.verses)-1
}

// HasPrevious reports whether a verse precedes the cursor.
func (q *Queue) HasPrevious() bool {
	return q.currentIndex > 0
}

// Verses returns a copy of the queued verses.
func (q *Queue) Verses() []quran.Verse {
	out := make([]quran.Verse, len(q.verses))
	copy(out, q.verses)
	return out
}

// Len returns the number of queued verses.
func (q *Queue) Len() int {
	return len(q.verses)
}

// IsEmpty reports whether the queue has no verses.
func (q *Queue) IsEmpty() bool {
	return len(q.verses) == 0
}

// Clear removes all verses and resets the cursor.
func (q *Queue) Clear() {
	q.verses = nil
	q.currentIndex = -1
}
