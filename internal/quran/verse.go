// Package quran provides the shared verse and reciter value types used by
// the playback engine and the reading-progress tracker.
package quran

import (
	"fmt"
	"strconv"
	"strings"
)

// SurahCount is the number of surahs in the mushaf.
const SurahCount = 114

// VerseID identifies a verse by surah and verse number.
type VerseID struct {
	Surah int
	Verse int
}

// String returns the canonical "surah:verse" form, e.g. "2:255".
func (id VerseID) String() string {
	return fmt.Sprintf("%d:%d", id.Surah, id.Verse)
}

// Valid reports whether the identifier is within mushaf bounds.
// Verse counts per surah are not validated here; the catalog is the
// authority for those.
func (id VerseID) Valid() bool {
	return id.Surah >= 1 && id.Surah <= SurahCount && id.Verse >= 1
}

// IsZero reports whether the identifier is the zero value.
func (id VerseID) IsZero() bool {
	return id.Surah == 0 && id.Verse == 0
}

// Compare orders identifiers by surah, then verse.
// Returns -1, 0, or 1.
func (id VerseID) Compare(other VerseID) int {
	if id.Surah != other.Surah {
		if id.Surah < other.Surah {
			return -1
		}
		return 1
	}
	switch {
	case id.Verse < other.Verse:
		return -1
	case id.Verse > other.Verse:
		return 1
	default:
		return 0
	}
}

// ParseVerseID parses the "surah:verse" form produced by String.
func ParseVerseID(s string) (VerseID, error) {
	left, right, ok := strings.Cut(s, ":")
	if !ok {
		return VerseID{}, fmt.Errorf("invalid verse id %q", s)
	}
	surah, err := strconv.Atoi(left)
	if err != nil {
		return VerseID{}, fmt.Errorf("invalid surah in %q", s)
	}
	verse, err := strconv.Atoi(right)
	if err != nil {
		return VerseID{}, fmt.Errorf("invalid verse in %q", s)
	}
	id := VerseID{Surah: surah, Verse: verse}
	if !id.Valid() {
		return VerseID{}, fmt.Errorf("verse id %q out of range", s)
	}
	return id, nil
}

// Verse is an immutable verse as loaded from content.
// This is a copy of the data, not a reference into any content store.
type Verse struct {
	ID      VerseID
	Ordinal int // global position in the mushaf, 1-based, monotonic
	Text    string
}
