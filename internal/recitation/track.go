package recitation

import "github.com/sakina-app/core/internal/quran"

// Track is the engine's "current verse" value: either no track or a verse.
// It replaces nil-pointer signalling so snapshots stay copyable values.
type Track struct {
	verse   quran.Verse
	present bool
}

// NoTrack is the absent track.
func NoTrack() Track {
	return Track{}
}

// TrackOf wraps a verse.
func TrackOf(v quran.Verse) Track {
	return Track{verse: v, present: true}
}

// Verse returns the wrapped verse; ok is false for NoTrack.
func (t Track) Verse() (quran.Verse, bool) {
	return t.verse, t.present
}

// HasVerse reports whether a verse is present.
func (t Track) HasVerse() bool {
	return t.present
}
