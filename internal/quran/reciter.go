package quran

// Reciter is a selectable recitation voice. The ID is the catalog key used
// to resolve a verse's audio resource.
type Reciter struct {
	ID   string
	Name string
}

// IsZero reports whether no reciter is selected.
func (r Reciter) IsZero() bool {
	return r.ID == ""
}
