// Package palette ranks command-palette entries against a typed query.
//
// Everything in this package is pure: callers pass in the candidate snapshot,
// the user's favorites and recents, and get back a freshly allocated ranked
// slice. Nothing is cached between calls.
package palette

// Kind tells the frontend which icon to draw for a result row.
type Kind string

const (
	KindNavigation Kind = "navigation"
	KindAction     Kind = "action"
	KindFavorite   Kind = "favorite"
	KindRecent     Kind = "recent"
)

// IsValid returns true if the kind is one of the known row kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindNavigation, KindAction, KindFavorite, KindRecent:
		return true
	default:
		return false
	}
}

// Item is one entry that can appear in the palette.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href"`
	Kind        Kind   `json:"kind"`
}

// ScoredResult pairs an item with its relevance for a single query.
type ScoredResult struct {
	Item  Item `json:"item"`
	Score int  `json:"score"`
}
