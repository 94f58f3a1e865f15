package palette

// QuickPickLimits caps the rows shown when the query is empty.
type QuickPickLimits struct {
	Favorites int
	Recents   int
	Total     int
}

// DefaultQuickPickLimits shows up to 5 favorites and 5 recents, 8 rows overall.
var DefaultQuickPickLimits = QuickPickLimits{Favorites: 5, Recents: 5, Total: 8}

func (l QuickPickLimits) withDefaults() QuickPickLimits {
	if l.Favorites <= 0 {
		l.Favorites = DefaultQuickPickLimits.Favorites
	}
	if l.Recents <= 0 {
		l.Recents = DefaultQuickPickLimits.Recents
	}
	if l.Total <= 0 {
		l.Total = DefaultQuickPickLimits.Total
	}
	return l
}

// QuickPicks builds the empty-query list: favorites first, then recents, with
// each source cut to its own cap before entries whose Href was already listed
// are skipped. The combined list is cut to limits.Total.
func QuickPicks(favorites, recents []Item, limits QuickPickLimits) []Item {
	limits = limits.withDefaults()

	out := make([]Item, 0, limits.Total)
	seen := make(map[string]bool, limits.Favorites+limits.Recents)

	add := func(src []Item, max int, kind Kind) {
		if len(src) > max {
			src = src[:max]
		}
		for _, item := range src {
			if len(out) >= limits.Total {
				return
			}
			if item.Href == "" || seen[item.Href] {
				continue
			}
			seen[item.Href] = true
			item.Kind = kind
			out = append(out, item)
		}
	}

	add(favorites, limits.Favorites, KindFavorite)
	add(recents, limits.Recents, KindRecent)

	return out
}
