package palette

import "sort"

const (
	// DefaultLimit is the number of rows the palette renders.
	DefaultLimit = 8

	BonusTopLevel    = 10
	BonusQuickAction = 5
)

// Candidate is an item offered for ranking. Bonus is added to the match score
// of matched candidates only and breaks ties toward more prominent entries.
type Candidate struct {
	Item  Item
	Bonus int
}

// Rank scores every candidate against query and returns the matches in
// descending score order, truncated to limit. Candidates that do not match
// are dropped before sorting. Equal scores keep their input order.
func Rank(query string, candidates []Candidate, limit int) []ScoredResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]ScoredResult, 0, len(candidates))
	if query == "" {
		return results
	}

	for _, c := range candidates {
		score := candidateScore(query, c.Item)
		if score == 0 {
			continue
		}
		if c.Bonus > 0 {
			score += c.Bonus
		}
		results = append(results, ScoredResult{Item: c.Item, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func candidateScore(query string, item Item) int {
	score := Score(query, item.Name)
	if item.Description != "" {
		if d := Score(query, item.Description); d > score {
			score = d
		}
	}
	return score
}
