package inbox

import "sort"

// Filter narrows an item list. Zero values mean "no constraint". Default
// ordering is descending relevance; limit 0 means unlimited.
type Filter struct {
	Category     Category
	CitizenID    string
	UnreadOnly   bool
	MinRelevance float64
	Limit        int
}

// Apply filters and orders items by descending relevance.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.CitizenID != "" && it.CitizenID != f.CitizenID {
			continue
		}
		if f.UnreadOnly && it.SeenAt != nil {
			continue
		}
		if it.Relevance < f.MinRelevance {
			continue
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// PriorityItems orders items for the administrator's attention: every
// crisis_call ranks ahead of everything else regardless of relevance, then
// descending relevance within each group.
func PriorityItems(items []Item, limit int) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		iCrisis := out[i].Category == CategoryCrisisCall
		jCrisis := out[j].Category == CategoryCrisisCall
		if iCrisis != jCrisis {
			return iCrisis
		}
		return out[i].Relevance > out[j].Relevance
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summary aggregates inbox counts and relevance.
type Summary struct {
	Total        int              `json:"total"`
	Unread       int              `json:"unread"`
	ByCategory   map[Category]int `json:"by_category"`
	AvgRelevance float64          `json:"avg_relevance"`
}

// CalculateSummary computes the totals. Average relevance is 0 for an empty
// input.
func CalculateSummary(items []Item) Summary {
	s := Summary{ByCategory: make(map[Category]int)}
	total := 0.0
	for _, it := range items {
		s.Total++
		if it.SeenAt == nil {
			s.Unread++
		}
		s.ByCategory[it.Category]++
		total += it.Relevance
	}
	if s.Total > 0 {
		s.AvgRelevance = total / float64(s.Total)
	}
	return s
}
