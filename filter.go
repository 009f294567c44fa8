package main

import (
	"sort"
	"strings"
)

// Selection is the current filter state. A field that normalizes to an empty
// string means "no selection".
type Selection struct {
	Category CategoryID `json:"category,omitempty"`
	Goal     string     `json:"goal,omitempty"`
	Effect   string     `json:"effect,omitempty"`
	Query    string     `json:"query,omitempty"`
}

// Filter returns the records matching every active criterion, in catalog order.
// It never reorders or mutates its input.
func Filter(records []Supplement, sel Selection) []Supplement {
	goal := Normalize(sel.Goal)
	effect := Normalize(sel.Effect)
	query := Normalize(sel.Query)

	out := make([]Supplement, 0, len(records))
	for _, s := range records {
		if sel.Category != "" && s.Category != sel.Category {
			continue
		}
		goals := normalizeAll(s.Goals)
		effects := normalizeAll(s.PositiveEffects)

		if goal != "" && !anyOverlaps(goals, goal) {
			continue
		}
		if effect != "" && !anyEquals(effects, effect) {
			continue
		}
		if query != "" && !matchesQuery(s, goals, effects, query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesQuery(s Supplement, goals, effects []string, query string) bool {
	if strings.Contains(Normalize(s.Name), query) || strings.Contains(Normalize(s.Description), query) {
		return true
	}
	return anyContains(goals, query) || anyContains(effects, query)
}

// anyOverlaps reports whether some value contains want or is contained in it.
// Very short goal labels therefore match broadly, and an empty label matches
// any goal.
func anyOverlaps(values []string, want string) bool {
	for _, v := range values {
		if strings.Contains(v, want) || strings.Contains(want, v) {
			return true
		}
	}
	return false
}

func anyEquals(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func anyContains(values []string, want string) bool {
	for _, v := range values {
		if strings.Contains(v, want) {
			return true
		}
	}
	return false
}

func normalizeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Normalize(v)
	}
	return out
}

// DistinctEffects lists every positive effect present in the catalog, exact
// duplicates removed, sorted ascending. Labels are returned verbatim.
func DistinctEffects(records []Supplement) []string {
	set := map[string]struct{}{}
	for _, s := range records {
		for _, e := range s.PositiveEffects {
			if e != "" {
				set[e] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
