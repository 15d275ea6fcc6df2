package errors

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// Suggest returns up to three candidates that fuzzily match name, closest
// first. Exact matches are never suggested.
func Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	// A name is often longer than the key it was mistyped from; search the
	// other direction too so "usr" finds "user" and "username" finds "user".
	for _, c := range candidates {
		if c != "" && fuzzy.MatchFold(c, name) {
			ranks = append(ranks, fuzzy.Rank{
				Source:   c,
				Target:   name,
				Distance: fuzzy.LevenshteinDistance(c, name),
			})
		}
	}
	// Transposed letters defeat subsequence matching; fall back to edit
	// distance for those.
	limit := max(1, len(name)/2)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d <= limit {
			ranks = append(ranks, fuzzy.Rank{Source: name, Target: c, Distance: d})
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})

	seen := make(map[string]struct{}, len(ranks))
	var out []string
	for _, r := range ranks {
		target := r.Target
		if target == name {
			target = r.Source
		}
		if target == name {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
