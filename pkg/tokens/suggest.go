// tokforge/pkg/tokens/suggest.go
package tokens

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// suggestParams mirrors spec §4.3's threshold rule: max(2, ceil(0.4*len)),
// top 3 candidates, distance > 0 (an exact match is never "a suggestion").
//
// Grounded on bennypowers-cem's list/table.go closestHeader and the LSP
// publishDiagnostics did-you-mean helpers, which use the same
// github.com/agext/levenshtein package against a candidate set.
func suggest(target string, candidates []string, max int) []string {
	if target == "" || len(candidates) == 0 {
		return nil
	}

	threshold := len(target) * 4 / 10
	if len(target)*4%10 != 0 {
		threshold++ // ceil
	}
	if threshold < 2 {
		threshold = 2
	}

	type scored struct {
		name string
		dist int
	}

	var matches []scored
	lowerTarget := strings.ToLower(target)
	for _, c := range candidates {
		dist := levenshtein.Distance(lowerTarget, strings.ToLower(c), nil)
		if dist > 0 && dist <= threshold {
			matches = append(matches, scored{name: c, dist: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > max {
		matches = matches[:max]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
