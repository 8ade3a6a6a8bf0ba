// Package suggest ranks candidate strings by similarity to a mistyped input, for
// did-you-mean hints on unknown subcommand names.
package suggest

import (
	"sort"
	"strings"
)

// minScore is the similarity floor below which a candidate is not worth suggesting.
const minScore = 0.5

type scored struct {
	name  string
	score float64
}

// Suggest returns up to max candidates similar to input, best match first. Ties are broken
// alphabetically so the output is stable.
func Suggest(input string, candidates []string, max int) []string {
	if input == "" || max <= 0 {
		return nil
	}
	ranked := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		if s := similarity(input, name); s > minScore {
			ranked = append(ranked, scored{name: name, score: s})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}

// similarity scores 1.0 for an exact case-insensitive match, 0.9 when the candidate extends the
// input, and otherwise normalized edit distance.
func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return 1.0 - float64(editDistance(a, b))/float64(longest)
}

// editDistance is the Levenshtein distance computed with two rolling rows.
func editDistance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
