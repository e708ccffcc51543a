package catalog

import (
	"sort"
	"strings"
)

// Similarity scores how alike a queried name and a catalogue key are, on a
// 0-100 scale. Implementations must be deterministic; the resolver accepts
// any implementation so the matching algorithm is swappable in tests.
type Similarity interface {
	Ratio(name, key string) float64
}

// TokenSetRatio is the default Similarity: it tokenizes both strings,
// separates the shared token set from each side's remainder, and returns the
// best pairwise edit-distance ratio among the three sorted combinations.
// Word order and duplicated tokens do not affect the result.
type TokenSetRatio struct{}

// Ratio implements Similarity.
func (TokenSetRatio) Ratio(name, key string) float64 {
	tokensA := tokenSet(name)
	tokensB := tokenSet(key)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var shared, restA, restB []string
	for tok := range tokensA {
		if tokensB[tok] {
			shared = append(shared, tok)
		} else {
			restA = append(restA, tok)
		}
	}
	for tok := range tokensB {
		if !tokensA[tok] {
			restB = append(restB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(restA)
	sort.Strings(restB)

	base := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(restA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(restB, " "))

	best := editRatio(base, combinedA)
	if r := editRatio(base, combinedB); r > best {
		best = r
	}
	if r := editRatio(combinedA, combinedB); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}

// editRatio is a Levenshtein-based similarity on a 0-100 scale.
func editRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := levenshtein(ra, rb)
	r := 100 * float64(total-2*dist) / float64(total)
	if r < 0 {
		return 0
	}
	return r
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
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
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
