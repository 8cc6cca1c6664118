package eval

import (
	"sort"
	"strings"
)

// PartialTokenSetRatio scores how well the token sets of a and b align, on
// a 0 to 100 scale.
//
// Tokens are whitespace separated and deduplicated. If either side has no
// tokens the score is 0. A shared token scores 100. Otherwise the sorted
// leftover tokens of each side are joined and compared with PartialRatio.
func PartialTokenSetRatio(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			return 100
		}
	}
	return PartialRatio(joinSorted(tokensA), joinSorted(tokensB))
}

// PartialRatio returns the best Indel similarity, scaled to 0..100, between
// the shorter string and any window of the longer one. Windows clipped at
// either end of the longer string are included.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) == 0 || len(long) == 0 {
		return 0
	}
	if len(short) > len(long) {
		short, long = long, short
	}
	best := bestWindowRatio(short, long)
	if len(short) == len(long) {
		if swapped := bestWindowRatio(long, short); swapped > best {
			best = swapped
		}
	}
	return best
}

func bestWindowRatio(short, long []rune) float64 {
	n, m := len(short), len(long)
	best := 0.0
	consider := func(window []rune) bool {
		score := indelRatio(short, window)
		if score > best {
			best = score
		}
		return best == 100
	}
	for end := 1; end < n; end++ {
		if consider(long[:end]) {
			return best
		}
	}
	for start := 0; start+n <= m; start++ {
		if consider(long[start : start+n]) {
			return best
		}
	}
	for start := m - n + 1; start < m; start++ {
		if start < 0 {
			continue
		}
		if consider(long[start:]) {
			return best
		}
	}
	return best
}

// indelRatio is 100 * (1 - indel distance / total length).
func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(lcsLength(a, b)) / float64(total)
}

func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

func joinSorted(set map[string]struct{}) string {
	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
