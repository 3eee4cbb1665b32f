package annotation

import "sort"

// maxSuggestDistance bounds how far a misspelling can be from a recognized
// tag before we stop guessing
const maxSuggestDistance = 2

// closestTag returns the recognized tag nearest to key by edit distance,
// or "" when nothing is close enough to be a plausible typo. Candidates are
// scanned in sorted order so ties resolve the same way on every run.
func closestTag(key string) string {
	candidates := make([]string, 0, len(recognizedTags))
	for candidate := range recognizedTags {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		d := levenshtein(key, candidate)
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

// levenshtein computes the edit distance between two strings using a
// two-row rolling table
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
