package query

// similarity scores how alike two strings are, for "did you mean"
// suggestions on a bad column name. It combines a per-position character
// match rate with a length-closeness
// term: 2/3 weight on matching (index, char) pairs over the longer
// string's length, 1/3 weight on the shorter-to-longer length ratio.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	type pair struct {
		idx int
		ch  rune
	}
	seen := make(map[pair]struct{}, len(a))
	idx := 0
	for _, c := range a {
		seen[pair{idx, c}] = struct{}{}
		idx++
	}
	matches := 0
	idx = 0
	for _, c := range b {
		if _, ok := seen[pair{idx, c}]; ok {
			matches++
		}
		idx++
	}

	matchRate := float64(matches) / float64(maxLen)
	lenSim := float64(minLen) / float64(maxLen)

	const matchWeight = 2.0 / 3.0
	const lenWeight = 1.0 / 3.0
	return matchRate*matchWeight + lenSim*lenWeight
}

// mostSimilar finds the candidate lexically closest to target, used to
// build "did you mean" column-name suggestions.
func mostSimilar(target string, candidates []string) (string, bool) {
	best := ""
	bestScore := -1.0
	found := false
	for _, c := range candidates {
		s := similarity(target, c)
		if s > bestScore {
			bestScore = s
			best = c
			found = true
		}
	}
	return best, found
}
