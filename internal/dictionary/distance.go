package dictionary

// editDistance returns the optimal string alignment distance between two words:
// insertions, deletions, substitutions, and adjacent transpositions each cost one.
// The frequency lists this package loads are ranked with this metric, while the
// candidate generator only exposes plain Levenshtein distance.
func editDistance(first string, second string) int {
	firstRunes := []rune(first)
	secondRunes := []rune(second)
	if len(firstRunes) == 0 {
		return len(secondRunes)
	}
	if len(secondRunes) == 0 {
		return len(firstRunes)
	}

	previousPrevious := make([]int, len(secondRunes)+1)
	previous := make([]int, len(secondRunes)+1)
	current := make([]int, len(secondRunes)+1)
	for column := range previous {
		previous[column] = column
	}

	for row := 1; row <= len(firstRunes); row++ {
		current[0] = row
		for column := 1; column <= len(secondRunes); column++ {
			substitutionCost := 1
			if firstRunes[row-1] == secondRunes[column-1] {
				substitutionCost = 0
			}
			best := min(previous[column]+1, current[column-1]+1, previous[column-1]+substitutionCost)
			if row > 1 && column > 1 && firstRunes[row-1] == secondRunes[column-2] && firstRunes[row-2] == secondRunes[column-1] {
				best = min(best, previousPrevious[column-2]+1)
			}
			current[column] = best
		}
		previousPrevious, previous, current = previous, current, previousPrevious
	}

	return previous[len(secondRunes)]
}
