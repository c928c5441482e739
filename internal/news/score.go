package news

// Score combines coverage volume, quote depth and keyword diversity
// into a 0-100 signal. Zero articles means zero signal regardless of
// the other inputs.
func Score(articleCount, quoteCount, keywordCount int) int {
	if articleCount == 0 {
		return 0
	}

	score := 0

	// Volume, up to 40 points.
	switch {
	case articleCount >= 5:
		score += 40
	case articleCount >= 3:
		score += 30
	default:
		score += 15
	}

	// Quote depth, up to 35 points. Articles with no extractable quotes
	// still earn a floor of 5.
	switch {
	case quoteCount >= 3:
		score += 35
	case quoteCount >= 1:
		score += 20
	default:
		score += 5
	}

	// Keyword diversity, up to 25 points.
	switch {
	case keywordCount >= 5:
		score += 25
	case keywordCount >= 3:
		score += 18
	case keywordCount >= 1:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
