// Package classify assigns grants to the cause-area taxonomy using
// ranked keyword matching, with an NTEE-code fallback for
// organization-level classification.
package classify

import (
	"strings"

	"github.com/david/foundation-fit/internal/models"
)

// Grant classifies one grant by its purpose text and recipient name.
// It is total: every grant gets exactly one cause area, with Other at
// baseline relevance 0.05 when nothing matches. Relevance is never
// zero; every grant carries some alignment weight.
func Grant(g models.Grant) models.ClassifiedGrant {
	text := strings.ToLower(g.PurposeText + " " + g.RecipientName)

	var (
		best      models.CauseArea
		bestScore float64
		matched   bool
	)
	for _, p := range keywordPatterns {
		if !p.re.MatchString(text) {
			continue
		}
		if !matched || p.relevance > bestScore {
			best = p.causeArea
			bestScore = p.relevance
			matched = true
		}
	}

	if !matched {
		best = models.CauseOther
		bestScore = 0.05
	}

	return models.ClassifiedGrant{
		Grant:          g,
		CauseArea:      best,
		RelevanceScore: bestScore,
	}
}

// Grants classifies a batch, preserving order.
func Grants(grants []models.Grant) []models.ClassifiedGrant {
	out := make([]models.ClassifiedGrant, 0, len(grants))
	for _, g := range grants {
		out = append(out, Grant(g))
	}
	return out
}
