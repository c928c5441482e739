package scoring

import (
	"math"
	"sort"

	"github.com/david/foundation-fit/internal/models"
)

// CauseAreaBreakdown rolls classified grants up per cause area, sorted
// descending by dollars. The representative relevance score is the
// first grant seen in each bucket, not an average. Percentages round
// independently per bucket and may not sum to 100.
func CauseAreaBreakdown(grants []models.ClassifiedGrant) []models.CauseAreaBreakdown {
	var totalDollars int64
	for _, g := range grants {
		totalDollars += g.Amount
	}

	byCause := make(map[models.CauseArea]*models.CauseAreaBreakdown)
	var order []models.CauseArea
	for _, g := range grants {
		b, ok := byCause[g.CauseArea]
		if !ok {
			b = &models.CauseAreaBreakdown{
				CauseArea:      g.CauseArea,
				RelevanceScore: g.RelevanceScore,
			}
			byCause[g.CauseArea] = b
			order = append(order, g.CauseArea)
		}
		b.TotalDollars += g.Amount
		b.GrantCount++
	}

	out := make([]models.CauseAreaBreakdown, 0, len(order))
	for _, c := range order {
		b := *byCause[c]
		if totalDollars > 0 {
			b.Percentage = int(math.Round(float64(b.TotalDollars) / float64(totalDollars) * 100))
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalDollars > out[j].TotalDollars
	})
	return out
}

// TopRecipients returns the n largest grants by amount, leaving the
// input untouched.
func TopRecipients(grants []models.ClassifiedGrant, n int) []models.ClassifiedGrant {
	sorted := make([]models.ClassifiedGrant, len(grants))
	copy(sorted, grants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
