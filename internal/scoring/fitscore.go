// Package scoring computes the weighted funder-fit score, the
// geographic focus determination and the cause-area rollups. All
// functions here are pure: same inputs, same outputs, no I/O.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/format"
	"github.com/david/foundation-fit/internal/models"
)

// funderEIN is the funder's own EIN: a grant paid directly to it is the
// strongest possible prior-funding signal.
const funderEIN = "842108762"

// peerOrgEINs are workforce-development peer organizations. A grant to
// any of them counts as prior similar funding.
var peerOrgEINs = map[string]bool{
	"842108762": true, // Merit America
	"133807722": true, // Year Up
	"271436100": true, // Per Scholas
	"474139557": true, // Generation USA
	"813026506": true, // Opportunity@Work
	"412111590": true, // JFF (Jobs for the Future)
	"061540907": true, // Goodwill Industries International
	"521719000": true, // National Urban League
	"530196605": true, // UnidosUS (formerly NCLR)
	"133798043": true, // Robin Hood Foundation
}

var (
	funderNamePattern  = regexp.MustCompile(`(?i)merit\s*america`)
	workforceKeywords  = regexp.MustCompile(`(?i)\b(workforce|job\s*train|career\s*(train|pathway|readiness)|employment\s*train|upskill|reskill|skills?\s*train|vocational|apprentice|career\s*develop|earn\s*and\s*learn)\b`)
	universityPatterns = regexp.MustCompile(`(?i)\b(university|college|institute\s*of\s*technology|school\s*of|polytechnic|academia|regent|trustee)`)
	governmentPatterns = regexp.MustCompile(`(?i)\b(department\s*of|city\s*of|county\s*of|state\s*of|federal|municipal|government|agency|bureau|commission)\b`)
)

// AlignmentPolicy selects how the cause-area dimension weighs grants.
type AlignmentPolicy string

const (
	// PolicySelected weighs grants 1.0 when their cause area is in the
	// funder's selected set, 0.1 otherwise.
	PolicySelected AlignmentPolicy = "selected"
	// PolicyRelevance uses each grant's own continuous relevance score.
	PolicyRelevance AlignmentPolicy = "relevance"
)

// Engine computes fit scores under a fixed weight and policy
// configuration.
type Engine struct {
	weights  config.DimensionWeights
	policy   AlignmentPolicy
	withNews bool
}

// NewEngine builds an engine from the scoring config. When news
// enrichment is off, the leadership dimension is omitted and the
// redistributed weights apply.
func NewEngine(cfg config.ScoringConfig, withNews bool) *Engine {
	weights := cfg.Weights
	if !withNews {
		weights = cfg.WeightsWithoutNews
	}
	return &Engine{
		weights:  weights,
		policy:   AlignmentPolicy(cfg.AlignmentPolicy),
		withNews: withNews,
	}
}

// FitScore combines the scoring dimensions into a 0-100 composite.
// signal may be nil only when the engine was built without news.
func (e *Engine) FitScore(grants []models.ClassifiedGrant, signal *models.LeadershipSignal, prefs models.Preferences) models.FitScoreResult {
	var totalDollars int64
	for _, g := range grants {
		totalDollars += g.Amount
	}

	dimensions := []models.FitScoreDimension{
		e.scoreCauseAreaAlignment(grants, totalDollars, prefs),
		e.scoreGrantSizeFit(grants, prefs),
		e.scorePriorSimilarFunding(grants),
		e.scoreRecipientTypeMatch(grants, prefs),
	}
	if e.withNews {
		dimensions = append(dimensions, e.scoreLeadershipSignals(signal))
	}

	var weighted float64
	for _, d := range dimensions {
		weighted += float64(d.Score) * d.Weight
	}
	overall := int(math.Round(math.Min(100, math.Max(0, weighted))))

	return models.FitScoreResult{
		OverallScore:      overall,
		Dimensions:        dimensions,
		GrantCount:        len(grants),
		TotalGrantDollars: totalDollars,
	}
}

func (e *Engine) scoreCauseAreaAlignment(grants []models.ClassifiedGrant, totalDollars int64, prefs models.Preferences) models.FitScoreDimension {
	dim := models.FitScoreDimension{Name: "Cause Area Alignment", Weight: e.weights.CauseAreaAlignment}
	if totalDollars == 0 {
		dim.Explanation = "No grant data available to assess cause area alignment."
		return dim
	}

	selected := prefs.CauseAreaSet()

	var weightedRelevance float64
	for _, g := range grants {
		relevance := g.RelevanceScore
		if e.policy == PolicySelected {
			relevance = 0.1
			if selected[g.CauseArea] {
				relevance = 1.0
			}
		}
		weightedRelevance += float64(g.Amount) * relevance
	}
	dim.Score = int(math.Round(weightedRelevance / float64(totalDollars) * 100))

	topCause, topDollars := topCauseArea(grants)
	topPct := int(math.Round(float64(topDollars) / float64(totalDollars) * 100))

	suffix := ""
	if selected[topCause] {
		suffix = " - matches your priorities"
	}
	switch {
	case dim.Score >= 70:
		dim.Explanation = fmt.Sprintf("Strong alignment. Top cause: %s (%d%%)%s.", topCause, topPct, suffix)
	case dim.Score >= 40:
		dim.Explanation = fmt.Sprintf("Moderate alignment. Top cause: %s (%d%%).", topCause, topPct)
	default:
		dim.Explanation = fmt.Sprintf("Low alignment. Primarily funds %s (%d%%).", topCause, topPct)
	}
	return dim
}

// topCauseArea returns the cause area with the most dollars; ties break
// by first appearance in the grant list.
func topCauseArea(grants []models.ClassifiedGrant) (models.CauseArea, int64) {
	totals := make(map[models.CauseArea]int64)
	var order []models.CauseArea
	for _, g := range grants {
		if _, seen := totals[g.CauseArea]; !seen {
			order = append(order, g.CauseArea)
		}
		totals[g.CauseArea] += g.Amount
	}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	return order[0], totals[order[0]]
}

func (e *Engine) scoreGrantSizeFit(grants []models.ClassifiedGrant, prefs models.Preferences) models.FitScoreDimension {
	dim := models.FitScoreDimension{Name: "Grant Size Fit", Weight: e.weights.GrantSizeFit}
	if len(grants) == 0 {
		dim.Explanation = "No grant data available."
		return dim
	}

	amounts := make([]int64, len(grants))
	var sum int64
	for i, g := range grants {
		amounts[i] = g.Amount
		sum += g.Amount
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i] < amounts[j] })

	median := amounts[len(amounts)/2]
	mean := float64(sum) / float64(len(amounts))
	typical := (float64(median) + mean) / 2

	sweetMin := float64(prefs.GrantSizeMin)
	sweetMax := float64(prefs.GrantSizeMax)

	var score float64
	switch {
	case typical >= sweetMin && typical <= sweetMax:
		score = 100
	case typical < sweetMin:
		// Linear falloff toward zero below the sweet spot.
		score = math.Round(typical / sweetMin * 100)
	default:
		// Oversized typical grants floor at 60: a funder writing bigger
		// checks than preferred is not penalized as harshly as one
		// writing smaller ones.
		score = math.Round(math.Max(60, 100-(typical-sweetMax)/sweetMax*40))
	}
	dim.Score = int(math.Min(100, math.Max(0, score)))

	dim.Explanation = fmt.Sprintf("Median: %s, Mean: %s. Your target: %s-%s.",
		format.Currency(median), format.Currency(int64(mean)),
		format.Currency(prefs.GrantSizeMin), format.Currency(prefs.GrantSizeMax))
	return dim
}

func (e *Engine) scorePriorSimilarFunding(grants []models.ClassifiedGrant) models.FitScoreDimension {
	dim := models.FitScoreDimension{Name: "Prior Similar Funding", Weight: e.weights.PriorSimilarFunding}
	if len(grants) == 0 {
		dim.Explanation = "No grant data available."
		return dim
	}

	// Direct funding dominates everything else.
	for _, g := range grants {
		if g.RecipientEIN == funderEIN || funderNamePattern.MatchString(g.RecipientName) {
			dim.Score = 100
			dim.Explanation = fmt.Sprintf("Has funded Merit America directly (%s).", format.CurrencyFull(g.Amount))
			return dim
		}
	}

	var peerGrants, keywordGrants []models.ClassifiedGrant
	for _, g := range grants {
		if g.RecipientEIN != "" && peerOrgEINs[g.RecipientEIN] {
			peerGrants = append(peerGrants, g)
		}
		if workforceKeywords.MatchString(g.PurposeText) || workforceKeywords.MatchString(g.RecipientName) {
			keywordGrants = append(keywordGrants, g)
		}
	}

	similarCount := len(peerGrants) + len(keywordGrants)
	switch {
	case len(peerGrants) > 0:
		dim.Score = int(math.Min(90, float64(50+len(peerGrants)*10+len(keywordGrants)*5)))
	case len(keywordGrants) > 0:
		dim.Score = int(math.Min(70, math.Round(float64(similarCount)/float64(len(grants))*200)))
	default:
		dim.Score = 0
	}

	if dim.Score == 0 {
		dim.Explanation = "No prior funding to similar organizations found."
		return dim
	}

	var names []string
	for _, g := range peerGrants {
		names = append(names, g.RecipientName)
	}
	for i, g := range keywordGrants {
		if i >= 3 {
			break
		}
		names = append(names, g.RecipientName)
	}
	names = uniqueHead(names, 3)
	dim.Explanation = fmt.Sprintf("Found %d related grant(s): %s.", similarCount, strings.Join(names, ", "))
	return dim
}

// uniqueHead de-duplicates preserving order and keeps at most n.
func uniqueHead(items []string, n int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

func (e *Engine) scoreRecipientTypeMatch(grants []models.ClassifiedGrant, prefs models.Preferences) models.FitScoreDimension {
	dim := models.FitScoreDimension{Name: "Recipient Type Match", Weight: e.weights.RecipientTypeMatch}

	if prefs.RecipientType == models.RecipientAny {
		// Neutral fixed score, independent of grant contents.
		dim.Score = 75
		dim.Explanation = "No recipient type preference set - neutral score."
		return dim
	}
	if len(grants) == 0 {
		dim.Explanation = "No grant data available."
		return dim
	}

	var matchDollars, totalDollars int64
	for _, g := range grants {
		text := g.RecipientName + " " + g.PurposeText
		totalDollars += g.Amount

		switch prefs.RecipientType {
		case models.RecipientUniversity:
			if universityPatterns.MatchString(text) {
				matchDollars += g.Amount
			}
		case models.RecipientGovernment:
			if governmentPatterns.MatchString(text) {
				matchDollars += g.Amount
			}
		case models.RecipientNonprofit:
			// Anything that is neither a university nor a government
			// entity counts as a nonprofit.
			if !universityPatterns.MatchString(text) && !governmentPatterns.MatchString(text) {
				matchDollars += g.Amount
			}
		}
	}

	matchPct := 0.0
	if totalDollars > 0 {
		matchPct = float64(matchDollars) / float64(totalDollars)
	}
	dim.Score = int(math.Round(matchPct * 100))

	typeLabel := "government entities"
	switch prefs.RecipientType {
	case models.RecipientNonprofit:
		typeLabel = "nonprofits"
	case models.RecipientUniversity:
		typeLabel = "universities"
	}
	dim.Explanation = fmt.Sprintf("%d%% of grant dollars go to %s.", int(math.Round(matchPct*100)), typeLabel)
	return dim
}

func (e *Engine) scoreLeadershipSignals(signal *models.LeadershipSignal) models.FitScoreDimension {
	dim := models.FitScoreDimension{Name: "Leadership & Public Signals", Weight: e.weights.LeadershipSignals}
	if signal == nil || len(signal.Articles) == 0 {
		dim.Explanation = "No recent press coverage found with alignment keywords."
		return dim
	}

	dim.Score = signal.Score
	topics := "relevant topics"
	if len(signal.KeywordsFound) > 0 {
		head := signal.KeywordsFound
		if len(head) > 3 {
			head = head[:3]
		}
		topics = strings.Join(head, ", ")
	}
	dim.Explanation = fmt.Sprintf("Found %d article(s) mentioning %s.", len(signal.Articles), topics)
	return dim
}
