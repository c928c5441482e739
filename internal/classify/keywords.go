package classify

import (
	"regexp"

	"github.com/david/foundation-fit/internal/models"
)

// keywordPattern pairs a compiled matcher with the cause area and
// relevance it awards. The table is data, not control flow: every
// pattern is tested and the highest relevance among matches wins, so a
// grant hitting both a generic and a specific keyword resolves to the
// more specific category.
type keywordPattern struct {
	re        *regexp.Regexp
	causeArea models.CauseArea
	relevance float64
}

var keywordPatterns = []keywordPattern{
	// Direct workforce development
	{regexp.MustCompile(`(?i)\b(workforce\s*develop|job\s*train|career\s*(train|pathway|readiness)|employment\s*train|vocational\s*train|apprentice)`), models.CauseWorkforceDevelopment, 1.0},
	{regexp.MustCompile(`(?i)\b(upskill|reskill|skills?\s*train|career\s*advance|career\s*develop|job\s*place|job\s*read)`), models.CauseWorkforceDevelopment, 0.95},
	{regexp.MustCompile(`(?i)\b(workforce|job\s*corps|staffing|labor\s*market|earn\s*and\s*learn)`), models.CauseWorkforceDevelopment, 0.9},

	// Adult education
	{regexp.MustCompile(`(?i)\b(adult\s*edu|adult\s*learn|continuing\s*edu|GED|credential|certification\s*program|adult\s*literacy)`), models.CauseAdultEducation, 0.9},
	{regexp.MustCompile(`(?i)\b(postsecondary|community\s*college|two[\s-]year\s*college|technical\s*college)`), models.CauseAdultEducation, 0.8},

	// Tech training
	{regexp.MustCompile(`(?i)\b(tech\s*(train|edu|career|pathway)|coding|software\s*develop|data\s*(analy|scien)|cyber\s*secur|IT\s*train|digital\s*skill)`), models.CauseAITechnology, 0.85},
	{regexp.MustCompile(`(?i)\b(STEM|computer\s*science|artificial\s*intelligence|machine\s*learn)`), models.CauseAITechnology, 0.7},

	// Economic mobility
	{regexp.MustCompile(`(?i)\b(economic\s*mobil|upward\s*mobil|poverty\s*reduc|financial\s*stabil|income\s*(increas|mobil)|wage\s*gain)`), models.CauseEconomicMobility, 0.75},
	{regexp.MustCompile(`(?i)\b(low[\s-]income|underserved|disadvantaged|financial\s*empower|economic\s*empower|social\s*mobil)`), models.CauseEconomicMobility, 0.65},
	{regexp.MustCompile(`(?i)\b(anti[\s-]poverty|working\s*poor|livable?\s*wage|economic\s*opportunit|economic\s*secur)`), models.CauseEconomicMobility, 0.65},

	// Racial equity
	{regexp.MustCompile(`(?i)\b(racial\s*equit|racial\s*justice|DEI|divers.*inclus|racial\s*disparit)`), models.CauseRacialEquity, 0.6},
	{regexp.MustCompile(`(?i)\b(Black|African\s*American|Latino|Latina|Latinx|Hispanic|Indigenous|Native\s*American)\b.*\b(communit|popul|support|empower)`), models.CauseRacialEquity, 0.55},
	{regexp.MustCompile(`(?i)\b(equity|equitable|inclusion|inclusive)\b`), models.CauseRacialEquity, 0.4},

	// Community development
	{regexp.MustCompile(`(?i)\b(community\s*develop|neighborhood\s*revitaliz|economic\s*develop|small\s*business|entrepreneur)`), models.CauseCommunityDevelopment, 0.4},
	{regexp.MustCompile(`(?i)\b(housing|afford.*hous|homeless|shelter)`), models.CauseCommunityDevelopment, 0.25},

	// Lower relevance categories
	{regexp.MustCompile(`(?i)\b(youth\s*develop|young\s*(people|adult)|mentor|after[\s-]school|out[\s-]of[\s-]school)`), models.CauseYouthDevelopment, 0.35},
	{regexp.MustCompile(`(?i)\b(K[\s-]?12|elementar|middle\s*school|high\s*school|primary\s*edu|secondary\s*edu|charter\s*school)`), models.CauseK12Education, 0.2},
	{regexp.MustCompile(`(?i)\b(college|universit|higher\s*edu|undergraduate|graduate\s*school|scholarship)`), models.CauseHigherEducation, 0.3},
	{regexp.MustCompile(`(?i)\b(health|medical|hospital|mental\s*health|clinic|disease|wellness)`), models.CauseHealth, 0.05},
	{regexp.MustCompile(`(?i)\b(human\s*service|social\s*service|social\s*work|basic\s*needs|food\s*(bank|pantry)|child\s*welfare)`), models.CauseHumanServices, 0.15},
	{regexp.MustCompile(`(?i)\b(arts?|culture|museum|theater|music|dance|literary|film)`), models.CauseArtsCulture, 0.05},
	{regexp.MustCompile(`(?i)\b(environment|climate|conservation|sustainab|renewable|clean\s*energy)`), models.CauseEnvironment, 0.05},
	{regexp.MustCompile(`(?i)\b(international|global|overseas|developing\s*countr|foreign)`), models.CauseInternational, 0.1},
	{regexp.MustCompile(`(?i)\b(philanthrop|capacity\s*build|nonprofit\s*support|grantmak|regrant|pass[\s-]through)`), models.CausePhilanthropy, 0.1},
}
