package classify

import (
	"strings"

	"github.com/david/foundation-fit/internal/models"
)

type nteeMapping struct {
	causeArea models.CauseArea
	relevance float64
}

// nteeMajorGroups maps the first letter of an NTEE code to a cause
// area. This is an organization-level signal, used when grant purpose
// text is unavailable or to classify the organization itself.
var nteeMajorGroups = map[string]nteeMapping{
	"A": {models.CauseArtsCulture, 0.05},
	"B": {models.CauseHigherEducation, 0.3},
	"C": {models.CauseEnvironment, 0.05},
	"D": {models.CauseEnvironment, 0.05},
	"E": {models.CauseHealth, 0.05},
	"F": {models.CauseHealth, 0.05},
	"G": {models.CauseHealth, 0.05},
	"H": {models.CauseHealth, 0.05},
	"I": {models.CauseHumanServices, 0.15},
	"J": {models.CauseWorkforceDevelopment, 1.0},
	"K": {models.CauseHumanServices, 0.15},
	"L": {models.CauseHumanServices, 0.15},
	"M": {models.CauseHumanServices, 0.15},
	"N": {models.CauseHumanServices, 0.15},
	"O": {models.CauseYouthDevelopment, 0.3},
	"P": {models.CauseHumanServices, 0.2},
	"Q": {models.CauseInternational, 0.1},
	"R": {models.CauseRacialEquity, 0.5},
	"S": {models.CauseCommunityDevelopment, 0.4},
	"T": {models.CausePhilanthropy, 0.1},
	"U": {models.CauseAITechnology, 0.7},
	"V": {models.CauseHumanServices, 0.15},
	"W": {models.CauseHumanServices, 0.15},
	"X": {models.CauseOther, 0.05},
	"Y": {models.CauseOther, 0.05},
	"Z": {models.CauseOther, 0.05},
}

// nteeSubcodes are two-character overrides that take precedence over
// the major-group mapping.
var nteeSubcodes = map[string]nteeMapping{
	"J2": {models.CauseWorkforceDevelopment, 1.0},
	"J3": {models.CauseWorkforceDevelopment, 0.9},
	"B6": {models.CauseAdultEducation, 0.9},
	"B7": {models.CauseAdultEducation, 0.85},
	"B8": {models.CauseK12Education, 0.3},
	"B2": {models.CauseK12Education, 0.25},
	"B3": {models.CauseK12Education, 0.25},
	"B4": {models.CauseHigherEducation, 0.35},
	"B5": {models.CauseHigherEducation, 0.35},
	"B9": {models.CauseHigherEducation, 0.3},
	"P2": {models.CauseHumanServices, 0.25},
	"P8": {models.CauseHumanServices, 0.3},
	"S2": {models.CauseEconomicMobility, 0.6},
	"S4": {models.CauseEconomicMobility, 0.55},
	"U5": {models.CauseAITechnology, 0.75},
}

// ByNTEECode classifies by an organization's NTEE taxonomy code. The
// two-character sub-code wins over the one-character major group;
// unknown or empty codes fall back to Other at baseline relevance.
func ByNTEECode(code string) (models.CauseArea, float64) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.CauseOther, 0.05
	}

	if len(code) >= 2 {
		if m, ok := nteeSubcodes[code[:2]]; ok {
			return m.causeArea, m.relevance
		}
	}
	if m, ok := nteeMajorGroups[code[:1]]; ok {
		return m.causeArea, m.relevance
	}
	return models.CauseOther, 0.05
}

var nteeDescriptions = map[string]string{
	"A": "Arts, Culture & Humanities",
	"B": "Education",
	"C": "Environment",
	"D": "Animal-Related",
	"E": "Health Care",
	"F": "Mental Health & Crisis",
	"G": "Disease & Disorders",
	"H": "Medical Research",
	"I": "Crime & Legal Related",
	"J": "Employment",
	"K": "Food, Agriculture & Nutrition",
	"L": "Housing & Shelter",
	"M": "Public Safety & Disaster",
	"N": "Recreation & Sports",
	"O": "Youth Development",
	"P": "Human Services",
	"Q": "International Affairs",
	"R": "Civil Rights & Advocacy",
	"S": "Community Improvement",
	"T": "Philanthropy & Voluntarism",
	"U": "Science & Technology",
	"V": "Social Science Research",
	"W": "Public & Societal Benefit",
	"X": "Religion Related",
	"Y": "Mutual & Membership Benefit",
	"Z": "Unknown",
}

// NTEEDescription names the NTEE major group of a code, for display.
func NTEEDescription(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "Unknown"
	}
	if desc, ok := nteeDescriptions[code[:1]]; ok {
		return desc
	}
	return "Unknown"
}
