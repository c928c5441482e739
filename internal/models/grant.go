package models

// CauseArea is the fixed 16-value taxonomy grants are classified into.
// It is distinct from the IRS NTEE taxonomy, which only feeds the
// organization-level fallback classifier.
type CauseArea string

const (
	CauseWorkforceDevelopment CauseArea = "Workforce Development"
	CauseAdultEducation       CauseArea = "Adult Education"
	CauseAITechnology         CauseArea = "AI & Technology"
	CauseEconomicMobility     CauseArea = "Economic Mobility"
	CauseRacialEquity         CauseArea = "Racial Equity & Inclusion"
	CauseYouthDevelopment     CauseArea = "Youth Development"
	CauseK12Education         CauseArea = "K-12 Education"
	CauseHigherEducation      CauseArea = "Higher Education"
	CauseHealth               CauseArea = "Health"
	CauseHumanServices        CauseArea = "Human Services"
	CauseArtsCulture          CauseArea = "Arts & Culture"
	CauseEnvironment          CauseArea = "Environment"
	CauseCommunityDevelopment CauseArea = "Community Development"
	CausePhilanthropy         CauseArea = "Philanthropy & Intermediary"
	CauseInternational        CauseArea = "International"
	CauseOther                CauseArea = "Other"
)

// AllCauseAreas lists every valid cause area in taxonomy order.
var AllCauseAreas = []CauseArea{
	CauseWorkforceDevelopment,
	CauseAdultEducation,
	CauseAITechnology,
	CauseEconomicMobility,
	CauseRacialEquity,
	CauseYouthDevelopment,
	CauseK12Education,
	CauseHigherEducation,
	CauseHealth,
	CauseHumanServices,
	CauseArtsCulture,
	CauseEnvironment,
	CauseCommunityDevelopment,
	CausePhilanthropy,
	CauseInternational,
	CauseOther,
}

// IsValidCauseArea reports whether s names one of the 16 cause areas.
func IsValidCauseArea(s string) bool {
	for _, c := range AllCauseAreas {
		if string(c) == s {
			return true
		}
	}
	return false
}

// UnknownRecipient is the sentinel name used when no recipient name
// could be extracted from a grant record.
const UnknownRecipient = "Unknown Recipient"

// Grant is a single disbursement extracted from a filing's e-file XML.
// Amounts are whole dollars; records with amount <= 0 never survive parsing.
type Grant struct {
	RecipientName  string `json:"recipient_name"`
	RecipientEIN   string `json:"recipient_ein,omitempty"`
	Amount         int64  `json:"amount"`
	PurposeText    string `json:"purpose_text"`
	RecipientState string `json:"recipient_state,omitempty"`
	RecipientCity  string `json:"recipient_city,omitempty"`
}

// ClassifiedGrant is a Grant plus its cause-area classification.
// Classification is pure: the same Grant always yields the same result.
type ClassifiedGrant struct {
	Grant
	CauseArea      CauseArea `json:"cause_area"`
	RelevanceScore float64   `json:"relevance_score"` // in [0,1]
}

// RecipientType narrows the funder's preferred grantee population.
type RecipientType string

const (
	RecipientNonprofit  RecipientType = "nonprofit"
	RecipientUniversity RecipientType = "university"
	RecipientGovernment RecipientType = "government"
	RecipientAny        RecipientType = "any"
)

// Preferences is the funder profile an analysis is scored against.
type Preferences struct {
	GrantSizeMin  int64         `json:"grant_size_min"`
	GrantSizeMax  int64         `json:"grant_size_max"`
	CauseAreas    []CauseArea   `json:"cause_areas"`
	RecipientType RecipientType `json:"recipient_type"`
}

// DefaultPreferences returns the documented default funder profile.
func DefaultPreferences() Preferences {
	return Preferences{
		GrantSizeMin: 100_000,
		GrantSizeMax: 5_000_000,
		CauseAreas: []CauseArea{
			CauseWorkforceDevelopment,
			CauseAITechnology,
			CauseEconomicMobility,
			CauseAdultEducation,
			CauseRacialEquity,
		},
		RecipientType: RecipientNonprofit,
	}
}

// CauseAreaSet returns the selected cause areas as a membership set.
func (p Preferences) CauseAreaSet() map[CauseArea]bool {
	set := make(map[CauseArea]bool, len(p.CauseAreas))
	for _, c := range p.CauseAreas {
		set[c] = true
	}
	return set
}
