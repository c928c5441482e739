package models

// FitScoreDimension is one scored axis of the funder-fit computation.
// Explanations are part of the contract: they must reflect the actual
// inputs, not canned text.
type FitScoreDimension struct {
	Name        string  `json:"name"`
	Score       int     `json:"score"`  // 0-100
	Weight      float64 `json:"weight"` // weights across dimensions sum to 1.0
	Explanation string  `json:"explanation"`
}

// FitScoreResult is the weighted composite of all dimensions.
type FitScoreResult struct {
	OverallScore      int                 `json:"overall_score"` // 0-100
	Dimensions        []FitScoreDimension `json:"dimensions"`
	GrantCount        int                 `json:"grant_count"`
	TotalGrantDollars int64               `json:"total_grant_dollars"`
}

// GeographicFocusType is National or Regional.
type GeographicFocusType string

const (
	FocusNational GeographicFocusType = "National"
	FocusRegional GeographicFocusType = "Regional"
)

// GeographicFocus summarizes where a foundation's grantees sit.
type GeographicFocus struct {
	Type   GeographicFocusType `json:"type"`
	States []string            `json:"states"`
	Label  string              `json:"label"`
}

// CauseAreaBreakdown is the per-cause-area rollup for reporting.
// Percentages are rounded independently per bucket and are not
// guaranteed to sum to 100.
type CauseAreaBreakdown struct {
	CauseArea      CauseArea `json:"cause_area"`
	TotalDollars   int64     `json:"total_dollars"`
	GrantCount     int       `json:"grant_count"`
	Percentage     int       `json:"percentage"`
	RelevanceScore float64   `json:"relevance_score"`
}

// NewsArticle is one press mention surfaced by the news search.
type NewsArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date"`
	Source        string `json:"source"`
	Snippet       string `json:"snippet"`
}

// LeadershipSignal is the pre-scored press-coverage input to the fit
// score. The score is 0-100 and already combines volume, quote depth
// and keyword diversity.
type LeadershipSignal struct {
	Articles       []NewsArticle `json:"articles"`
	RelevantQuotes []string      `json:"relevant_quotes"`
	KeywordsFound  []string      `json:"keywords_found"`
	Score          int           `json:"score"`
}

// AnalysisResult is the full output of analyzing one organization.
// HasGrantData=false means no itemized grant records were available and
// consumers should fall back to filing-level aggregate financials.
type AnalysisResult struct {
	Organization       Organization         `json:"organization"`
	Filing             Filing               `json:"filing"`
	TaxYear            int                  `json:"tax_year"`
	Grants             []ClassifiedGrant    `json:"grants"`
	CauseAreaBreakdown []CauseAreaBreakdown `json:"cause_area_breakdown"`
	TopRecipients      []ClassifiedGrant    `json:"top_recipients"`
	FitScore           FitScoreResult       `json:"fit_score"`
	GeographicFocus    GeographicFocus      `json:"geographic_focus"`
	LeadershipSignals  *LeadershipSignal    `json:"leadership_signals,omitempty"`
	HasGrantData       bool                 `json:"has_grant_data"`
}

// Organization is the registry's organization record.
type Organization struct {
	EIN        int64  `json:"ein"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zipcode    string `json:"zipcode"`
	NteeCode   string `json:"ntee_code"`
	Subsection int    `json:"subseccd"`
	RulingDate string `json:"ruling_date"`
	TaxPeriod  int    `json:"tax_period"`
	AssetAmt   int64  `json:"asset_amt"`
	IncomeAmt  int64  `json:"income_amt"`
	RevenueAmt int64  `json:"revenue_amt"`
}

// Filing is one annual return on record. FormType: 0 = Form 990,
// 1 = 990-EZ (no itemized grants), 2 = 990-PF.
type Filing struct {
	EIN           int64  `json:"ein"`
	TaxPeriod     int    `json:"tax_prd"`
	TaxPeriodYear int    `json:"tax_prd_yr"`
	FormType      int    `json:"formtype"`
	PDFURL        string `json:"pdf_url"`
	TotalRevenue  int64  `json:"totrevenue"`
	TotalExpenses int64  `json:"totfuncexpns"`
	TotalAssets   int64  `json:"totassetsend"`
	Contributions int64  `json:"totcntrbgfts"`
}

// Form type discriminators as reported by the filings registry.
const (
	FormType990   = 0
	FormType990EZ = 1
	FormType990PF = 2
)
