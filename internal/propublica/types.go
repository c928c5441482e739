package propublica

import "github.com/david/foundation-fit/internal/models"

// SearchResponse is the registry's paged search result.
type SearchResponse struct {
	TotalResults  int                   `json:"total_results"`
	NumPages      int                   `json:"num_pages"`
	CurrentPage   int                   `json:"cur_page"`
	Organizations []models.Organization `json:"organizations"`
}

// OrgResponse is the per-organization record: metadata plus every
// annual return on file, split by whether extracted financial data is
// available for it.
type OrgResponse struct {
	Organization       models.Organization `json:"organization"`
	FilingsWithData    []models.Filing     `json:"filings_with_data"`
	FilingsWithoutData []models.Filing     `json:"filings_without_data"`
}

// Filings returns all filings, data-bearing first, most recent first
// within each group.
func (r *OrgResponse) Filings() []models.Filing {
	out := make([]models.Filing, 0, len(r.FilingsWithData)+len(r.FilingsWithoutData))
	out = append(out, r.FilingsWithData...)
	out = append(out, r.FilingsWithoutData...)
	return out
}
