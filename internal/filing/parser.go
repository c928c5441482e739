package filing

import (
	"log"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/david/foundation-fit/internal/models"
)

// Container paths where grant-record arrays may live, per form type.
// Schedule I tables hold disjoint populations (organizations vs
// individuals), so all paths are unioned. 990-PF aliases can expose the
// same records under two names, so parsing stops at the first path that
// yields records to avoid double-counting.
var (
	scheduleIPaths = []string{
		"IRS990ScheduleI.RecipientTable",
		"IRS990ScheduleI.GrantsOtherAsstToOrgsInUS",
		"IRS990ScheduleI.GrantsOtherAsstToIndivInUS",
	}
	pfPaths = []string{
		"IRS990PF.SupplementaryInformationGrp.GrantOrContributionPdDurYrGrp",
		"IRS990PF.SupplementaryInformationGrp.GrantOrContriPaidDurYrGrp",
		"IRS990PF.SupplementaryInformation.GrantOrContributionPaidDuringYear",
		"IRS990PF.GrantOrContributionPdDurYrGrp",
	}
)

// ParseGrants enumerates all positive-amount grant records in a
// filing's e-file XML. Absence of grant data is a valid state: parse
// failures and unknown form types yield an empty list, never an error.
func ParseGrants(xmlContent string, formType int) []models.Grant {
	doc, err := xmlquery.Parse(strings.NewReader(xmlContent))
	if err != nil {
		log.Printf("filing: XML parse error: %v", err)
		return nil
	}

	returnData, ok := lookupNode(doc, "Return.ReturnData")
	if !ok {
		return nil
	}

	switch formType {
	case models.FormType990PF:
		return parsePFGrants(returnData)
	case models.FormType990EZ:
		// 990-EZ carries no itemized grant schedule.
		return nil
	default:
		return parseScheduleIGrants(returnData)
	}
}

// parseScheduleIGrants unions records across all Schedule I container
// paths.
func parseScheduleIGrants(returnData *xmlquery.Node) []models.Grant {
	var grants []models.Grant
	for _, path := range scheduleIPaths {
		for _, entry := range selectAll(returnData, path) {
			g := extractGrant(entry)
			if g.Amount <= 0 {
				continue
			}
			grants = append(grants, g)
		}
	}
	return grants
}

// parsePFGrants stops at the first container path that yields records.
func parsePFGrants(returnData *xmlquery.Node) []models.Grant {
	for _, path := range pfPaths {
		var grants []models.Grant
		for _, entry := range selectAll(returnData, path) {
			g := extractGrant(entry)
			if g.Amount <= 0 {
				continue
			}
			grants = append(grants, g)
		}
		if len(grants) > 0 {
			return grants
		}
	}
	return nil
}
