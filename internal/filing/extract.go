// Package filing parses grant records out of IRS e-file XML. Schemas
// drift across tax years and form types, so extraction is tolerant by
// design: every field is looked up through an ordered list of known
// path aliases and falls back to a documented default instead of
// failing.
package filing

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/david/foundation-fit/internal/models"
)

// lookupNode walks a dotted path of element names below n, taking the
// first child at each step. Every intermediate segment must be present
// for the traversal to succeed.
func lookupNode(n *xmlquery.Node, path string) (*xmlquery.Node, bool) {
	current := n
	for _, key := range strings.Split(path, ".") {
		if current == nil {
			return nil, false
		}
		current = current.SelectElement(key)
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// firstText returns the trimmed text at the first path whose full
// traversal succeeds, in order. ok=false means no candidate matched.
func firstText(n *xmlquery.Node, paths ...string) (string, bool) {
	for _, path := range paths {
		if node, ok := lookupNode(n, path); ok {
			return strings.TrimSpace(node.InnerText()), true
		}
	}
	return "", false
}

// selectAll enumerates every element at the final segment of path.
// Repeated siblings come back as a slice; a single occurrence is a
// one-element slice, so object-vs-array schema variants normalize
// uniformly.
func selectAll(n *xmlquery.Node, path string) []*xmlquery.Node {
	segments := strings.Split(path, ".")
	current := n
	for _, key := range segments[:len(segments)-1] {
		if current == nil {
			return nil
		}
		current = current.SelectElement(key)
	}
	if current == nil {
		return nil
	}
	return current.SelectElements(segments[len(segments)-1])
}

// Ordered path aliases per field, most recent schema first. These
// reflect observed naming across tax years; order matters.
var (
	namePaths = []string{
		"RecipientBusinessName.BusinessNameLine1Txt",
		"RecipientBusinessName.BusinessNameLine1",
		"RecipientNameBusiness.BusinessNameLine1Txt",
		"RecipientNameBusiness.BusinessNameLine1",
		"RecipientPersonNm",
		"RecipientPersonName",
	}
	amountPaths = []string{
		"CashGrantAmt",
		"Amt",
		"CashGrantAmount",
		"AmountOfCashGrant",
		"NonCashAssistanceAmt",
		"AmountOfNonCashAssistance",
	}
	purposePaths = []string{
		"PurposeOfGrantTxt",
		"PurposeOfGrant",
		"GrantOrContributionPurposeTxt",
		"PurposeOfGrantOrContribution",
	}
	einPaths = []string{
		"RecipientEIN",
		"EINOfRecipient",
	}
	statePaths = []string{
		"USAddress.StateAbbreviationCd",
		"RecipientUSAddress.StateAbbreviationCd",
		"AddressUS.StateAbbreviationCd",
		"USAddress.State",
		"RecipientUSAddress.State",
	}
	cityPaths = []string{
		"USAddress.CityNm",
		"RecipientUSAddress.CityNm",
		"AddressUS.CityNm",
		"USAddress.City",
		"RecipientUSAddress.City",
	}
)

func extractName(entry *xmlquery.Node) string {
	if name, ok := firstText(entry, namePaths...); ok && name != "" {
		return name
	}
	return models.UnknownRecipient
}

// extractAmount accepts numeric or numeric-string values; anything
// non-parseable counts as zero and the record is dropped upstream.
func extractAmount(entry *xmlquery.Node) int64 {
	raw, ok := firstText(entry, amountPaths...)
	if !ok {
		return 0
	}
	raw = strings.ReplaceAll(raw, ",", "")
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(f)
	}
	return 0
}

func extractPurpose(entry *xmlquery.Node) string {
	purpose, _ := firstText(entry, purposePaths...)
	return purpose
}

func extractEIN(entry *xmlquery.Node) string {
	raw, ok := firstText(entry, einPaths...)
	if !ok {
		return ""
	}
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

func extractState(entry *xmlquery.Node) string {
	state, _ := firstText(entry, statePaths...)
	return state
}

func extractCity(entry *xmlquery.Node) string {
	city, _ := firstText(entry, cityPaths...)
	return city
}

// extractGrant assembles one Grant from a record node, applying the
// documented defaults for unresolvable fields.
func extractGrant(entry *xmlquery.Node) models.Grant {
	return models.Grant{
		RecipientName:  extractName(entry),
		RecipientEIN:   extractEIN(entry),
		Amount:         extractAmount(entry),
		PurposeText:    extractPurpose(entry),
		RecipientState: extractState(entry),
		RecipientCity:  extractCity(entry),
	}
}
