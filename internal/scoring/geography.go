package scoring

import (
	"fmt"
	"strings"

	"github.com/david/foundation-fit/internal/models"
)

type region struct {
	name   string
	states map[string]bool
}

// usRegions is an ordered decision table: the first region containing
// at least 60% of the distinct states wins. Order is authoritative.
var usRegions = []region{
	{"Northeast", stateSet("CT", "ME", "MA", "NH", "RI", "VT", "NJ", "NY", "PA")},
	{"Southeast", stateSet("AL", "AR", "FL", "GA", "KY", "LA", "MS", "NC", "SC", "TN", "VA", "WV")},
	{"Midwest", stateSet("IL", "IN", "IA", "KS", "MI", "MN", "MO", "NE", "ND", "OH", "SD", "WI")},
	{"Southwest", stateSet("AZ", "NM", "OK", "TX")},
	{"West", stateSet("AK", "CA", "CO", "HI", "ID", "MT", "NV", "OR", "UT", "WA", "WY")},
	{"Mid-Atlantic", stateSet("DC", "DE", "MD")},
}

func stateSet(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

// GeographicFocus derives a National/Regional determination from the
// grants' recipient states. Deterministic decision table, not
// clustering: the 60% threshold is compared as floats, unrounded.
func GeographicFocus(grants []models.ClassifiedGrant) models.GeographicFocus {
	var unique []string
	seen := make(map[string]bool)
	for _, g := range grants {
		s := g.RecipientState
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		unique = append(unique, s)
	}

	if len(unique) == 0 {
		return models.GeographicFocus{
			Type:   models.FocusNational,
			States: []string{},
			Label:  "National (insufficient data)",
		}
	}

	if len(unique) >= 10 {
		return models.GeographicFocus{Type: models.FocusNational, States: unique, Label: "National"}
	}

	for _, r := range usRegions {
		inRegion := 0
		for _, s := range unique {
			if r.states[s] {
				inRegion++
			}
		}
		if float64(inRegion) >= float64(len(unique))*0.6 {
			return models.GeographicFocus{
				Type:   models.FocusRegional,
				States: unique,
				Label:  fmt.Sprintf("Regional: %s (%s)", r.name, strings.Join(unique, ", ")),
			}
		}
	}

	if len(unique) <= 3 {
		return models.GeographicFocus{
			Type:   models.FocusRegional,
			States: unique,
			Label:  "Regional: " + strings.Join(unique, ", "),
		}
	}

	return models.GeographicFocus{
		Type:   models.FocusNational,
		States: unique,
		Label:  fmt.Sprintf("National (%d states)", len(unique)),
	}
}
