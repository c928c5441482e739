package classify

import (
	"testing"

	"github.com/david/foundation-fit/internal/models"
)

func TestGrant_WorkforceKeywords(t *testing.T) {
	g := Grant(models.Grant{
		RecipientName: "Year Up Inc",
		Amount:        500_000,
		PurposeText:   "Support for job training and career pathways programs",
	})
	if g.CauseArea != models.CauseWorkforceDevelopment {
		t.Fatalf("expected Workforce Development, got %s", g.CauseArea)
	}
	if g.RelevanceScore != 1.0 {
		t.Fatalf("expected relevance 1.0, got %v", g.RelevanceScore)
	}
}

func TestGrant_HighestRelevanceWins(t *testing.T) {
	// Matches both the generic equity pattern (0.4) and the specific
	// workforce pattern (1.0); the higher score must win regardless of
	// table order.
	g := Grant(models.Grant{
		RecipientName: "Equity Alliance",
		PurposeText:   "inclusive workforce development for underserved communities",
	})
	if g.CauseArea != models.CauseWorkforceDevelopment {
		t.Fatalf("expected Workforce Development, got %s", g.CauseArea)
	}
	if g.RelevanceScore != 1.0 {
		t.Fatalf("expected relevance 1.0, got %v", g.RelevanceScore)
	}
}

func TestGrant_FallbackOther(t *testing.T) {
	g := Grant(models.Grant{RecipientName: "Xyzzy Trust", PurposeText: "unrestricted gift"})
	if g.CauseArea != models.CauseOther {
		t.Fatalf("expected Other, got %s", g.CauseArea)
	}
	if g.RelevanceScore != 0.05 {
		t.Fatalf("expected baseline 0.05, got %v", g.RelevanceScore)
	}
}

func TestGrant_NameAloneClassifies(t *testing.T) {
	// Purpose text may be empty; the recipient name still carries signal.
	g := Grant(models.Grant{RecipientName: "Metropolitan Museum of Art"})
	if g.CauseArea != models.CauseArtsCulture {
		t.Fatalf("expected Arts & Culture, got %s", g.CauseArea)
	}
}

func TestGrant_Idempotent(t *testing.T) {
	in := models.Grant{RecipientName: "Per Scholas", PurposeText: "tech training for adults"}
	a := Grant(in)
	b := Grant(in)
	if a != b {
		t.Fatalf("classification not deterministic: %+v vs %+v", a, b)
	}
}

func TestGrant_AlwaysInRangeAndValid(t *testing.T) {
	samples := []models.Grant{
		{RecipientName: "Food Bank of NYC", PurposeText: "food pantry support"},
		{RecipientName: "Sierra Club Foundation", PurposeText: "climate conservation"},
		{RecipientName: "City College", PurposeText: "scholarships for undergraduates"},
		{RecipientName: "", PurposeText: ""},
		{RecipientName: "Global Health Initiative", PurposeText: "overseas clinics"},
	}
	for _, s := range samples {
		g := Grant(s)
		if g.RelevanceScore < 0 || g.RelevanceScore > 1 {
			t.Errorf("relevance out of range for %q: %v", s.RecipientName, g.RelevanceScore)
		}
		if !models.IsValidCauseArea(string(g.CauseArea)) {
			t.Errorf("invalid cause area %q for %q", g.CauseArea, s.RecipientName)
		}
	}
}

func TestByNTEECode(t *testing.T) {
	cases := []struct {
		code      string
		wantCause models.CauseArea
		wantRel   float64
	}{
		{"J20", models.CauseWorkforceDevelopment, 1.0}, // subcode J2
		{"J99", models.CauseWorkforceDevelopment, 1.0}, // major group J
		{"B60", models.CauseAdultEducation, 0.9},
		{"S20", models.CauseEconomicMobility, 0.6},
		{"A51", models.CauseArtsCulture, 0.05},
		{"", models.CauseOther, 0.05},
		{"99", models.CauseOther, 0.05},
		{"j20", models.CauseWorkforceDevelopment, 1.0}, // case-insensitive
	}
	for _, tc := range cases {
		cause, rel := ByNTEECode(tc.code)
		if cause != tc.wantCause || rel != tc.wantRel {
			t.Errorf("ByNTEECode(%q) = %s/%v, want %s/%v", tc.code, cause, rel, tc.wantCause, tc.wantRel)
		}
	}
}

func TestNTEEDescription(t *testing.T) {
	if got := NTEEDescription("J22"); got != "Employment" {
		t.Fatalf("got %s", got)
	}
	if got := NTEEDescription(""); got != "Unknown" {
		t.Fatalf("got %s", got)
	}
}
