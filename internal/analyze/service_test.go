package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/models"
	"github.com/david/foundation-fit/internal/propublica"
)

type fakeRegistry struct {
	org       *propublica.OrgResponse
	orgErr    error
	objectIDs []string
	idsErr    error
	xml       string
	xmlErr    error
}

func (f *fakeRegistry) Organization(_ context.Context, _ string) (*propublica.OrgResponse, error) {
	return f.org, f.orgErr
}

func (f *fakeRegistry) XMLObjectIDs(_ context.Context, _ string) ([]string, error) {
	return f.objectIDs, f.idsErr
}

func (f *fakeRegistry) FetchXML(_ context.Context, _ string) (string, error) {
	return f.xml, f.xmlErr
}

type fakeNews struct {
	signal *models.LeadershipSignal
	called bool
}

func (f *fakeNews) Signal(_ context.Context, _ string) *models.LeadershipSignal {
	f.called = true
	return f.signal
}

func testAnalyzeConfig() *config.Config {
	return &config.Config{
		Scoring: config.ScoringConfig{
			AlignmentPolicy: "selected",
			Weights: config.DimensionWeights{
				CauseAreaAlignment:  0.40,
				GrantSizeFit:        0.18,
				PriorSimilarFunding: 0.18,
				RecipientTypeMatch:  0.14,
				LeadershipSignals:   0.10,
			},
			WeightsWithoutNews: config.DimensionWeights{
				CauseAreaAlignment:  0.45,
				GrantSizeFit:        0.20,
				PriorSimilarFunding: 0.20,
				RecipientTypeMatch:  0.15,
			},
		},
	}
}

const grantXML = `<?xml version="1.0"?>
<Return xmlns="http://www.irs.gov/efile">
  <ReturnData>
    <IRS990PF>
      <SupplementaryInformationGrp>
        <GrantOrContributionPdDurYrGrp>
          <RecipientBusinessName>
            <BusinessNameLine1Txt>Workforce Alliance</BusinessNameLine1Txt>
          </RecipientBusinessName>
          <Amt>500000</Amt>
          <GrantOrContributionPurposeTxt>job training programs</GrantOrContributionPurposeTxt>
          <RecipientUSAddress>
            <StateAbbreviationCd>CA</StateAbbreviationCd>
          </RecipientUSAddress>
        </GrantOrContributionPdDurYrGrp>
      </SupplementaryInformationGrp>
    </IRS990PF>
  </ReturnData>
</Return>`

func healthyRegistry() *fakeRegistry {
	return &fakeRegistry{
		org: &propublica.OrgResponse{
			Organization: models.Organization{EIN: 131684331, Name: "Acme Foundation"},
			FilingsWithData: []models.Filing{
				{EIN: 131684331, TaxPeriodYear: 2023, FormType: models.FormType990PF},
				{EIN: 131684331, TaxPeriodYear: 2022, FormType: models.FormType990PF},
			},
		},
		objectIDs: []string{"obj-2023", "obj-2022"},
		xml:       grantXML,
	}
}

func TestAnalyze_FullRun(t *testing.T) {
	reg := healthyRegistry()
	news := &fakeNews{signal: &models.LeadershipSignal{
		Articles: []models.NewsArticle{{Title: "press"}},
		Score:    60,
	}}
	svc := NewService(reg, news, testAnalyzeConfig())

	res, err := svc.Analyze(context.Background(), "131684331", Options{
		Preferences: models.DefaultPreferences(),
		WithNews:    true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.TaxYear != 2023 {
		t.Errorf("expected most recent filing year 2023, got %d", res.TaxYear)
	}
	if !res.HasGrantData || len(res.Grants) != 1 {
		t.Fatalf("expected 1 classified grant, got %+v", res.Grants)
	}
	if res.Grants[0].CauseArea != models.CauseWorkforceDevelopment {
		t.Errorf("expected workforce classification, got %s", res.Grants[0].CauseArea)
	}
	if !news.called {
		t.Error("news source was not consulted")
	}
	if res.LeadershipSignals == nil || res.LeadershipSignals.Score != 60 {
		t.Errorf("leadership signal not carried through: %+v", res.LeadershipSignals)
	}
	if len(res.FitScore.Dimensions) != 5 {
		t.Errorf("expected 5 dimensions with news, got %d", len(res.FitScore.Dimensions))
	}
	if len(res.CauseAreaBreakdown) != 1 || res.CauseAreaBreakdown[0].TotalDollars != 500000 {
		t.Errorf("unexpected breakdown: %+v", res.CauseAreaBreakdown)
	}
	if res.GeographicFocus.Type != models.FocusRegional {
		t.Errorf("single-state grants should be regional: %+v", res.GeographicFocus)
	}
}

func TestAnalyze_WithoutNews(t *testing.T) {
	reg := healthyRegistry()
	news := &fakeNews{signal: &models.LeadershipSignal{Score: 90}}
	svc := NewService(reg, news, testAnalyzeConfig())

	res, err := svc.Analyze(context.Background(), "131684331", Options{
		Preferences: models.DefaultPreferences(),
		WithNews:    false,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if news.called {
		t.Error("news source must not be consulted when news is off")
	}
	if res.LeadershipSignals != nil {
		t.Errorf("no signal expected, got %+v", res.LeadershipSignals)
	}
	if len(res.FitScore.Dimensions) != 4 {
		t.Errorf("expected 4 dimensions without news, got %d", len(res.FitScore.Dimensions))
	}
}

func TestAnalyze_OrgNotFound(t *testing.T) {
	reg := &fakeRegistry{orgErr: propublica.ErrNotFound}
	svc := NewService(reg, nil, testAnalyzeConfig())

	_, err := svc.Analyze(context.Background(), "999999999", Options{Preferences: models.DefaultPreferences()})
	if !errors.Is(err, propublica.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyze_NoFilings(t *testing.T) {
	reg := &fakeRegistry{
		org: &propublica.OrgResponse{
			Organization: models.Organization{EIN: 1, Name: "Empty Org"},
		},
	}
	svc := NewService(reg, nil, testAnalyzeConfig())

	_, err := svc.Analyze(context.Background(), "1", Options{Preferences: models.DefaultPreferences()})
	if !errors.Is(err, propublica.ErrNoFilings) {
		t.Fatalf("expected ErrNoFilings, got %v", err)
	}
}

func TestAnalyze_XMLFailureDegrades(t *testing.T) {
	reg := healthyRegistry()
	reg.xmlErr = errors.New("upstream timeout")
	svc := NewService(reg, nil, testAnalyzeConfig())

	res, err := svc.Analyze(context.Background(), "131684331", Options{Preferences: models.DefaultPreferences()})
	if err != nil {
		t.Fatalf("XML failure must not fail the analysis: %v", err)
	}
	if res.HasGrantData || len(res.Grants) != 0 {
		t.Fatalf("expected no grant data, got %+v", res.Grants)
	}
	// Geography falls back to the insufficient-data label.
	if res.GeographicFocus.Label != "National (insufficient data)" {
		t.Errorf("unexpected label %q", res.GeographicFocus.Label)
	}
}

func TestAnalyze_NoObjectIDsDegrades(t *testing.T) {
	reg := healthyRegistry()
	reg.objectIDs = nil
	svc := NewService(reg, nil, testAnalyzeConfig())

	res, err := svc.Analyze(context.Background(), "131684331", Options{Preferences: models.DefaultPreferences()})
	if err != nil {
		t.Fatalf("missing XML must not fail the analysis: %v", err)
	}
	if res.HasGrantData {
		t.Fatal("expected HasGrantData=false")
	}
}
