// Package analyze orchestrates one full foundation analysis: registry
// lookup, e-file XML extraction, classification, press-signal
// enrichment and scoring.
package analyze

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/david/foundation-fit/internal/classify"
	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/filing"
	"github.com/david/foundation-fit/internal/models"
	"github.com/david/foundation-fit/internal/propublica"
	"github.com/david/foundation-fit/internal/scoring"
)

// topRecipientCount caps the recipients list in the result.
const topRecipientCount = 20

// Registry is the filings-registry surface the analyzer needs.
// *propublica.Client satisfies it.
type Registry interface {
	Organization(ctx context.Context, ein string) (*propublica.OrgResponse, error)
	XMLObjectIDs(ctx context.Context, ein string) ([]string, error)
	FetchXML(ctx context.Context, objectID string) (string, error)
}

// NewsSource produces a leadership signal for a foundation name. It
// never fails; missing coverage is a zero signal.
type NewsSource interface {
	Signal(ctx context.Context, foundationName string) *models.LeadershipSignal
}

// Options tune one analysis run.
type Options struct {
	Preferences models.Preferences
	WithNews    bool
}

// Service runs analyses. Safe for concurrent use.
type Service struct {
	registry Registry
	news     NewsSource
	cfg      *config.Config
}

func NewService(registry Registry, news NewsSource, cfg *config.Config) *Service {
	return &Service{registry: registry, news: news, cfg: cfg}
}

// Analyze produces the full analysis for one EIN.
//
// Registry lookup errors propagate: propublica.ErrNotFound when the
// organization is unknown, propublica.ErrNoFilings when it has no
// data-bearing filings. XML-path failures degrade to an analysis
// without grant-level data rather than failing the run.
func (s *Service) Analyze(ctx context.Context, ein string, opts Options) (*models.AnalysisResult, error) {
	runID := shortID()
	log.Printf("[analyze %s] start ein=%s news=%v", runID, ein, opts.WithNews)

	org, err := s.registry.Organization(ctx, ein)
	if err != nil {
		return nil, err
	}
	if len(org.FilingsWithData) == 0 {
		return nil, fmt.Errorf("organization %s: %w", ein, propublica.ErrNoFilings)
	}

	// Most recent data-bearing filing. The registry returns filings
	// newest first.
	recent := org.FilingsWithData[0]

	var (
		grants []models.ClassifiedGrant
		signal *models.LeadershipSignal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grants = s.extractGrants(gctx, runID, ein, recent.FormType)
		return nil
	})
	if opts.WithNews && s.news != nil {
		g.Go(func() error {
			signal = s.news.Signal(gctx, org.Organization.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	withNews := opts.WithNews && s.news != nil
	engine := scoring.NewEngine(s.cfg.Scoring, withNews)
	fitScore := engine.FitScore(grants, signal, opts.Preferences)

	result := &models.AnalysisResult{
		Organization:       org.Organization,
		Filing:             recent,
		TaxYear:            recent.TaxPeriodYear,
		Grants:             grants,
		CauseAreaBreakdown: scoring.CauseAreaBreakdown(grants),
		TopRecipients:      scoring.TopRecipients(grants, topRecipientCount),
		FitScore:           fitScore,
		GeographicFocus:    scoring.GeographicFocus(grants),
		LeadershipSignals:  signal,
		HasGrantData:       len(grants) > 0,
	}

	log.Printf("[analyze %s] done ein=%s grants=%d score=%d", runID, ein, len(grants), fitScore.OverallScore)
	return result, nil
}

// extractGrants fetches the most recent e-file XML and returns its
// classified grants. Every failure here degrades to no grant data.
func (s *Service) extractGrants(ctx context.Context, runID, ein string, formType int) []models.ClassifiedGrant {
	ids, err := s.registry.XMLObjectIDs(ctx, ein)
	if err != nil {
		log.Printf("[analyze %s] xml object ids: %v", runID, err)
		return nil
	}
	if len(ids) == 0 {
		log.Printf("[analyze %s] no xml documents for ein=%s", runID, ein)
		return nil
	}

	xmlContent, err := s.registry.FetchXML(ctx, ids[0])
	if err != nil {
		log.Printf("[analyze %s] fetch xml: %v", runID, err)
		return nil
	}

	raw := filing.ParseGrants(xmlContent, formType)
	if len(raw) == 0 {
		return nil
	}
	return classify.Grants(raw)
}

// shortID is a compact correlation ID for log lines.
func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
