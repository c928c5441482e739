package config

import (
	"embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/david/foundation-fit/internal/models"
)

//go:embed config.yaml
var defaultYAML embed.FS

// Config is the full application configuration.
type Config struct {
	ProPublica  ProPublicaConfig  `yaml:"propublica"`
	Cache       CacheConfig       `yaml:"cache"`
	News        NewsConfig        `yaml:"news"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Preferences PreferencesConfig `yaml:"preferences"`
}

// ProPublicaConfig controls the filings registry client.
type ProPublicaConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
}

// CacheConfig sets TTLs per key class. Search results churn quickly,
// organization metadata is stable for hours, and published XML filings
// never change.
type CacheConfig struct {
	SearchTTLMinutes       int `yaml:"search_ttl_minutes"`
	OrganizationTTLMinutes int `yaml:"organization_ttl_minutes"`
	DocumentTTLMinutes     int `yaml:"document_ttl_minutes"`
}

// NewsConfig controls the leadership-signal enrichment.
type NewsConfig struct {
	Enabled               bool `yaml:"enabled"`
	TimeoutSeconds        int  `yaml:"timeout_seconds"`
	ArticleTimeoutSeconds int  `yaml:"article_timeout_seconds"`
	MaxArticles           int  `yaml:"max_articles"`
	MaxArticleFetches     int  `yaml:"max_article_fetches"`
}

// ScoringConfig selects the alignment policy and dimension weights.
type ScoringConfig struct {
	AlignmentPolicy    string           `yaml:"alignment_policy"` // "selected" or "relevance"
	Weights            DimensionWeights `yaml:"weights"`
	WeightsWithoutNews DimensionWeights `yaml:"weights_without_news"`
}

// DimensionWeights holds one weight per fit-score dimension.
// LeadershipSignals is zero in the no-news variant.
type DimensionWeights struct {
	CauseAreaAlignment  float64 `yaml:"cause_area_alignment"`
	GrantSizeFit        float64 `yaml:"grant_size_fit"`
	PriorSimilarFunding float64 `yaml:"prior_similar_funding"`
	RecipientTypeMatch  float64 `yaml:"recipient_type_match"`
	LeadershipSignals   float64 `yaml:"leadership_signals"`
}

// Sum returns the total of all dimension weights.
func (w DimensionWeights) Sum() float64 {
	return w.CauseAreaAlignment + w.GrantSizeFit + w.PriorSimilarFunding +
		w.RecipientTypeMatch + w.LeadershipSignals
}

// PreferencesConfig is the default funder profile applied when a
// request supplies no overrides.
type PreferencesConfig struct {
	GrantSizeMin  int64    `yaml:"grant_size_min"`
	GrantSizeMax  int64    `yaml:"grant_size_max"`
	RecipientType string   `yaml:"recipient_type"`
	CauseAreas    []string `yaml:"cause_areas"`
}

// DefaultPreferences converts the configured defaults into a model
// Preferences, dropping any cause area that is not in the taxonomy.
func (p PreferencesConfig) DefaultPreferences() models.Preferences {
	prefs := models.Preferences{
		GrantSizeMin:  p.GrantSizeMin,
		GrantSizeMax:  p.GrantSizeMax,
		RecipientType: models.RecipientType(p.RecipientType),
	}
	for _, c := range p.CauseAreas {
		if models.IsValidCauseArea(c) {
			prefs.CauseAreas = append(prefs.CauseAreas, models.CauseArea(c))
		}
	}
	if len(prefs.CauseAreas) == 0 || prefs.GrantSizeMin <= 0 || prefs.GrantSizeMax <= prefs.GrantSizeMin {
		return models.DefaultPreferences()
	}
	return prefs
}

// Load reads the embedded config.yaml, or the file named by CONFIG_PATH
// when set. Environment variables of the form ${VAR} are expanded
// before parsing.
func Load() (*Config, error) {
	data, err := defaultYAML.ReadFile("config.yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations whose weights do not sum to 1.0 or
// whose alignment policy is unknown.
func (c *Config) Validate() error {
	if c.Scoring.AlignmentPolicy != "selected" && c.Scoring.AlignmentPolicy != "relevance" {
		return fmt.Errorf("unknown alignment_policy %q", c.Scoring.AlignmentPolicy)
	}
	if diff := math.Abs(c.Scoring.Weights.Sum() - 1.0); diff > 1e-9 {
		return fmt.Errorf("scoring weights sum to %v, want 1.0", c.Scoring.Weights.Sum())
	}
	if diff := math.Abs(c.Scoring.WeightsWithoutNews.Sum() - 1.0); diff > 1e-9 {
		return fmt.Errorf("scoring weights_without_news sum to %v, want 1.0", c.Scoring.WeightsWithoutNews.Sum())
	}
	if c.Scoring.WeightsWithoutNews.LeadershipSignals != 0 {
		return fmt.Errorf("weights_without_news must not weight leadership signals")
	}
	return nil
}
