// Command analyze runs one foundation analysis from the terminal and
// renders the results as tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/david/foundation-fit/internal/analyze"
	"github.com/david/foundation-fit/internal/cache"
	"github.com/david/foundation-fit/internal/classify"
	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/format"
	"github.com/david/foundation-fit/internal/models"
	"github.com/david/foundation-fit/internal/news"
	"github.com/david/foundation-fit/internal/propublica"
)

func main() {
	ein := flag.String("ein", "", "EIN of the foundation to analyze (required)")
	min := flag.Int64("min", 0, "preferred minimum grant size")
	max := flag.Int64("max", 0, "preferred maximum grant size")
	causes := flag.String("causes", "", "comma-separated cause areas")
	recipient := flag.String("recipient", "", "recipient type: nonprofit, university, government, any")
	withNews := flag.Bool("news", true, "include press-coverage enrichment")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall analysis timeout")
	flag.Parse()

	if *ein == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	prefs := cfg.Preferences.DefaultPreferences()
	if *min > 0 {
		prefs.GrantSizeMin = *min
	}
	if *max > prefs.GrantSizeMin {
		prefs.GrantSizeMax = *max
	}
	if *causes != "" {
		var areas []models.CauseArea
		for _, c := range splitCSV(*causes) {
			if models.IsValidCauseArea(c) {
				areas = append(areas, models.CauseArea(c))
			} else {
				log.Printf("Ignoring unknown cause area %q", c)
			}
		}
		if len(areas) > 0 {
			prefs.CauseAreas = areas
		}
	}
	if *recipient != "" {
		prefs.RecipientType = models.RecipientType(*recipient)
	}

	store := cache.New()
	registry := propublica.New(cfg.ProPublica, cfg.Cache, store)
	service := analyze.NewService(registry, news.NewScraper(cfg.News), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := service.Analyze(ctx, *ein, analyze.Options{
		Preferences: prefs,
		WithNews:    *withNews && cfg.News.Enabled,
	})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	render(result)
}

func render(r *models.AnalysisResult) {
	fmt.Printf("\n%s (EIN %s)\n", r.Organization.Name, format.EIN(fmt.Sprintf("%09d", r.Organization.EIN)))
	fmt.Printf("Tax year %d, %s filing\n", r.TaxYear, format.FormTypeName(r.Filing.FormType))
	if code := r.Organization.NteeCode; code != "" {
		cause, _ := classify.ByNTEECode(code)
		fmt.Printf("NTEE %s: %s (cause area: %s)\n", code, classify.NTEEDescription(code), cause)
	}
	fmt.Printf("Geographic focus: %s\n", r.GeographicFocus.Label)
	if !r.HasGrantData {
		fmt.Println("No itemized grant data available; scores use filing-level data only.")
	}
	fmt.Printf("\nOverall fit score: %d/100\n\n", r.FitScore.OverallScore)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Fit Score Dimensions")
	t.AppendHeader(table.Row{"Dimension", "Score", "Weight", "Explanation"})
	for _, d := range r.FitScore.Dimensions {
		t.AppendRow(table.Row{d.Name, d.Score, fmt.Sprintf("%.0f%%", d.Weight*100), d.Explanation})
	}
	t.Render()

	if len(r.CauseAreaBreakdown) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Cause Area Breakdown")
		t.AppendHeader(table.Row{"Cause Area", "Dollars", "Grants", "Share"})
		for _, b := range r.CauseAreaBreakdown {
			t.AppendRow(table.Row{b.CauseArea, format.Currency(b.TotalDollars), b.GrantCount, fmt.Sprintf("%d%%", b.Percentage)})
		}
		t.Render()
	}

	if len(r.TopRecipients) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Top Recipients")
		t.AppendHeader(table.Row{"Recipient", "Amount", "Cause Area", "State"})
		for _, g := range r.TopRecipients {
			t.AppendRow(table.Row{g.RecipientName, format.Currency(g.Amount), g.CauseArea, g.RecipientState})
		}
		t.Render()
	}

	if r.LeadershipSignals != nil && len(r.LeadershipSignals.Articles) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Recent Press Coverage")
		t.AppendHeader(table.Row{"Date", "Source", "Title"})
		for _, a := range r.LeadershipSignals.Articles {
			t.AppendRow(table.Row{a.PublishedDate, a.Source, a.Title})
		}
		t.Render()
	}
}

func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
