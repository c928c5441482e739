// Package news derives a leadership signal from recent press coverage:
// a Google News RSS search scoped to alignment topics, optional
// article-page fetches for quote extraction, and a banded 0-100 score.
// Every failure path degrades to a weaker signal instead of an error;
// analysis never fails because a news site was down.
package news

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"
	"github.com/gocolly/colly/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/models"
)

const userAgent = "Mozilla/5.0 (compatible; FoundationAnalyzer/1.0)"

// maxSignalArticles caps how many articles the final signal carries.
const maxSignalArticles = 8

var sentenceSplit = regexp.MustCompile(`[.!?]+`)
var whitespace = regexp.MustCompile(`\s+`)

// Scraper fetches and scores press coverage for one foundation.
type Scraper struct {
	rssBaseURL string
	http       *http.Client
	cfg        config.NewsConfig
	strip      *bluemonday.Policy
}

// NewScraper builds a scraper from config.
func NewScraper(cfg config.NewsConfig) *Scraper {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 10
	}
	if cfg.MaxArticleFetches <= 0 {
		cfg.MaxArticleFetches = 3
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Scraper{
		rssBaseURL: "https://news.google.com/rss/search",
		http:       &http.Client{Timeout: timeout},
		cfg:        cfg,
		strip:      bluemonday.StrictPolicy(),
	}
}

// Signal searches recent coverage of the foundation and scores it.
// A failed RSS fetch yields the zero signal.
func (s *Scraper) Signal(ctx context.Context, foundationName string) *models.LeadershipSignal {
	articles := s.searchRSS(ctx, foundationName)

	keywords := newKeywordSet()
	var quotes []string

	// Fetch the first few article pages for quote extraction. Google
	// News redirect links cannot be resolved without a browser and are
	// skipped; so is any page that fails to load.
	limit := s.cfg.MaxArticleFetches
	if limit > len(articles) {
		limit = len(articles)
	}
	for _, a := range articles[:limit] {
		if a.URL == "" || strings.Contains(a.URL, "news.google.com") {
			continue
		}
		body, err := s.fetchArticle(ctx, a.URL)
		if err != nil {
			continue
		}
		quotes = collectQuotes(extractArticleText(body), quotes, keywords)
	}

	// Titles and snippets count toward keyword diversity even when no
	// article page could be read.
	for _, a := range articles {
		keywords.scan(a.Title + " " + a.Snippet)
	}

	score := Score(len(articles), len(quotes), keywords.len())

	keep := articles
	if len(keep) > maxSignalArticles {
		keep = keep[:maxSignalArticles]
	}
	return &models.LeadershipSignal{
		Articles:       keep,
		RelevantQuotes: quotes,
		KeywordsFound:  keywords.slice(),
		Score:          score,
	}
}

// searchRSS queries Google News for the foundation name constrained to
// the alignment topics. Errors are logged and yield no articles.
func (s *Scraper) searchRSS(ctx context.Context, foundationName string) []models.NewsArticle {
	query := fmt.Sprintf("%q (%s)", foundationName, strings.Join(searchTerms, " OR "))
	u := fmt.Sprintf("%s?q=%s&when=6m&ceid=US:en&hl=en-US&gl=US", s.rssBaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		log.Printf("[news] build rss request: %v", err)
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		log.Printf("[news] rss fetch: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[news] rss fetch: status %d", resp.StatusCode)
		return nil
	}

	doc, err := xmlquery.Parse(resp.Body)
	if err != nil {
		log.Printf("[news] rss parse: %v", err)
		return nil
	}

	var articles []models.NewsArticle
	for _, item := range xmlquery.Find(doc, "//item") {
		if len(articles) >= s.cfg.MaxArticles {
			break
		}
		articles = append(articles, models.NewsArticle{
			Title:         childText(item, "title"),
			URL:           decodeGoogleNewsURL(childText(item, "link")),
			PublishedDate: formatPubDate(childText(item, "pubDate")),
			Source:        childText(item, "source"),
			Snippet:       s.cleanSnippet(childText(item, "description")),
		})
	}
	return articles
}

func childText(n *xmlquery.Node, name string) string {
	if c := n.SelectElement(name); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}

// cleanSnippet strips all markup from an RSS description.
func (s *Scraper) cleanSnippet(description string) string {
	return strings.TrimSpace(html.UnescapeString(s.strip.Sanitize(description)))
}

func formatPubDate(pubDate string) string {
	if pubDate == "" {
		return ""
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, pubDate); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return pubDate
}

// decodeGoogleNewsURL unwraps redirect links that carry the real URL
// in a query parameter. Encoded news.google.com article links cannot
// be unwrapped without following the redirect and pass through as-is.
func decodeGoogleNewsURL(raw string) string {
	if strings.Contains(raw, "news.google.com/rss/articles/") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if real := parsed.Query().Get("url"); real != "" {
		return real
	}
	if real := parsed.Query().Get("u"); real != "" {
		return real
	}
	return raw
}

// fetchArticle downloads one article page body.
func (s *Scraper) fetchArticle(ctx context.Context, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowedDomains(parsed.Host),
		colly.MaxBodySize(2*1024*1024),
		colly.DetectCharset(),
	)
	timeout := time.Duration(s.cfg.ArticleTimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	c.SetRequestTimeout(timeout)

	var body string
	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(target); err != nil {
		return "", fmt.Errorf("visit failed: %w", err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	return body, nil
}

// extractArticleText pulls readable paragraph text out of an article
// page, preferring the article or main element and dropping chrome.
func extractArticleText(htmlBody string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return ""
	}

	doc.Find("script, style, nav, header, footer, aside").Remove()

	content := doc.Selection
	if article := doc.Find("article"); article.Length() > 0 {
		content = article.First()
	} else if main := doc.Find("main"); main.Length() > 0 {
		content = main.First()
	}

	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, ". ")
}

// collectQuotes scans article text for sentences mentioning alignment
// keywords. At most 5 quotes are kept, each 40-500 characters after
// whitespace normalization, de-duplicated.
func collectQuotes(text string, quotes []string, keywords *keywordSet) []string {
	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 30 || len(sentence) >= 500 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range alignmentKeywords {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			keywords.add(kw)
			if len(quotes) >= 5 {
				continue
			}
			cleaned := strings.TrimSpace(whitespace.ReplaceAllString(sentence, " "))
			if len(cleaned) > 40 && !containsString(quotes, cleaned) {
				quotes = append(quotes, cleaned)
			}
		}
	}
	return quotes
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// keywordSet is an insertion-ordered string set.
type keywordSet struct {
	seen  map[string]bool
	order []string
}

func newKeywordSet() *keywordSet {
	return &keywordSet{seen: make(map[string]bool)}
}

func (k *keywordSet) add(kw string) {
	if !k.seen[kw] {
		k.seen[kw] = true
		k.order = append(k.order, kw)
	}
}

// scan adds every alignment keyword that appears in text.
func (k *keywordSet) scan(text string) {
	lower := strings.ToLower(text)
	for _, kw := range alignmentKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			k.add(kw)
		}
	}
}

func (k *keywordSet) len() int { return len(k.order) }

func (k *keywordSet) slice() []string {
	out := make([]string, len(k.order))
	copy(out, k.order)
	return out
}
