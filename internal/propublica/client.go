// Package propublica is the client for the ProPublica Nonprofit
// Explorer: organization search and metadata via the JSON API, raw
// e-file XML via the document download endpoint. All lookups run
// through a shared TTL cache and a global rate limiter so bursts of
// analyses do not hammer the upstream.
package propublica

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/david/foundation-fit/internal/cache"
	"github.com/david/foundation-fit/internal/config"
)

var (
	// ErrNotFound means the registry has no record of the organization.
	ErrNotFound = errors.New("organization not found")
	// ErrNoFilings means the organization exists but has no e-filed
	// returns to analyze.
	ErrNoFilings = errors.New("no filings available")
)

// Client talks to the Nonprofit Explorer. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	store   *cache.TTLCache

	searchTTL time.Duration
	orgTTL    time.Duration
	docTTL    time.Duration
}

// New builds a client from config. store may be shared with other
// components; keys are namespaced per endpoint.
func New(cfg config.ProPublicaConfig, cacheCfg config.CacheConfig, store *cache.TTLCache) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 1.0
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		store:     store,
		searchTTL: time.Duration(cacheCfg.SearchTTLMinutes) * time.Minute,
		orgTTL:    time.Duration(cacheCfg.OrganizationTTLMinutes) * time.Minute,
		docTTL:    time.Duration(cacheCfg.DocumentTTLMinutes) * time.Minute,
	}
}

// NormalizeEIN strips everything but digits from an EIN as entered by
// a user ("13-1684331" and "131684331" are the same organization).
func NormalizeEIN(ein string) string {
	var b strings.Builder
	for _, r := range ein {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Search queries the registry by organization name. page is zero-based.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	key := fmt.Sprintf("search:%s:%d", query, page)
	if v, ok := c.store.Get(key); ok {
		return v.(*SearchResponse), nil
	}

	u := fmt.Sprintf("%s/api/v2/search.json?q=%s&page=%d", c.baseURL, url.QueryEscape(query), page)
	var result SearchResponse
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	c.store.Set(key, &result, c.searchTTL)
	return &result, nil
}

// Organization fetches metadata and the filing index for one EIN.
func (c *Client) Organization(ctx context.Context, ein string) (*OrgResponse, error) {
	ein = NormalizeEIN(ein)
	key := "org:" + ein
	if v, ok := c.store.Get(key); ok {
		return v.(*OrgResponse), nil
	}

	u := fmt.Sprintf("%s/api/v2/organizations/%s.json", c.baseURL, ein)
	var result OrgResponse
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("organization %s: %w", ein, err)
	}

	c.store.Set(key, &result, c.orgTTL)
	return &result, nil
}

// XMLObjectIDs scrapes the organization's public page for e-file XML
// download links. The API does not expose object IDs, but the HTML
// page links every available XML document. Order on the page is most
// recent first and is preserved; duplicates collapse.
func (c *Client) XMLObjectIDs(ctx context.Context, ein string) ([]string, error) {
	ein = NormalizeEIN(ein)
	key := "xmlids:" + ein
	if v, ok := c.store.Get(key); ok {
		return v.([]string), nil
	}

	u := fmt.Sprintf("%s/organizations/%s", c.baseURL, ein)
	body, err := c.getBody(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("object ids %s: %w", ein, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("object ids %s: parse page: %w", ein, err)
	}

	seen := make(map[string]bool)
	var ids []string
	doc.Find(`a[href*="object_id="]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !strings.Contains(href, "download-xml") {
			return
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		id := parsed.Query().Get("object_id")
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	})

	c.store.Set(key, ids, c.orgTTL)
	return ids, nil
}

// FetchXML downloads one e-file XML document by object ID. Published
// filings are immutable, so these cache on the long TTL.
func (c *Client) FetchXML(ctx context.Context, objectID string) (string, error) {
	key := "xml:" + objectID
	if v, ok := c.store.Get(key); ok {
		return v.(string), nil
	}

	u := fmt.Sprintf("%s/download-xml?object_id=%s", c.baseURL, url.QueryEscape(objectID))
	body, err := c.getBody(ctx, u)
	if err != nil {
		return "", fmt.Errorf("fetch xml %s: %w", objectID, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("fetch xml %s: read body: %w", objectID, err)
	}

	xml := string(data)
	c.store.Set(key, xml, c.docTTL)
	return xml, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	body, err := c.getBody(ctx, u)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getBody(ctx context.Context, u string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "foundation-fit/1.0")
	req.Header.Set("Accept", "application/json, text/html, application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
