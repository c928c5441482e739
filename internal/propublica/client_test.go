package propublica

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/david/foundation-fit/internal/cache"
	"github.com/david/foundation-fit/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(config.ProPublicaConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
		RateLimitRPS:   1000, // tests should not sleep
	}, config.CacheConfig{
		SearchTTLMinutes:       5,
		OrganizationTTLMinutes: 60,
		DocumentTTLMinutes:     1440,
	}, cache.New())
	return c, srv
}

func TestNormalizeEIN(t *testing.T) {
	cases := map[string]string{
		"13-1684331": "131684331",
		"131684331":  "131684331",
		" 13 168 ":   "13168",
		"":           "",
	}
	for in, want := range cases {
		if got := NormalizeEIN(in); got != want {
			t.Errorf("NormalizeEIN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearch(t *testing.T) {
	var hits int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if r.URL.Path != "/api/v2/search.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "ford foundation" {
			t.Errorf("unexpected query %q", q)
		}
		w.Write([]byte(`{"total_results":1,"num_pages":1,"cur_page":0,
			"organizations":[{"ein":131684331,"name":"Ford Foundation","state":"NY","ntee_code":"T20"}]}`))
	}))

	res, err := c.Search(context.Background(), "ford foundation", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Organizations) != 1 || res.Organizations[0].EIN != 131684331 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Organizations[0].NteeCode != "T20" {
		t.Fatalf("ntee code not decoded: %+v", res.Organizations[0])
	}

	// Second identical call is served from cache.
	if _, err := c.Search(context.Background(), "ford foundation", 0); err != nil {
		t.Fatalf("cached Search: %v", err)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", n)
	}
}

func TestOrganization(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/organizations/131684331.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"organization":{"ein":131684331,"name":"Ford Foundation"},
			"filings_with_data":[{"ein":131684331,"tax_prd":202312,"tax_prd_yr":2023,"formtype":2,"totrevenue":500}],
			"filings_without_data":[{"ein":131684331,"tax_prd":202212,"tax_prd_yr":2022,"formtype":2}]}`))
	}))

	// Dashed input must resolve to the same record.
	res, err := c.Organization(context.Background(), "13-1684331")
	if err != nil {
		t.Fatalf("Organization: %v", err)
	}
	if res.Organization.Name != "Ford Foundation" {
		t.Fatalf("unexpected org: %+v", res.Organization)
	}
	if len(res.FilingsWithData) != 1 || res.FilingsWithData[0].TaxPeriodYear != 2023 {
		t.Fatalf("unexpected filings: %+v", res.FilingsWithData)
	}
	if all := res.Filings(); len(all) != 2 || all[0].TaxPeriodYear != 2023 {
		t.Fatalf("Filings() should list data-bearing filings first: %+v", all)
	}
}

func TestOrganization_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.Organization(context.Background(), "999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestXMLObjectIDs(t *testing.T) {
	page := `<html><body>
		<a href="/nonprofits/download-xml?object_id=202303199349300001">XML 2023</a>
		<a href="/nonprofits/download-xml?object_id=202203189349300002">XML 2022</a>
		<a href="/nonprofits/download-xml?object_id=202303199349300001">XML 2023 again</a>
		<a href="/nonprofits/display_990/1/foo?object_id=999">not a download link</a>
	</body></html>`
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))

	ids, err := c.XMLObjectIDs(context.Background(), "131684331")
	if err != nil {
		t.Fatalf("XMLObjectIDs: %v", err)
	}
	want := []string{"202303199349300001", "202203189349300002"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %v", len(want), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order not preserved: got %v", ids)
		}
	}
}

func TestFetchXML_CachesDocument(t *testing.T) {
	var hits int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if got := r.URL.Query().Get("object_id"); got != "123" {
			t.Errorf("unexpected object_id %q", got)
		}
		w.Write([]byte(`<Return></Return>`))
	}))

	for i := 0; i < 2; i++ {
		xml, err := c.FetchXML(context.Background(), "123")
		if err != nil {
			t.Fatalf("FetchXML: %v", err)
		}
		if xml != "<Return></Return>" {
			t.Fatalf("unexpected body %q", xml)
		}
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", n)
	}
}
