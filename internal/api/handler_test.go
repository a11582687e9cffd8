package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/fixtures"
	"github.com/rpattn/clientdesk/internal/metrics"
	"github.com/rpattn/clientdesk/internal/querycache"
	"github.com/rpattn/clientdesk/internal/repository"
)

func newTestRouter(opts ...Option) http.Handler {
	repos := repository.NewMemoryStore(fixtures.Default()).Repositories()
	clock := func() time.Time { return time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC) }
	opts = append([]Option{WithClock(clock)}, opts...)
	return NewHandler(repos, opts...).Router()
}

func do(t *testing.T, router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "OK" || body["timestamp"] != "2024-09-01T08:00:00Z" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestStats(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodGet, "/api/stats", "")
	var body statsResponse
	decode(t, rec, &body)

	if body.Clients.TotalClients != 5 || body.Clients.ActiveClients != 3 {
		t.Fatalf("unexpected client stats: %+v", body.Clients)
	}
	if body.Clients.TotalRevenue != 750000 {
		t.Fatalf("expected total revenue 750000, got %v", body.Clients.TotalRevenue)
	}
	if body.Clients.PendingProposals != 2 {
		t.Fatalf("expected 2 pending proposals, got %d", body.Clients.PendingProposals)
	}
	if body.Proposals.AcceptedValue != 65000 || body.Proposals.TotalProposals != 3 {
		t.Fatalf("unexpected proposal stats: %+v", body.Proposals)
	}
}

func TestListClients_WithAndWithoutQuery(t *testing.T) {
	router := newTestRouter()

	var all []domain.Client
	decode(t, do(t, router, http.MethodGet, "/api/clients", ""), &all)
	if len(all) != 5 {
		t.Fatalf("expected 5 clients, got %d", len(all))
	}

	var filtered []domain.Client
	decode(t, do(t, router, http.MethodGet, "/api/clients?status=active&minTotalValue=200000", ""), &filtered)
	if len(filtered) != 2 || filtered[0].Name != "Michael Chen" || filtered[1].Name != "David Wilson" {
		t.Fatalf("unexpected filtered clients: %+v", filtered)
	}

	rec := do(t, router, http.MethodGet, "/api/clients?status=archived", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestFilterClients(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/api/clients/filter", `{"status":"all","searchTerm":"JOHN","minTotalValue":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body filterResponse
	decode(t, rec, &body)
	if len(body.Clients) != 2 {
		t.Fatalf("expected John Smith and Sarah Johnson, got %+v", body.Clients)
	}
	if body.Title != "Clients" {
		t.Fatalf("expected default title, got %q", body.Title)
	}
	if len(body.Facets) != 2 || body.Facets[0] != domain.ClientStatusActive || body.Facets[1] != domain.ClientStatusPending {
		t.Fatalf("unexpected facets: %v", body.Facets)
	}
	if body.Panel != nil {
		t.Fatalf("expected no panel outside beta mode")
	}
}

func TestFilterClients_QueryCacheRecordsMetrics(t *testing.T) {
	repos := repository.NewMemoryStore(fixtures.Default()).Repositories()
	recorder := metrics.NewRecorder()
	cache := querycache.New(querycache.ServerSideSource(repos.Clients), querycache.WithMetrics(recorder))
	router := NewHandler(repos, WithQueryCache(cache)).Router()

	for _, req := range []struct{ method, target, body string }{
		{http.MethodPost, "/api/clients/filter", `{"status":"active"}`},
		{http.MethodPost, "/api/clients/filter", `{"status":"active"}`},
		{http.MethodGet, "/api/clients?status=active", ""},
	} {
		if rec := do(t, router, req.method, req.target, req.body); rec.Code != http.StatusOK {
			t.Fatalf("expected 200 from %s %s, got %d", req.method, req.target, rec.Code)
		}
	}

	scrape := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	for _, want := range []string{
		`clientdesk_query_cache_requests_total 3`,
		`clientdesk_query_cache_fetches_total{outcome="ok"} 1`,
	} {
		if !strings.Contains(scrape.Body.String(), want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}

func TestFilterClients_EmptyResultEncodesEmptyArrays(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodPost, "/api/clients/filter", `{"searchTerm":"nobody"}`)
	if !strings.Contains(rec.Body.String(), `"clients": []`) || !strings.Contains(rec.Body.String(), `"facets": []`) {
		t.Fatalf("expected empty arrays, got %s", rec.Body.String())
	}
}

func TestFilterClients_BetaMode(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodPost, "/api/clients/filter?beta_filters=true", `{"status":"pending"}`)
	var body filterResponse
	decode(t, rec, &body)
	if body.Title != "Clients - New Beta" {
		t.Fatalf("expected beta title, got %q", body.Title)
	}
	if body.Panel == nil || len(body.Panel.StatusControls) != 2 {
		t.Fatalf("expected beta panel with all plus the pending facet, got %+v", body.Panel)
	}
	if body.Panel.StatusControls[1].Status != "pending" || !body.Panel.StatusControls[1].Active {
		t.Fatalf("expected pending control to be active, got %+v", body.Panel.StatusControls)
	}

	rec = do(t, newTestRouter(WithBetaFilters(true)), http.MethodPost, "/api/clients/filter", `{}`)
	decode(t, rec, &body)
	if body.Title != "Clients - New Beta" {
		t.Fatalf("expected configured beta default, got %q", body.Title)
	}
}

func TestFilterClients_Rejections(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/api/clients/filter", `{"status":"archived"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodPost, "/api/clients/filter", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed payload, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodPost, "/api/clients/filter", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected empty body to mean the default filter, got %d", rec.Code)
	}
}

func TestGetClient(t *testing.T) {
	router := newTestRouter()

	var client domain.Client
	decode(t, do(t, router, http.MethodGet, "/api/clients/3", ""), &client)
	if client.Name != "Michael Chen" {
		t.Fatalf("expected Michael Chen, got %q", client.Name)
	}

	rec := do(t, router, http.MethodGet, "/api/clients/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != "Client not found" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestClientProposals(t *testing.T) {
	var proposals []domain.Proposal
	decode(t, do(t, newTestRouter(), http.MethodGet, "/api/clients/2/proposals", ""), &proposals)
	if len(proposals) != 1 || proposals[0].ID != "p2" {
		t.Fatalf("unexpected proposals: %+v", proposals)
	}
}

func TestProposalsIncludeClientNames(t *testing.T) {
	router := newTestRouter()

	var proposals []proposalWithClient
	decode(t, do(t, router, http.MethodGet, "/api/proposals", ""), &proposals)
	if len(proposals) != 3 {
		t.Fatalf("expected 3 proposals, got %d", len(proposals))
	}
	want := map[string]string{"p1": "John Smith", "p2": "Sarah Johnson", "p3": "Michael Chen"}
	for _, p := range proposals {
		if p.ClientName != want[p.ID] {
			t.Fatalf("expected %s for %s, got %q", want[p.ID], p.ID, p.ClientName)
		}
	}

	var single proposalWithClient
	decode(t, do(t, router, http.MethodGet, "/api/proposals/p3", ""), &single)
	if single.ClientName != "Michael Chen" || single.Title != "Enterprise Solution Package" {
		t.Fatalf("unexpected proposal: %+v", single)
	}

	if rec := do(t, router, http.MethodGet, "/api/proposals/zzz", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProposalsFallBackToUnknownClient(t *testing.T) {
	data := fixtures.Default()
	data.Proposals[0].ClientID = "gone"
	router := NewHandler(repository.NewMemoryStore(data).Repositories()).Router()

	var proposal proposalWithClient
	decode(t, do(t, router, http.MethodGet, "/api/proposals/p1", ""), &proposal)
	if proposal.ClientName != UnknownClientName {
		t.Fatalf("expected fallback name, got %q", proposal.ClientName)
	}
}

func TestServices(t *testing.T) {
	router := newTestRouter()

	var services []domain.Service
	decode(t, do(t, router, http.MethodGet, "/api/services", ""), &services)
	if len(services) != 4 {
		t.Fatalf("expected 4 services, got %d", len(services))
	}
	var service domain.Service
	decode(t, do(t, router, http.MethodGet, "/api/services/s4", ""), &service)
	if service.Name != "Team Training Program" {
		t.Fatalf("unexpected service: %+v", service)
	}
	if rec := do(t, router, http.MethodGet, "/api/services/s9", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExportRoute(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodGet, "/api/clients/export?status=active", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Export-Rows") != "3" {
		t.Fatalf("expected 3 exported rows, got %q", rec.Header().Get("X-Export-Rows"))
	}
}
