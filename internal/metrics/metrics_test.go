package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecorderExposesCounters(t *testing.T) {
	r := NewRecorder()
	r.ObserveHTTP(http.MethodGet, http.StatusOK, 5*time.Millisecond)
	r.CacheRequest()
	r.CacheRequest()
	r.CacheFetch(nil)
	r.CacheFetch(errors.New("boom"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`clientdesk_http_requests_total{code="200",method="GET"} 1`,
		`clientdesk_query_cache_requests_total 2`,
		`clientdesk_query_cache_fetches_total{outcome="ok"} 1`,
		`clientdesk_query_cache_fetches_total{outcome="error"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveHTTP(http.MethodGet, http.StatusOK, time.Millisecond)
	r.CacheRequest()
	r.CacheFetch(nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil recorder handler, got %d", rec.Code)
	}
}
