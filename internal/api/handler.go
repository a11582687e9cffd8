// Package api serves the dashboard's JSON endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/rpattn/clientdesk/internal/clientfilter"
	"github.com/rpattn/clientdesk/internal/clientloader"
	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/export"
	"github.com/rpattn/clientdesk/internal/features"
	"github.com/rpattn/clientdesk/internal/middleware"
	"github.com/rpattn/clientdesk/internal/querycache"
	"github.com/rpattn/clientdesk/internal/repository"
	"github.com/rpattn/clientdesk/pkg/validator"
)

// UnknownClientName is shown for proposals whose client no longer resolves.
const UnknownClientName = "Unknown Client"

type Handler struct {
	repos       repository.Repositories
	validator   *validator.FilterValidator
	exporter    http.Handler
	cache       *querycache.Cache
	betaDefault bool
	now         func() time.Time
}

type Option func(*Handler)

// WithBetaFilters sets whether beta filters are on when a request does not say.
func WithBetaFilters(enabled bool) Option {
	return func(h *Handler) { h.betaDefault = enabled }
}

// WithExporter overrides the XLSX export handler.
func WithExporter(exporter http.Handler) Option {
	return func(h *Handler) {
		if exporter != nil {
			h.exporter = exporter
		}
	}
}

// WithQueryCache serves filtered client lists through cache instead of
// querying the repository on every request.
func WithQueryCache(cache *querycache.Cache) Option {
	return func(h *Handler) { h.cache = cache }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

func NewHandler(repos repository.Repositories, opts ...Option) *Handler {
	h := &Handler{
		repos:     repos,
		validator: validator.NewFilterValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.exporter == nil {
		h.exporter = export.NewHTTPHandler(export.NewService(repos.Clients))
	}
	return h
}

// Router returns every route with the per-request feature flags and client
// loader attached.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/stats", h.stats)
	mux.HandleFunc("GET /api/clients", h.listClients)
	mux.HandleFunc("POST /api/clients/filter", h.filterClients)
	mux.Handle("GET /api/clients/export", h.exporter)
	mux.HandleFunc("GET /api/clients/{id}", h.getClient)
	mux.HandleFunc("GET /api/clients/{id}/proposals", h.listClientProposals)
	mux.HandleFunc("GET /api/proposals", h.listProposals)
	mux.HandleFunc("GET /api/proposals/{id}", h.getProposal)
	mux.HandleFunc("GET /api/services", h.listServices)
	mux.HandleFunc("GET /api/services/{id}", h.getService)

	return middleware.FeaturesMiddleware(h.betaDefault)(
		middleware.DataLoaderMiddleware(h.repos.Clients)(mux),
	)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

type statsResponse struct {
	Clients   domain.ClientStats   `json:"clients"`
	Proposals domain.ProposalStats `json:"proposals"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repos.Clients.List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	proposals, err := h.repos.Proposals.List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Clients:   domain.ComputeClientStats(clients, proposals),
		Proposals: domain.ComputeProposalStats(proposals),
	})
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("status") == "" && q.Get("searchTerm") == "" && q.Get("minTotalValue") == "" {
		clients, err := h.repos.Clients.List(r.Context())
		if err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusOK, clients)
		return
	}

	filter, result := h.validator.ValidateQuery(q.Get("status"), q.Get("searchTerm"), q.Get("minTotalValue"))
	if !result.IsValid {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}
	clients, err := h.filter(r.Context(), filter)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

type filterResponse struct {
	Clients  []domain.Client             `json:"clients"`
	Facets   []domain.ClientStatus       `json:"facets"`
	Title    string                      `json:"title"`
	Filter   domain.ClientFilter         `json:"filter"`
	Warnings []validator.ValidationError `json:"warnings,omitempty"`
	Panel    *clientfilter.Panel         `json:"panel,omitempty"`
}

func (h *Handler) filterClients(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	payload := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload: " + err.Error()})
		return
	}

	filter, result := h.validator.ValidateFilter(payload)
	if !result.IsValid {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	clients, err := h.filter(r.Context(), filter)
	if err != nil {
		writeError(w, err, "")
		return
	}

	beta := features.BetaFiltersFromContext(r.Context())
	resp := filterResponse{
		Clients:  clients,
		Facets:   clientfilter.Facets(clients),
		Title:    features.ClientsTitle(beta),
		Filter:   filter,
		Warnings: result.Warnings,
	}
	if beta {
		panel := clientfilter.NewController(filter, nil).Panel(clients)
		resp.Panel = &panel
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) filter(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	if h.cache != nil {
		return h.cache.Fetch(ctx, filter)
	}
	return h.repos.Clients.Filter(ctx, filter)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.repos.Clients.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Client not found")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *Handler) listClientProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.repos.Proposals.ListByClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

type proposalWithClient struct {
	domain.Proposal
	ClientName string `json:"clientName"`
}

func (h *Handler) listProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.repos.Proposals.List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	resp, err := h.withClientNames(r, proposals)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getProposal(w http.ResponseWriter, r *http.Request) {
	proposal, err := h.repos.Proposals.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Proposal not found")
		return
	}
	resp, err := h.withClientNames(r, []domain.Proposal{proposal})
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, resp[0])
}

func (h *Handler) withClientNames(r *http.Request, proposals []domain.Proposal) ([]proposalWithClient, error) {
	loader := middleware.ClientLoaderFromContext(r.Context())
	if loader == nil {
		loader = clientloader.NewClientLoader(h.repos.Clients)
	}
	ids := make([]string, 0, len(proposals))
	for _, p := range proposals {
		ids = append(ids, p.ClientID)
	}
	names, err := loader.Names(r.Context(), ids, UnknownClientName)
	if err != nil {
		return nil, err
	}
	resp := make([]proposalWithClient, 0, len(proposals))
	for _, p := range proposals {
		resp = append(resp, proposalWithClient{Proposal: p, ClientName: names[p.ClientID]})
	}
	return resp, nil
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repos.Services.List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	service, err := h.repos.Services.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func writeError(w http.ResponseWriter, err error, notFound string) {
	if notFound != "" && errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound})
		return
	}
	log.Printf("[HTTP] request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
