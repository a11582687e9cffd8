// Package apiclient talks to a running clientdesk server over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/features"
	"github.com/rpattn/clientdesk/internal/repository"
)

// DefaultBaseURL is where the dashboard server listens by default.
const DefaultBaseURL = "http://localhost:3001/api"

// HTTPError reports a non-2xx response.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Is lets a 404 match repository.ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	return target == repository.ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	beta       bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithBetaFilters asks the server for the beta filter panel.
func WithBetaFilters(enabled bool) Option {
	return func(c *Client) { c.beta = enabled }
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats is the dashboard header summary.
type Stats struct {
	Clients   domain.ClientStats   `json:"clients"`
	Proposals domain.ProposalStats `json:"proposals"`
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.get(ctx, "/stats", nil, &stats)
	return stats, err
}

// FilterResult is the server's answer to a filter request.
type FilterResult struct {
	Clients []domain.Client       `json:"clients"`
	Facets  []domain.ClientStatus `json:"facets"`
	Title   string                `json:"title"`
}

// FilterClients posts filter to the server and returns clients with facets.
func (c *Client) FilterClients(ctx context.Context, filter domain.ClientFilter) (FilterResult, error) {
	var result FilterResult
	body, err := json.Marshal(filter)
	if err != nil {
		return result, fmt.Errorf("failed to encode filter: %w", err)
	}
	query := url.Values{}
	if c.beta {
		query.Set(features.BetaFiltersParam, "true")
	}
	err = c.do(ctx, http.MethodPost, "/clients/filter", query, bytes.NewReader(body), &result)
	return result, err
}

// Repositories exposes the remote server as an entity store.
func (c *Client) Repositories() repository.Repositories {
	return repository.Repositories{
		Clients:   clients{c},
		Proposals: proposals{c},
		Services:  services{c},
	}
}

type clients struct{ c *Client }

func (r clients) List(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	err := r.c.get(ctx, "/clients", nil, &out)
	return out, err
}

func (r clients) GetByID(ctx context.Context, id string) (domain.Client, error) {
	var out domain.Client
	err := r.c.get(ctx, "/clients/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (r clients) GetByIDs(ctx context.Context, ids []string) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(ids))
	for _, id := range ids {
		client, err := r.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, client)
	}
	return out, nil
}

func (r clients) Filter(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	result, err := r.c.FilterClients(ctx, filter)
	if err != nil {
		return nil, err
	}
	return result.Clients, nil
}

type proposals struct{ c *Client }

func (r proposals) List(ctx context.Context) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := r.c.get(ctx, "/proposals", nil, &out)
	return out, err
}

func (r proposals) GetByID(ctx context.Context, id string) (domain.Proposal, error) {
	var out domain.Proposal
	err := r.c.get(ctx, "/proposals/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (r proposals) ListByClient(ctx context.Context, clientID string) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := r.c.get(ctx, "/clients/"+url.PathEscape(clientID)+"/proposals", nil, &out)
	return out, err
}

type services struct{ c *Client }

func (r services) List(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	err := r.c.get(ctx, "/services", nil, &out)
	return out, err
}

func (r services) GetByID(ctx context.Context, id string) (domain.Service, error) {
	var out domain.Service
	err := r.c.get(ctx, "/services/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, into any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, into)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body *bytes.Reader, into any) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
