// Package clientfilter holds the state behind the client list filter panel.
// Every change publishes the complete filter, never a partial patch.
package clientfilter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rpattn/clientdesk/internal/domain"
)

// ErrUnknownStatus is returned by SetStatus for values outside the filter enumeration.
var ErrUnknownStatus = errors.New("unknown client status")

// Subscriber receives the full filter after every change.
type Subscriber func(domain.ClientFilter)

// Controller owns the three filter fields.
type Controller struct {
	mu         sync.Mutex
	searchTerm string
	status     string
	minValue   string

	subscriber Subscriber
	options    options
}

type options struct {
	showSearch   bool
	showStatus   bool
	showMinValue bool
}

// Option configures which controls a Controller offers.
type Option func(*options)

// WithoutSearch hides the name search input.
func WithoutSearch() Option { return func(o *options) { o.showSearch = false } }

// WithoutStatus hides the status buttons.
func WithoutStatus() Option { return func(o *options) { o.showStatus = false } }

// WithoutMinValue hides the minimum total value input.
func WithoutMinValue() Option { return func(o *options) { o.showMinValue = false } }

// NewController starts from initial, typically the restored last-used filter.
// Constructing a controller does not publish.
func NewController(initial domain.ClientFilter, subscriber Subscriber, opts ...Option) *Controller {
	initial = initial.Normalize()
	o := options{showSearch: true, showStatus: true, showMinValue: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		searchTerm: initial.SearchTerm,
		status:     initial.Status,
		minValue:   initial.MinTotalValue,
		subscriber: subscriber,
		options:    o,
	}
}

// Filter returns the current filter.
func (c *Controller) Filter() domain.ClientFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterLocked()
}

func (c *Controller) filterLocked() domain.ClientFilter {
	return domain.ClientFilter{Status: c.status, SearchTerm: c.searchTerm, MinTotalValue: c.minValue}
}

// SetSearchTerm replaces the name search term.
func (c *Controller) SetSearchTerm(value string) {
	c.update(func() { c.searchTerm = value })
}

// SetStatus selects a status, or "all".
func (c *Controller) SetStatus(status string) error {
	if !domain.IsValidFilterStatus(status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	c.update(func() { c.status = status })
	return nil
}

// SetMinValue stores the raw input verbatim; parsing happens in the predicate.
func (c *Controller) SetMinValue(raw string) {
	c.update(func() { c.minValue = raw })
}

// Clear resets every field to its default and publishes the default filter,
// so whatever fetches on publish shows the unfiltered list again.
func (c *Controller) Clear() {
	c.update(func() {
		c.searchTerm = ""
		c.status = domain.FilterStatusAll
		c.minValue = ""
	})
}

// update mutates under the lock and publishes outside it, so a subscriber may
// call back into the controller.
func (c *Controller) update(mutate func()) {
	c.mu.Lock()
	mutate()
	filter := c.filterLocked()
	c.mu.Unlock()

	if c.subscriber != nil {
		c.subscriber(filter)
	}
}

// StatusControl is one selectable status button.
type StatusControl struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Panel describes the controls to render for the current data.
type Panel struct {
	ShowSearch     bool            `json:"showSearch"`
	SearchTerm     string          `json:"searchTerm"`
	StatusControls []StatusControl `json:"statusControls"`
	ShowMinValue   bool            `json:"showMinValue"`
	MinValue       string          `json:"minValue"`
}

// Facets returns the distinct statuses present in clients, first-seen order.
func Facets(clients []domain.Client) []domain.ClientStatus {
	return domain.StatusFacets(clients)
}

// Panel builds the control layout for the visible clients. Status controls
// are only offered for the status facets present in the data.
func (c *Controller) Panel(clients []domain.Client) Panel {
	c.mu.Lock()
	filter := c.filterLocked()
	o := c.options
	c.mu.Unlock()

	panel := Panel{
		ShowSearch:     o.showSearch,
		SearchTerm:     filter.SearchTerm,
		StatusControls: []StatusControl{},
		ShowMinValue:   o.showMinValue,
		MinValue:       filter.MinTotalValue,
	}
	if o.showStatus {
		panel.StatusControls = statusControls(filter.Status, clients)
	}
	return panel
}

// StatusControls returns the status buttons for clients: "all" followed by
// the statuses present in clients, first-seen order. None when the data
// carries no status at all.
func (c *Controller) StatusControls(clients []domain.Client) []StatusControl {
	return statusControls(c.Filter().Status, clients)
}

func statusControls(selected string, clients []domain.Client) []StatusControl {
	facets := Facets(clients)
	controls := make([]StatusControl, 0, len(facets)+1)
	if len(facets) == 0 {
		return controls
	}
	controls = append(controls, StatusControl{
		Status: domain.FilterStatusAll,
		Label:  "All",
		Active: selected == domain.FilterStatusAll,
	})
	for _, s := range facets {
		controls = append(controls, StatusControl{
			Status: string(s),
			Label:  label(string(s)),
			Active: selected == string(s),
		})
	}
	return controls
}

func label(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
