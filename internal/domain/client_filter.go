package domain

import (
	"math"
	"strconv"
	"strings"
)

// FilterStatusAll disables the status constraint of a ClientFilter.
const FilterStatusAll = "all"

// ClientFilter represents filtering options for listing clients.
// Empty SearchTerm and MinTotalValue place no constraint on the result.
type ClientFilter struct {
	Status        string `json:"status"`
	SearchTerm    string `json:"searchTerm"`
	MinTotalValue string `json:"minTotalValue"`
}

// DefaultClientFilter returns the filter a fresh client list starts with.
func DefaultClientFilter() ClientFilter {
	return ClientFilter{Status: FilterStatusAll}
}

// IsValidFilterStatus reports whether status may be used as a filter status.
func IsValidFilterStatus(status string) bool {
	return status == FilterStatusAll || ClientStatus(status).IsValid()
}

// Normalize returns a copy whose status is guaranteed to be a valid filter status.
// Unknown or empty statuses fall back to "all".
func (f ClientFilter) Normalize() ClientFilter {
	if !IsValidFilterStatus(f.Status) {
		f.Status = FilterStatusAll
	}
	return f
}

// IsDefault reports whether the filter places no constraint at all.
func (f ClientFilter) IsDefault() bool {
	return f == DefaultClientFilter()
}

// MinValue parses MinTotalValue. ok is false when the field is empty or not a number.
func (f ClientFilter) MinValue() (value float64, ok bool) {
	raw := strings.TrimSpace(f.MinTotalValue)
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

// Matches reports whether the client passes the status, search and minimum value checks.
// An unparseable minimum value does not constrain the result.
func (f ClientFilter) Matches(c Client) bool {
	return f.matchesStatus(c) && f.matchesSearch(c) && f.matchesMinValue(c)
}

func (f ClientFilter) matchesStatus(c Client) bool {
	return f.Status == FilterStatusAll || string(c.Status) == f.Status
}

func (f ClientFilter) matchesSearch(c Client) bool {
	if f.SearchTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.SearchTerm))
}

func (f ClientFilter) matchesMinValue(c Client) bool {
	min, ok := f.MinValue()
	if !ok {
		return true
	}
	return c.TotalValue >= min
}

// FilterClients returns the clients matching the filter in their original order.
func FilterClients(clients []Client, filter ClientFilter) []Client {
	result := make([]Client, 0, len(clients))
	for _, c := range clients {
		if filter.Matches(c) {
			result = append(result, c)
		}
	}
	return result
}
