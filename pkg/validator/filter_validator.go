package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpattn/clientdesk/internal/domain"
)

// FilterValidator checks client filter payloads received over HTTP
type FilterValidator struct{}

// NewFilterValidator creates a new filter validator
func NewFilterValidator() *FilterValidator {
	return &FilterValidator{}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

var filterFields = map[string]struct{}{
	"status":        {},
	"searchTerm":    {},
	"minTotalValue": {},
}

// ValidateFilter validates a decoded JSON filter payload and returns the
// filter it describes. Missing fields take their defaults. A minimum value
// that is not a number is accepted with a warning since it places no constraint.
func (fv *FilterValidator) ValidateFilter(payload map[string]any) (domain.ClientFilter, ValidationResult) {
	result := ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
	filter := domain.DefaultClientFilter()

	if value, exists := payload["status"]; exists && value != nil {
		status, ok := value.(string)
		switch {
		case !ok:
			result.addError("status", fmt.Sprintf("field 'status' must be a string, got %T", value), value)
		case status == "":
		case !domain.IsValidFilterStatus(status):
			result.addError("status", fmt.Sprintf("status '%s' is not one of all, active, pending, inactive", status), value)
		default:
			filter.Status = status
		}
	}

	if value, exists := payload["searchTerm"]; exists && value != nil {
		term, ok := value.(string)
		if !ok {
			result.addError("searchTerm", fmt.Sprintf("field 'searchTerm' must be a string, got %T", value), value)
		} else {
			filter.SearchTerm = term
		}
	}

	if value, exists := payload["minTotalValue"]; exists && value != nil {
		switch v := value.(type) {
		case string:
			filter.MinTotalValue = v
		case float64:
			filter.MinTotalValue = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			result.addError("minTotalValue", fmt.Sprintf("field 'minTotalValue' must be a string or number, got %T", value), value)
		}
		if _, ok := filter.MinValue(); !ok && strings.TrimSpace(filter.MinTotalValue) != "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "minTotalValue",
				Message: "minimum value is not a number and will be ignored",
				Value:   value,
			})
		}
	}

	// Check for properties the filter does not know
	for name, value := range payload {
		if _, known := filterFields[name]; !known {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   name,
				Message: fmt.Sprintf("property '%s' is not a filter field", name),
				Value:   value,
			})
		}
	}

	return filter, result
}

// ValidateQuery validates filter values taken from URL query parameters.
func (fv *FilterValidator) ValidateQuery(status, searchTerm, minTotalValue string) (domain.ClientFilter, ValidationResult) {
	payload := map[string]any{}
	if status != "" {
		payload["status"] = status
	}
	if searchTerm != "" {
		payload["searchTerm"] = searchTerm
	}
	if minTotalValue != "" {
		payload["minTotalValue"] = minTotalValue
	}
	return fv.ValidateFilter(payload)
}

func (r *ValidationResult) addError(field, message string, value any) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Value: value})
}
