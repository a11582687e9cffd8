package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/rpattn/clientdesk/pkg/validator"
)

type Handler struct {
	service   *Service
	validator *validator.FilterValidator
}

// NewHTTPHandler serves GET requests with the client filter in the query string.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service, validator: validator.NewFilterValidator()}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	filter, result := h.validator.ValidateQuery(q.Get("status"), q.Get("searchTerm"), q.Get("minTotalValue"))
	if !result.IsValid {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	var buf bytes.Buffer
	rows, err := h.service.WriteClients(r.Context(), &buf, filter)
	if err != nil {
		log.Printf("[EXPORT] %v", err)
		http.Error(w, "failed to export clients", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.FileName(filter)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Export-Rows", strconv.Itoa(rows))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
