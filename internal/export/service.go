package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var clientColumns = []string{"Name", "Company", "Email", "Phone", "Status", "Total Value", "City", "Country", "Created"}

// Service writes filtered client lists as XLSX workbooks
type Service struct {
	clients   repository.ClientRepository
	sheetName string
	now       func() time.Time
}

type Option func(*Service)

func WithSheetName(name string) Option {
	return func(s *Service) {
		if strings.TrimSpace(name) != "" {
			s.sheetName = name
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(clients repository.ClientRepository, opts ...Option) *Service {
	service := &Service{
		clients:   clients,
		sheetName: "Clients",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// WriteClients writes the clients matching filter to w and returns how many rows were exported.
func (s *Service) WriteClients(ctx context.Context, w io.Writer, filter domain.ClientFilter) (int, error) {
	clients, err := s.clients.Filter(ctx, filter.Normalize())
	if err != nil {
		return 0, fmt.Errorf("failed to load clients for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", s.sheetName); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(clientColumns))
	for i, column := range clientColumns {
		header[i] = column
	}
	if err := f.SetSheetRow(s.sheetName, "A1", &header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(s.sheetName, 1, 1, bold); err != nil {
		return 0, fmt.Errorf("failed to style header: %w", err)
	}

	for i, c := range clients {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{
			c.Name,
			c.Company,
			c.Email,
			c.Phone,
			string(c.Status),
			c.TotalValue,
			c.Address.City,
			c.Address.Country,
			c.CreatedAt.Format("2006-01-02"),
		}
		if err := f.SetSheetRow(s.sheetName, cell, &row); err != nil {
			return 0, fmt.Errorf("failed to write client %s: %w", c.ID, err)
		}
	}

	if err := f.SetColWidth(s.sheetName, "A", "D", 24); err != nil {
		return 0, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(clients), nil
}

// FileName builds the attachment name for an export of filter.
func (s *Service) FileName(filter domain.ClientFilter) string {
	filter = filter.Normalize()
	parts := []string{"clients", filter.Status}
	if term := sanitizeFileComponent(filter.SearchTerm); term != "" {
		parts = append(parts, term)
	}
	parts = append(parts, s.now().UTC().Format("20060102"))
	return strings.Join(parts, "-") + ".xlsx"
}

func sanitizeFileComponent(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
		if b.Len() >= 32 {
			break
		}
	}
	return strings.Trim(b.String(), "_")
}
