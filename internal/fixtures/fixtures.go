// Package fixtures holds the demo dataset the dashboard ships with.
package fixtures

import (
	"time"

	"github.com/rpattn/clientdesk/internal/domain"
)

// Dataset is a complete set of dashboard records.
type Dataset struct {
	Clients   []domain.Client
	Proposals []domain.Proposal
	Services  []domain.Service
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns a fresh copy of the demo dataset.
func Default() Dataset {
	return Dataset{
		Clients:   clients(),
		Proposals: proposals(),
		Services:  services(),
	}
}

func clients() []domain.Client {
	return []domain.Client{
		{
			ID:         "1",
			Name:       "John Smith",
			Email:      "john.smith@techcorp.com",
			Phone:      "+1 (555) 123-4567",
			Company:    "TechCorp Industries",
			Status:     domain.ClientStatusActive,
			TotalValue: 125000,
			CreatedAt:  ts("2024-01-15T10:30:00Z"),
			UpdatedAt:  ts("2024-08-22T14:20:00Z"),
			Address:    domain.Address{Street: "123 Business Ave", City: "San Francisco", State: "CA", ZipCode: "94105", Country: "USA"},
		},
		{
			ID:         "2",
			Name:       "Sarah Johnson",
			Email:      "sarah.j@innovateplus.com",
			Phone:      "+1 (555) 987-6543",
			Company:    "InnovatePlus LLC",
			Status:     domain.ClientStatusPending,
			TotalValue: 75000,
			CreatedAt:  ts("2024-03-08T09:15:00Z"),
			UpdatedAt:  ts("2024-08-20T11:45:00Z"),
			Address:    domain.Address{Street: "456 Innovation Drive", City: "Austin", State: "TX", ZipCode: "73301", Country: "USA"},
		},
		{
			ID:         "3",
			Name:       "Michael Chen",
			Email:      "mchen@globalventures.com",
			Phone:      "+1 (555) 456-7890",
			Company:    "Global Ventures Co.",
			Status:     domain.ClientStatusActive,
			TotalValue: 200000,
			CreatedAt:  ts("2023-11-20T16:00:00Z"),
			UpdatedAt:  ts("2024-08-25T08:30:00Z"),
			Address:    domain.Address{Street: "789 Enterprise Blvd", City: "New York", State: "NY", ZipCode: "10001", Country: "USA"},
		},
		{
			ID:         "4",
			Name:       "Emily Rodriguez",
			Email:      "emily.r@startupfund.io",
			Phone:      "+1 (555) 321-0987",
			Company:    "StartupFund.io",
			Status:     domain.ClientStatusInactive,
			TotalValue: 50000,
			CreatedAt:  ts("2024-02-12T13:45:00Z"),
			UpdatedAt:  ts("2024-06-10T17:20:00Z"),
			Address:    domain.Address{Street: "321 Startup Lane", City: "Seattle", State: "WA", ZipCode: "98101", Country: "USA"},
		},
		{
			ID:         "5",
			Name:       "David Wilson",
			Email:      "dwilson@enterprisesolutions.com",
			Phone:      "+1 (555) 654-3210",
			Company:    "Enterprise Solutions Inc.",
			Status:     domain.ClientStatusActive,
			TotalValue: 300000,
			CreatedAt:  ts("2023-09-05T12:00:00Z"),
			UpdatedAt:  ts("2024-08-28T10:15:00Z"),
			Address:    domain.Address{Street: "654 Corporate Center", City: "Chicago", State: "IL", ZipCode: "60601", Country: "USA"},
		},
	}
}

func services() []domain.Service {
	return []domain.Service{
		{ID: "s1", Name: "Financial Strategy Consulting", Description: "Comprehensive financial planning and strategy development", Category: domain.ServiceCategoryConsulting, BasePrice: 15000, Currency: "USD", Duration: "3 months", IsActive: true},
		{ID: "s2", Name: "Portfolio Management System", Description: "Custom portfolio management software implementation", Category: domain.ServiceCategoryImplementation, BasePrice: 50000, Currency: "USD", Duration: "6 months", IsActive: true},
		{ID: "s3", Name: "Risk Assessment Framework", Description: "Enterprise risk management system setup", Category: domain.ServiceCategoryImplementation, BasePrice: 25000, Currency: "USD", Duration: "4 months", IsActive: true},
		{ID: "s4", Name: "Team Training Program", Description: "Financial software training for your team", Category: domain.ServiceCategoryTraining, BasePrice: 8000, Currency: "USD", Duration: "1 month", IsActive: true},
	}
}

func proposals() []domain.Proposal {
	return []domain.Proposal{
		{
			ID:          "p1",
			ClientID:    "1",
			Title:       "Q4 Financial Strategy Package",
			Description: "Comprehensive financial planning and portfolio management setup",
			Status:      domain.ProposalStatusAccepted,
			TotalAmount: 65000,
			Currency:    "USD",
			CreatedAt:   ts("2024-08-01T10:00:00Z"),
			UpdatedAt:   ts("2024-08-15T14:30:00Z"),
			ValidUntil:  ts("2024-09-30T23:59:59Z"),
			Services:    []string{"s1", "s2"},
		},
		{
			ID:          "p2",
			ClientID:    "2",
			Title:       "Risk Management Consultation",
			Description: "Risk assessment and management framework implementation",
			Status:      domain.ProposalStatusSent,
			TotalAmount: 25000,
			Currency:    "USD",
			CreatedAt:   ts("2024-08-20T09:15:00Z"),
			UpdatedAt:   ts("2024-08-20T09:15:00Z"),
			ValidUntil:  ts("2024-09-20T23:59:59Z"),
			Services:    []string{"s3"},
		},
		{
			ID:          "p3",
			ClientID:    "3",
			Title:       "Enterprise Solution Package",
			Description: "Full suite implementation with training",
			Status:      domain.ProposalStatusDraft,
			TotalAmount: 83000,
			Currency:    "USD",
			CreatedAt:   ts("2024-08-25T11:30:00Z"),
			UpdatedAt:   ts("2024-08-27T16:45:00Z"),
			ValidUntil:  ts("2024-10-25T23:59:59Z"),
			Services:    []string{"s1", "s2", "s4"},
		},
	}
}
