package domain

import "time"

// ClientStatus is the lifecycle state of a client relationship.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusPending  ClientStatus = "pending"
	ClientStatusInactive ClientStatus = "inactive"
)

// ClientStatuses lists every client status in display order.
var ClientStatuses = []ClientStatus{ClientStatusActive, ClientStatusPending, ClientStatusInactive}

// IsValid reports whether the status is one of the known client statuses.
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusPending, ClientStatusInactive:
		return true
	}
	return false
}

// Address is the postal address of a client.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Client represents a customer relationship tracked by the dashboard
type Client struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Company    string       `json:"company"`
	Status     ClientStatus `json:"status"`
	TotalValue float64      `json:"totalValue"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Address    Address      `json:"address"`
}
