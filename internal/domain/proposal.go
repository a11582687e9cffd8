package domain

import "time"

// ProposalStatus tracks where a proposal is in the sales cycle.
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExpired  ProposalStatus = "expired"
)

// Proposal is an offer of one or more services to a client.
type Proposal struct {
	ID          string         `json:"id"`
	ClientID    string         `json:"clientId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      ProposalStatus `json:"status"`
	TotalAmount float64        `json:"totalAmount"`
	Currency    string         `json:"currency"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	ValidUntil  time.Time      `json:"validUntil"`
	Services    []string       `json:"services"`
}

// ProposalsForClient returns the proposals belonging to clientID, preserving order.
func ProposalsForClient(proposals []Proposal, clientID string) []Proposal {
	result := make([]Proposal, 0)
	for _, p := range proposals {
		if p.ClientID == clientID {
			result = append(result, p)
		}
	}
	return result
}
