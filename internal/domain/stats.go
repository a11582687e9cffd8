package domain

// ClientStats summarises the client book for the dashboard header.
type ClientStats struct {
	TotalClients     int     `json:"totalClients"`
	ActiveClients    int     `json:"activeClients"`
	TotalRevenue     float64 `json:"totalRevenue"`
	PendingProposals int     `json:"pendingProposals"`
}

// ProposalStats summarises proposals by status and value.
type ProposalStats struct {
	TotalProposals    int     `json:"totalProposals"`
	AcceptedProposals int     `json:"acceptedProposals"`
	DraftProposals    int     `json:"draftProposals"`
	SentProposals     int     `json:"sentProposals"`
	TotalValue        float64 `json:"totalValue"`
	AcceptedValue     float64 `json:"acceptedValue"`
}

// ComputeClientStats derives client stats from the current records.
// Proposals still awaiting a decision (draft or sent) count as pending.
func ComputeClientStats(clients []Client, proposals []Proposal) ClientStats {
	stats := ClientStats{TotalClients: len(clients)}
	for _, c := range clients {
		if c.Status == ClientStatusActive {
			stats.ActiveClients++
		}
		stats.TotalRevenue += c.TotalValue
	}
	for _, p := range proposals {
		if p.Status == ProposalStatusDraft || p.Status == ProposalStatusSent {
			stats.PendingProposals++
		}
	}
	return stats
}

// ComputeProposalStats derives proposal stats from the current records.
func ComputeProposalStats(proposals []Proposal) ProposalStats {
	stats := ProposalStats{TotalProposals: len(proposals)}
	for _, p := range proposals {
		stats.TotalValue += p.TotalAmount
		switch p.Status {
		case ProposalStatusAccepted:
			stats.AcceptedProposals++
			stats.AcceptedValue += p.TotalAmount
		case ProposalStatusDraft:
			stats.DraftProposals++
		case ProposalStatusSent:
			stats.SentProposals++
		}
	}
	return stats
}
