package domain

// StatusFacets returns the distinct client statuses in first-seen order.
func StatusFacets(clients []Client) []ClientStatus {
	facets := make([]ClientStatus, 0, len(ClientStatuses))
	seen := make(map[ClientStatus]struct{}, len(ClientStatuses))
	for _, c := range clients {
		if _, ok := seen[c.Status]; ok {
			continue
		}
		seen[c.Status] = struct{}{}
		facets = append(facets, c.Status)
	}
	return facets
}
