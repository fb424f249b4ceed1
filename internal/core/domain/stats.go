package domain

// PlatformStats are the public dashboard counters.
type PlatformStats struct {
	TotalDonors       int `json:"totalDonors"`
	ActiveDonors      int `json:"activeDonors"`
	TotalRequests     int `json:"totalRequests"`
	CompletedRequests int `json:"completedRequests"`
}

// ComputeStats derives the counters from current snapshots. No caching
// here; callers cache externally if they need to.
func ComputeStats(donors []Donor, requests []DonationRequest) PlatformStats {
	var stats PlatformStats
	for i := range donors {
		if donors[i].Role != RoleDonor {
			continue
		}
		stats.TotalDonors++
		if donors[i].Status == StatusActive {
			stats.ActiveDonors++
		}
	}
	stats.TotalRequests = len(requests)
	for i := range requests {
		if requests[i].DonationStatus == DonationDone {
			stats.CompletedRequests++
		}
	}
	return stats
}
