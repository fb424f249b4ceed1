package domain

import "testing"

func TestComputeStats(t *testing.T) {
	donors := []Donor{
		{Role: RoleDonor, Status: StatusActive},
		{Role: RoleDonor, Status: StatusActive},
		{Role: RoleDonor, Status: StatusActive},
		{Role: RoleDonor, Status: StatusActive},
		{Role: RoleDonor, Status: StatusBlocked},
		{Role: RoleDonor, Status: StatusBlocked},
		{Role: RoleReceiver, Status: StatusActive},
		{Role: RoleAdmin, Status: StatusActive},
	}

	requests := make([]DonationRequest, 0, 20)
	for i := 0; i < 5; i++ {
		requests = append(requests, DonationRequest{DonationStatus: DonationDone})
	}
	for i := 0; i < 10; i++ {
		requests = append(requests, DonationRequest{DonationStatus: DonationPending})
	}
	for i := 0; i < 3; i++ {
		requests = append(requests, DonationRequest{DonationStatus: DonationInProgress})
	}
	for i := 0; i < 2; i++ {
		requests = append(requests, DonationRequest{DonationStatus: DonationCanceled})
	}

	stats := ComputeStats(donors, requests)

	if stats.TotalDonors != 6 {
		t.Errorf("TotalDonors = %d, want 6", stats.TotalDonors)
	}
	if stats.ActiveDonors != 4 {
		t.Errorf("ActiveDonors = %d, want 4", stats.ActiveDonors)
	}
	if stats.TotalRequests != 20 {
		t.Errorf("TotalRequests = %d, want 20", stats.TotalRequests)
	}
	if stats.CompletedRequests != 5 {
		t.Errorf("CompletedRequests = %d, want 5", stats.CompletedRequests)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil)

	if stats != (PlatformStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		donations int
		want      Badge
	}{
		{0, BadgeNone},
		{1, BadgeBronze},
		{2, BadgeBronze},
		{3, BadgeSilver},
		{4, BadgeSilver},
		{5, BadgeGold},
		{12, BadgeGold},
	}

	for _, tt := range tests {
		if got := BadgeFor(tt.donations); got != tt.want {
			t.Errorf("BadgeFor(%d) = %q, want %q", tt.donations, got, tt.want)
		}
	}
}
