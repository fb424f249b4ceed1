package mocks

import (
	"time"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

// CreateTestDonor creates an active donor for test setup.
func CreateTestDonor(email string, bloodGroup domain.BloodGroup) *domain.Donor {
	return &domain.Donor{
		ID:                 "donor-" + email,
		Name:               "Test Donor",
		Email:              email,
		BloodGroup:         bloodGroup,
		District:           "Dhaka",
		Upazila:            "Dhanmondi",
		AvailabilityStatus: domain.AvailabilityAvailable,
		Status:             domain.StatusActive,
		Role:               domain.RoleDonor,
		LoginCount:         1,
		CreatedAt:          time.Now(),
	}
}

// CreateTestRequest creates a pending donation request for test setup.
func CreateTestRequest(id, requesterEmail string, bloodGroup domain.BloodGroup) *domain.DonationRequest {
	return &domain.DonationRequest{
		ID:                id,
		RequesterName:     "Test Requester",
		RequesterEmail:    requesterEmail,
		RecipientName:     "Test Recipient",
		RecipientDistrict: "Dhaka",
		RecipientUpazila:  "Dhanmondi",
		HospitalName:      "Test Hospital",
		BloodGroup:        bloodGroup,
		UnitsNeeded:       1,
		UrgencyLevel:      domain.UrgencyCritical,
		DonationStatus:    domain.DonationPending,
		CreatedAt:         time.Now(),
	}
}

// CreateTestEvent creates a sample donation completed event for testing.
func CreateTestEvent() ports.DonationCompletedEvent {
	return ports.DonationCompletedEvent{
		RequestID:   "test-request-id",
		DonorEmail:  "donor@example.com",
		DonorName:   "Test Donor",
		BloodGroup:  "O+",
		District:    "Dhaka",
		CompletedAt: time.Now(),
	}
}
