package domain

import (
	"fmt"
	"time"
)

// DonationStatus is the lifecycle state of a request. Transitions are
// monotonic: pending -> inprogress -> done|canceled. Deletion is not a
// state; owners and admins may delete a request from any state.
type DonationStatus string

const (
	DonationPending    DonationStatus = "pending"
	DonationInProgress DonationStatus = "inprogress"
	DonationDone       DonationStatus = "done"
	DonationCanceled   DonationStatus = "canceled"
)

// CanTransitionTo reports whether next is a permitted successor state.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	switch s {
	case DonationPending:
		return next == DonationInProgress
	case DonationInProgress:
		return next == DonationDone || next == DonationCanceled
	default:
		// done and canceled are terminal
		return false
	}
}

// IsTerminal reports whether no further status changes are permitted.
func (s DonationStatus) IsTerminal() bool {
	return s == DonationDone || s == DonationCanceled
}

type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyFlexible UrgencyLevel = "flexible"
)

// DonationRequest is a recipient's call for blood. RecommendedDonors is a
// snapshot taken when the request was created; it is not kept in sync with
// later donor profile changes.
type DonationRequest struct {
	ID                string         `json:"id"`
	RequesterName     string         `json:"requesterName"`
	RequesterEmail    string         `json:"requesterEmail"`
	RecipientName     string         `json:"recipientName"`
	RecipientDistrict string         `json:"recipientDistrict"`
	RecipientUpazila  string         `json:"recipientUpazila"`
	HospitalName      string         `json:"hospitalName"`
	FullAddress       string         `json:"fullAddress"`
	BloodGroup        BloodGroup     `json:"bloodGroup"`
	DonationDate      string         `json:"donationDate"`
	DonationTime      string         `json:"donationTime"`
	RequestMessage    string         `json:"requestMessage"`
	UrgencyLevel      UrgencyLevel   `json:"urgencyLevel"`
	UnitsNeeded       int            `json:"unitsNeeded"`
	DonationStatus    DonationStatus `json:"donationStatus"`
	DonorName         string         `json:"donorName,omitempty"`
	DonorEmail        string         `json:"donorEmail,omitempty"`
	RecommendedDonors []ScoredDonor  `json:"recommendedDonors,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// Validate checks the fields a request must carry before it can be stored.
func (r *DonationRequest) Validate() error {
	if r == nil {
		return ErrInvalidInput
	}
	if r.RequesterEmail == "" {
		return fmt.Errorf("%w: requester email is required", ErrInvalidInput)
	}
	if r.RecipientName == "" {
		return fmt.Errorf("%w: recipient name is required", ErrInvalidInput)
	}
	if !r.BloodGroup.IsValid() {
		return fmt.Errorf("%w: unknown blood group %q", ErrInvalidInput, r.BloodGroup)
	}
	if r.UnitsNeeded < 1 {
		return fmt.Errorf("%w: units needed must be at least 1", ErrInvalidInput)
	}
	switch r.UrgencyLevel {
	case UrgencyCritical, UrgencyUrgent, UrgencyFlexible:
	default:
		return fmt.Errorf("%w: unknown urgency level %q", ErrInvalidInput, r.UrgencyLevel)
	}
	return nil
}

// TransitionTo moves the request to next, rejecting out-of-order changes.
func (r *DonationRequest) TransitionTo(next DonationStatus) error {
	if r == nil {
		return ErrInvalidInput
	}
	if !r.DonationStatus.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.DonationStatus, next)
	}
	r.DonationStatus = next
	return nil
}
