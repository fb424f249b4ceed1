package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDonor     Role = "donor"
	RoleReceiver  Role = "receiver"
	RoleVolunteer Role = "volunteer"
)

// AccountStatus controls platform access. Blocked accounts are excluded
// from matching outright; donors are never hard-deleted, only blocked.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusBlocked AccountStatus = "blocked"
)

// AvailabilityStatus is the donor's self-reported readiness. Unlike
// AccountStatus it never excludes a donor from ranking, it only moves
// them down the shortlist.
type AvailabilityStatus string

const (
	AvailabilityAvailable     AvailabilityStatus = "available"
	AvailabilityResting       AvailabilityStatus = "resting"
	AvailabilityMedicalReview AvailabilityStatus = "medical-review"
)

type BloodGroup string

const (
	BloodAPositive  BloodGroup = "A+"
	BloodANegative  BloodGroup = "A-"
	BloodBPositive  BloodGroup = "B+"
	BloodBNegative  BloodGroup = "B-"
	BloodABPositive BloodGroup = "AB+"
	BloodABNegative BloodGroup = "AB-"
	BloodOPositive  BloodGroup = "O+"
	BloodONegative  BloodGroup = "O-"
)

// IsValid reports whether the blood group is one of the eight ABO/Rh types.
func (b BloodGroup) IsValid() bool {
	switch b {
	case BloodAPositive, BloodANegative, BloodBPositive, BloodBNegative,
		BloodABPositive, BloodABNegative, BloodOPositive, BloodONegative:
		return true
	}
	return false
}

// Donor is a registered user. Every platform account shares this shape;
// only records with Role == RoleDonor take part in matching.
type Donor struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	BloodGroup         BloodGroup         `json:"bloodGroup"`
	District           string             `json:"district"`
	Upazila            string             `json:"upazila"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
	LastDonationDate   *time.Time         `json:"lastDonationDate,omitempty"`
	Status             AccountStatus      `json:"status"`
	Role               Role               `json:"role"`
	LoginCount         int                `json:"loginCount"`
	CreatedAt          time.Time          `json:"created_at"`
}
