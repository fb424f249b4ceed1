package domain

import "time"

// DonorHistoryRecord is one completed donation event. Records are
// appended when a request reaches done (or registered manually for
// verified offline donations) and never modified afterwards.
type DonorHistoryRecord struct {
	ID         string     `json:"id"`
	DonorEmail string     `json:"donorEmail"`
	DonorName  string     `json:"donorName"`
	DonationID string     `json:"donationId"`
	BloodGroup BloodGroup `json:"bloodGroup"`
	District   string     `json:"district"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DonorHistorySummary is the per-donor aggregate over history records.
type DonorHistorySummary struct {
	DonorEmail       string     `json:"donorEmail"`
	TotalDonations   int        `json:"totalDonations"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`
}

type Badge string

const (
	BadgeNone   Badge = ""
	BadgeBronze Badge = "Bronze"
	BadgeSilver Badge = "Silver"
	BadgeGold   Badge = "Gold"
)

// BadgeFor maps a donation count to a reward tier.
func BadgeFor(totalDonations int) Badge {
	switch {
	case totalDonations >= 5:
		return BadgeGold
	case totalDonations >= 3:
		return BadgeSilver
	case totalDonations >= 1:
		return BadgeBronze
	default:
		return BadgeNone
	}
}
