package domain

import (
	"sort"
	"time"
)

const (
	// RestPeriod is the minimum interval between donations. A donor whose
	// last donation is younger than this is ineligible.
	RestPeriod = 90 * 24 * time.Hour

	// RecentDonationWindow deprioritizes (but does not exclude) donors who
	// gave very recently. This is a scoring concern, not an eligibility one.
	RecentDonationWindow = 60 * 24 * time.Hour

	// ShortlistSize is how many scored donors get attached to a request.
	ShortlistSize = 3
)

// Score weights, additive in precedence order.
const (
	weightBloodGroup   = 5
	weightAvailability = 4
	weightDistrict     = 3
	weightUpazila      = 2
	weightRested       = 2
	penaltyRecent      = 3
)

type EligibilityReason string

const (
	ReasonBlocked   EligibilityReason = "blocked"
	ReasonResting   EligibilityReason = "resting"
	ReasonTooRecent EligibilityReason = "too-recent"
)

type EligibilityResult struct {
	Eligible bool              `json:"eligible"`
	Reason   EligibilityReason `json:"reason,omitempty"`
}

// IsEligible decides whether a donor may donate as of the given time.
// Pure function of the donor snapshot; the rest window closes exactly
// RestPeriod after the last donation, so a donation 90 days old today
// makes the donor eligible again today.
func IsEligible(d *Donor, asOf time.Time) EligibilityResult {
	if d == nil || d.Status != StatusActive {
		return EligibilityResult{Eligible: false, Reason: ReasonBlocked}
	}
	if d.AvailabilityStatus == AvailabilityResting || d.AvailabilityStatus == AvailabilityMedicalReview {
		return EligibilityResult{Eligible: false, Reason: ReasonResting}
	}
	if d.LastDonationDate != nil && asOf.Sub(*d.LastDonationDate) < RestPeriod {
		return EligibilityResult{Eligible: false, Reason: ReasonTooRecent}
	}
	return EligibilityResult{Eligible: true}
}

// Score rates how well a donor suits a request. The integer has no
// absolute meaning; it only orders candidates. A recent donation lowers
// the score without excluding the donor; blocked accounts are the only
// hard exclusion, and that happens in Rank, not here.
func Score(d *Donor, r *DonationRequest, asOf time.Time) int {
	if d == nil || r == nil {
		return 0
	}
	score := 0
	if r.BloodGroup != "" && d.BloodGroup == r.BloodGroup {
		score += weightBloodGroup
	}
	if r.RecipientDistrict != "" && d.District == r.RecipientDistrict {
		score += weightDistrict
	}
	if r.RecipientUpazila != "" && d.Upazila == r.RecipientUpazila {
		score += weightUpazila
	}
	if d.AvailabilityStatus == AvailabilityAvailable {
		score += weightAvailability
	}
	if d.LastDonationDate != nil {
		since := asOf.Sub(*d.LastDonationDate)
		if since >= RestPeriod {
			score += weightRested
		} else if since < RecentDonationWindow {
			score -= penaltyRecent
		}
	}
	return score
}

// ScoredDonor is one shortlist entry: donor identity plus the score and
// availability captured at ranking time.
type ScoredDonor struct {
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	District           string             `json:"district"`
	Upazila            string             `json:"upazila"`
	Score              int                `json:"score"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
}

// Rank scores the donor pool against a request and returns the top limit
// candidates, highest score first. Only active donor accounts are
// considered; resting or recently-donated donors stay in, just lower.
// An unset request blood group means scoring has nothing to anchor on,
// so the shortlist is empty by contract rather than an error. Ties keep
// the pool's input order.
func Rank(pool []Donor, r *DonationRequest, asOf time.Time, limit int) []ScoredDonor {
	if r == nil || r.BloodGroup == "" || limit <= 0 {
		return []ScoredDonor{}
	}

	scored := make([]ScoredDonor, 0, len(pool))
	for i := range pool {
		d := &pool[i]
		if d.Role != RoleDonor || d.Status != StatusActive {
			continue
		}
		scored = append(scored, ScoredDonor{
			Name:               d.Name,
			Email:              d.Email,
			District:           d.District,
			Upazila:            d.Upazila,
			Score:              Score(d, r, asOf),
			AvailabilityStatus: d.AvailabilityStatus,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
