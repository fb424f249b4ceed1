package ports

import (
	"context"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
)

type AuthService interface {
	// Login exchanges an identity-provider ID token for a system JWT.
	Login(ctx context.Context, idToken string) (string, error)
	// Logout denylists the presented system token until it expires.
	Logout(ctx context.Context, token string) error
}

type UserService interface {
	RegisterUser(ctx context.Context, user domain.Donor) (created bool, err error)
	GetUserByEmail(ctx context.Context, email string) (*domain.Donor, error)
	UpdateProfile(ctx context.Context, id string, user domain.Donor) error
	ListUsers(ctx context.Context, excludeEmail string) ([]domain.Donor, error)
	UpdateRole(ctx context.Context, email string, role domain.Role) error
	UpdateStatus(ctx context.Context, email string, status domain.AccountStatus) error
}

type DonationService interface {
	CreateRequest(ctx context.Context, req domain.DonationRequest) (*domain.DonationRequest, error)
	ListMine(ctx context.Context, requesterEmail string) ([]domain.DonationRequest, error)
	ListAll(ctx context.Context) ([]domain.DonationRequest, error)
	ListPublic(ctx context.Context) ([]domain.DonationRequest, error)
	Get(ctx context.Context, id string) (*domain.DonationRequest, error)
	Update(ctx context.Context, id string, req domain.DonationRequest) error
	UpdateStatus(ctx context.Context, id string, next domain.DonationStatus, donorName, donorEmail string) error
	Delete(ctx context.Context, id string) (bool, error)
}

// DonorWithEligibility is a search hit annotated for display. The
// eligibility note never filters the result set; blocked accounts are
// already excluded by the search itself.
type DonorWithEligibility struct {
	domain.Donor
	Eligibility domain.EligibilityResult `json:"eligibility"`
}

type DonorService interface {
	Search(ctx context.Context, filter DonorSearchFilter) ([]DonorWithEligibility, error)
	ListDonors(ctx context.Context) ([]domain.Donor, error)
	AddHistoryRecord(ctx context.Context, record domain.DonorHistoryRecord) (*domain.DonorHistoryRecord, error)
	HistorySummaries(ctx context.Context) ([]domain.DonorHistorySummary, error)
	HistoryByEmail(ctx context.Context, email string) ([]domain.DonorHistoryRecord, error)
	FindByDonationID(ctx context.Context, donationID string) ([]domain.DonorHistoryRecord, error)
}

type StatsService interface {
	PublicStats(ctx context.Context) (domain.PlatformStats, error)
}
