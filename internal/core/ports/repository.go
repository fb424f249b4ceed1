package ports

import (
	"context"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
)

// DonorSearchFilter narrows a donor search. Zero-value fields are ignored;
// role and account status are always pinned to donor/active by the service.
type DonorSearchFilter struct {
	BloodGroup   domain.BloodGroup
	District     string
	Upazila      string
	Availability domain.AvailabilityStatus
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Donor, error)
	FindByID(ctx context.Context, id string) (*domain.Donor, error)
	Create(ctx context.Context, user domain.Donor) error
	IncrementLoginCount(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, id string, user domain.Donor) error
	UpdateRole(ctx context.Context, email string, role domain.Role) error
	UpdateStatus(ctx context.Context, email string, status domain.AccountStatus) error
	ListExcluding(ctx context.Context, excludeEmail string) ([]domain.Donor, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Donor, error)
	Search(ctx context.Context, filter DonorSearchFilter) ([]domain.Donor, error)
}

type DonationRepository interface {
	Create(ctx context.Context, req domain.DonationRequest) error
	FindByID(ctx context.Context, id string) (*domain.DonationRequest, error)
	ListByRequester(ctx context.Context, email string) ([]domain.DonationRequest, error)
	ListAll(ctx context.Context) ([]domain.DonationRequest, error)
	ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.DonationRequest, error)
	Update(ctx context.Context, id string, req domain.DonationRequest) error
	UpdateStatus(ctx context.Context, req domain.DonationRequest) error
	// CompleteWithHistory finishes a request and writes the donor's
	// history record plus the outbox event in one transaction.
	CompleteWithHistory(ctx context.Context, req domain.DonationRequest, record domain.DonorHistoryRecord, outboxPayload []byte) error
	Delete(ctx context.Context, id string) (bool, error)
}

type DonorHistoryRepository interface {
	Create(ctx context.Context, record domain.DonorHistoryRecord) error
	Summaries(ctx context.Context) ([]domain.DonorHistorySummary, error)
	ListByEmail(ctx context.Context, email string) ([]domain.DonorHistoryRecord, error)
	ListByDonationID(ctx context.Context, donationID string) ([]domain.DonorHistoryRecord, error)
}
