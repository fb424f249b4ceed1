package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type DonorService struct {
	userRepo    ports.UserRepository
	historyRepo ports.DonorHistoryRepository
}

func NewDonorService(userRepo ports.UserRepository, historyRepo ports.DonorHistoryRepository) *DonorService {
	return &DonorService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
	}
}

var _ ports.DonorService = (*DonorService)(nil)

// Search filters the donor pool on exact-match criteria and annotates
// each hit with its current eligibility for display. Resting and
// recently-donated donors still show up (flagged), matching how the
// ranking side treats them.
func (s *DonorService) Search(ctx context.Context, filter ports.DonorSearchFilter) ([]ports.DonorWithEligibility, error) {
	donors, err := s.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]ports.DonorWithEligibility, 0, len(donors))
	for i := range donors {
		results = append(results, ports.DonorWithEligibility{
			Donor:       donors[i],
			Eligibility: domain.IsEligible(&donors[i], now),
		})
	}
	return results, nil
}

func (s *DonorService) ListDonors(ctx context.Context) ([]domain.Donor, error) {
	return s.userRepo.ListByRole(ctx, domain.RoleDonor)
}

// AddHistoryRecord registers a verified donation that happened outside a
// platform request (blood camps, walk-ins). Completed requests append
// their own records transactionally.
func (s *DonorService) AddHistoryRecord(ctx context.Context, record domain.DonorHistoryRecord) (*domain.DonorHistoryRecord, error) {
	if record.DonorEmail == "" {
		return nil, fmt.Errorf("%w: donor email is required", domain.ErrInvalidInput)
	}
	record.ID = uuid.NewString()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := s.historyRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *DonorService) HistorySummaries(ctx context.Context) ([]domain.DonorHistorySummary, error) {
	return s.historyRepo.Summaries(ctx)
}

func (s *DonorService) HistoryByEmail(ctx context.Context, email string) ([]domain.DonorHistoryRecord, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	return s.historyRepo.ListByEmail(ctx, email)
}

func (s *DonorService) FindByDonationID(ctx context.Context, donationID string) ([]domain.DonorHistoryRecord, error) {
	if donationID == "" {
		return nil, fmt.Errorf("%w: donation id is required", domain.ErrInvalidInput)
	}
	return s.historyRepo.ListByDonationID(ctx, donationID)
}
