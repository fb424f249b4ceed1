package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

// DonationService owns the request lifecycle: creation with a server-side
// donor shortlist, status transitions, and the history/outbox side effect
// when a donation completes.
//
// Concurrent status updates against the same request are last-write-wins:
// the transition guard runs against the row read at the start of the call,
// and the final UPDATE overwrites. The guard still prevents any terminal
// state from being reopened.
type DonationService struct {
	donationRepo ports.DonationRepository
	userRepo     ports.UserRepository
}

func NewDonationService(donationRepo ports.DonationRepository, userRepo ports.UserRepository) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		userRepo:     userRepo,
	}
}

var _ ports.DonationService = (*DonationService)(nil)

// CreateRequest validates, ranks the current donor pool against the
// request, attaches the top candidates as a snapshot, and stores it.
// The shortlist is best-effort: a thin pool simply yields a short list.
func (s *DonationService) CreateRequest(ctx context.Context, req domain.DonationRequest) (*domain.DonationRequest, error) {
	req.DonationStatus = domain.DonationPending
	if req.UnitsNeeded == 0 {
		req.UnitsNeeded = 1
	}
	if req.UrgencyLevel == "" {
		req.UrgencyLevel = domain.UrgencyCritical
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pool, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, fmt.Errorf("fetch donor pool: %w", err)
	}

	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	req.RecommendedDonors = domain.Rank(pool, &req, req.CreatedAt, domain.ShortlistSize)

	if err := s.donationRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *DonationService) ListMine(ctx context.Context, requesterEmail string) ([]domain.DonationRequest, error) {
	return s.donationRepo.ListByRequester(ctx, requesterEmail)
}

func (s *DonationService) ListAll(ctx context.Context) ([]domain.DonationRequest, error) {
	return s.donationRepo.ListAll(ctx)
}

// ListPublic is the unauthenticated feed: pending requests only.
func (s *DonationService) ListPublic(ctx context.Context) ([]domain.DonationRequest, error) {
	return s.donationRepo.ListByStatus(ctx, domain.DonationPending)
}

func (s *DonationService) Get(ctx context.Context, id string) (*domain.DonationRequest, error) {
	return s.donationRepo.FindByID(ctx, id)
}

// Update replaces the request's editable fields. Status does not travel
// this path; UpdateStatus owns transitions.
func (s *DonationService) Update(ctx context.Context, id string, req domain.DonationRequest) error {
	existing, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	req.ID = existing.ID
	req.DonationStatus = existing.DonationStatus
	req.RecommendedDonors = existing.RecommendedDonors
	req.CreatedAt = existing.CreatedAt
	if err := req.Validate(); err != nil {
		return err
	}
	return s.donationRepo.Update(ctx, id, req)
}

// UpdateStatus applies a lifecycle transition. pending -> inprogress
// records the committed donor; inprogress -> done additionally appends
// the donor's history record and an outbox event in one transaction.
func (s *DonationService) UpdateStatus(ctx context.Context, id string, next domain.DonationStatus, donorName, donorEmail string) error {
	req, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := req.TransitionTo(next); err != nil {
		return err
	}

	switch next {
	case domain.DonationInProgress:
		if donorEmail == "" {
			return fmt.Errorf("%w: a committed donor is required to start a donation", domain.ErrInvalidInput)
		}
		req.DonorName = donorName
		req.DonorEmail = donorEmail
		return s.donationRepo.UpdateStatus(ctx, *req)

	case domain.DonationDone:
		if req.DonorEmail == "" {
			return fmt.Errorf("%w: request has no committed donor", domain.ErrInvalidInput)
		}
		now := time.Now()
		record := domain.DonorHistoryRecord{
			ID:         uuid.NewString(),
			DonorEmail: req.DonorEmail,
			DonorName:  req.DonorName,
			DonationID: req.ID,
			BloodGroup: req.BloodGroup,
			District:   req.RecipientDistrict,
			CreatedAt:  now,
		}
		evt := ports.DonationCompletedEvent{
			RequestID:   req.ID,
			DonorEmail:  req.DonorEmail,
			DonorName:   req.DonorName,
			BloodGroup:  string(req.BloodGroup),
			District:    req.RecipientDistrict,
			CompletedAt: now,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}
		return s.donationRepo.CompleteWithHistory(ctx, *req, record, payload)

	default:
		return s.donationRepo.UpdateStatus(ctx, *req)
	}
}

// Delete removes a request outright. Deletion is orthogonal to the
// lifecycle and allowed from any state, terminal included.
func (s *DonationService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: request id is required", domain.ErrInvalidInput)
	}
	return s.donationRepo.Delete(ctx, id)
}
