package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type UserService struct {
	userRepo ports.UserRepository
}

func NewUserService(userRepo ports.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ ports.UserService = (*UserService)(nil)

// RegisterUser creates the user on first sign-in. Re-registrations are
// not an error: the existing record just gets its login count bumped.
// Returns whether a new record was created.
func (s *UserService) RegisterUser(ctx context.Context, user domain.Donor) (bool, error) {
	if user.Email == "" {
		return false, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		if err := s.userRepo.IncrementLoginCount(ctx, user.Email); err != nil {
			return false, err
		}
		return false, nil
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.LoginCount = 1
	if user.Role == "" {
		user.Role = domain.RoleDonor
	}
	if user.Status == "" {
		user.Status = domain.StatusActive
	}
	if user.AvailabilityStatus == "" {
		user.AvailabilityStatus = domain.AvailabilityAvailable
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, user domain.Donor) error {
	if id == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return s.userRepo.UpdateProfile(ctx, id, user)
}

// ListUsers returns every account except the caller's own, for the admin
// and volunteer management views.
func (s *UserService) ListUsers(ctx context.Context, excludeEmail string) ([]domain.Donor, error) {
	return s.userRepo.ListExcluding(ctx, excludeEmail)
}

func (s *UserService) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	switch role {
	case domain.RoleAdmin, domain.RoleDonor, domain.RoleReceiver, domain.RoleVolunteer:
	default:
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return s.userRepo.UpdateRole(ctx, email, role)
}

func (s *UserService) UpdateStatus(ctx context.Context, email string, status domain.AccountStatus) error {
	if status != domain.StatusActive && status != domain.StatusBlocked {
		return fmt.Errorf("%w: unknown account status %q", domain.ErrInvalidInput, status)
	}
	return s.userRepo.UpdateStatus(ctx, email, status)
}
