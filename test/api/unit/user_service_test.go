package unit

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/services"
	"github.com/muhammadMilon/BloodBridge/test/mocks"
)

func TestUserService_RegisterUser(t *testing.T) {
	tests := []struct {
		name        string
		user        domain.Donor
		setupMock   func(*mocks.MockUserRepository)
		wantCreated bool
		expectError bool
	}{
		{
			name: "first_signin_creates_user",
			user: domain.Donor{
				Name:  "New User",
				Email: "new@example.com",
			},
			setupMock:   func(m *mocks.MockUserRepository) {},
			wantCreated: true,
		},
		{
			name: "repeat_signin_bumps_login_count",
			user: domain.Donor{Email: "existing@example.com"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.SeedUser(mocks.CreateTestDonor("existing@example.com", domain.BloodOPositive))
			},
			wantCreated: false,
		},
		{
			name:        "missing_email_rejected",
			user:        domain.Donor{Name: "No Email"},
			setupMock:   func(m *mocks.MockUserRepository) {},
			expectError: true,
		},
		{
			name: "create_failure_propagates",
			user: domain.Donor{Email: "new@example.com"},
			setupMock: func(m *mocks.MockUserRepository) {
				m.CreateError = context.DeadlineExceeded
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockUserRepository()
			tt.setupMock(mockRepo)

			service := services.NewUserService(mockRepo)

			created, err := service.RegisterUser(context.Background(), tt.user)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("created = %v, want %v", created, tt.wantCreated)
			}

			if tt.wantCreated {
				if len(mockRepo.CreateCalls) != 1 {
					t.Fatalf("expected 1 Create call, got %d", len(mockRepo.CreateCalls))
				}
				stored := mockRepo.CreateCalls[0]
				if stored.ID == "" {
					t.Error("new user has no id")
				}
				if stored.Role != domain.RoleDonor {
					t.Errorf("default role = %s, want donor", stored.Role)
				}
				if stored.Status != domain.StatusActive {
					t.Errorf("default status = %s, want active", stored.Status)
				}
				if stored.LoginCount != 1 {
					t.Errorf("login count = %d, want 1", stored.LoginCount)
				}
			} else {
				if len(mockRepo.IncrementLoginCountCalls) != 1 {
					t.Errorf("expected 1 IncrementLoginCount call, got %d", len(mockRepo.IncrementLoginCountCalls))
				}
			}
		})
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	tests := []struct {
		name        string
		role        domain.Role
		expectError bool
	}{
		{"admin", domain.RoleAdmin, false},
		{"donor", domain.RoleDonor, false},
		{"receiver", domain.RoleReceiver, false},
		{"volunteer", domain.RoleVolunteer, false},
		{"unknown_role", "superuser", true},
		{"empty_role", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockUserRepository()
			mockRepo.SeedUser(mocks.CreateTestDonor("user@example.com", domain.BloodOPositive))

			service := services.NewUserService(mockRepo)

			err := service.UpdateRole(context.Background(), "user@example.com", tt.role)

			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				if len(mockRepo.UpdateRoleCalls) != 0 {
					t.Error("repository must not be called for an invalid role")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(mockRepo.UpdateRoleCalls) != 1 {
				t.Errorf("expected 1 UpdateRole call, got %d", len(mockRepo.UpdateRoleCalls))
			}
		})
	}
}

func TestUserService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.AccountStatus
		expectError bool
	}{
		{"active", domain.StatusActive, false},
		{"blocked", domain.StatusBlocked, false},
		{"unknown_status", "suspended", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockUserRepository()
			service := services.NewUserService(mockRepo)

			err := service.UpdateStatus(context.Background(), "user@example.com", tt.status)

			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUserService_UpdateProfile_RequiresID(t *testing.T) {
	mockRepo := mocks.NewMockUserRepository()
	service := services.NewUserService(mockRepo)

	err := service.UpdateProfile(context.Background(), "", domain.Donor{Name: "X"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
