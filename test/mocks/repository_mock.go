// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository for testing.
// This mock allows us to test services without a real database connection.
type MockUserRepository struct {
	mu sync.RWMutex

	// In-memory storage keyed by email
	users map[string]*domain.Donor

	// Call tracking for verification
	FindByEmailCalls         []string
	FindByIDCalls            []string
	CreateCalls              []domain.Donor
	IncrementLoginCountCalls []string
	UpdateProfileCalls       []string
	UpdateRoleCalls          []string
	UpdateStatusCalls        []string
	ListByRoleCalls          []domain.Role
	SearchCalls              []ports.DonorSearchFilter

	// Error injection for testing error scenarios
	FindByEmailError         error
	FindByIDError            error
	CreateError              error
	IncrementLoginCountError error
	UpdateProfileError       error
	UpdateRoleError          error
	UpdateStatusError        error
	ListExcludingError       error
	ListByRoleError          error
	SearchError              error
}

// Ensure MockUserRepository implements ports.UserRepository at compile time.
// This is a common Go pattern to catch interface mismatches early.
var _ ports.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates a new mock repository with empty storage.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.Donor),
	}
}

// SeedUser adds a user to the mock repository for test setup.
func (m *MockUserRepository) SeedUser(user *domain.Donor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	m.mu.Lock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)
	m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.Donor, error) {
	m.mu.Lock()
	m.FindByIDCalls = append(m.FindByIDCalls, id)
	m.mu.Unlock()

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.Donor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)

	if m.CreateError != nil {
		return m.CreateError
	}

	stored := user
	m.users[user.Email] = &stored
	return nil
}

func (m *MockUserRepository) IncrementLoginCount(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IncrementLoginCountCalls = append(m.IncrementLoginCountCalls, email)

	if m.IncrementLoginCountError != nil {
		return m.IncrementLoginCountError
	}

	if user, ok := m.users[email]; ok {
		user.LoginCount++
	}
	return nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, user domain.Donor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateProfileCalls = append(m.UpdateProfileCalls, id)

	if m.UpdateProfileError != nil {
		return m.UpdateProfileError
	}

	for email, existing := range m.users {
		if existing.ID == id {
			updated := user
			updated.ID = id
			updated.Email = existing.Email
			m.users[email] = &updated
			return nil
		}
	}
	return errors.New("user not found")
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateRoleCalls = append(m.UpdateRoleCalls, email)

	if m.UpdateRoleError != nil {
		return m.UpdateRoleError
	}

	if user, ok := m.users[email]; ok {
		user.Role = role
	}
	return nil
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, email string, status domain.AccountStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateStatusCalls = append(m.UpdateStatusCalls, email)

	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}

	if user, ok := m.users[email]; ok {
		user.Status = status
	}
	return nil
}

func (m *MockUserRepository) ListExcluding(ctx context.Context, excludeEmail string) ([]domain.Donor, error) {
	if m.ListExcludingError != nil {
		return nil, m.ListExcludingError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Donor
	for email, user := range m.users {
		if email == excludeEmail {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Donor, error) {
	m.mu.Lock()
	m.ListByRoleCalls = append(m.ListByRoleCalls, role)
	m.mu.Unlock()

	if m.ListByRoleError != nil {
		return nil, m.ListByRoleError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Donor
	for _, user := range m.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (m *MockUserRepository) Search(ctx context.Context, filter ports.DonorSearchFilter) ([]domain.Donor, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, filter)
	m.mu.Unlock()

	if m.SearchError != nil {
		return nil, m.SearchError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Donor
	for _, user := range m.users {
		if user.Role != domain.RoleDonor || user.Status != domain.StatusActive {
			continue
		}
		if filter.BloodGroup != "" && user.BloodGroup != filter.BloodGroup {
			continue
		}
		if filter.District != "" && !strings.EqualFold(user.District, filter.District) {
			continue
		}
		if filter.Upazila != "" && !strings.EqualFold(user.Upazila, filter.Upazila) {
			continue
		}
		if filter.Availability != "" && user.AvailabilityStatus != filter.Availability {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

// Reset clears all stored data and call tracking.
// Use this between tests to ensure isolation.
func (m *MockUserRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[string]*domain.Donor)
	m.FindByEmailCalls = nil
	m.FindByIDCalls = nil
	m.CreateCalls = nil
	m.IncrementLoginCountCalls = nil
	m.UpdateProfileCalls = nil
	m.UpdateRoleCalls = nil
	m.UpdateStatusCalls = nil
	m.ListByRoleCalls = nil
	m.SearchCalls = nil
	m.FindByEmailError = nil
	m.FindByIDError = nil
	m.CreateError = nil
	m.IncrementLoginCountError = nil
	m.UpdateProfileError = nil
	m.UpdateRoleError = nil
	m.UpdateStatusError = nil
	m.ListExcludingError = nil
	m.ListByRoleError = nil
	m.SearchError = nil
}

// MockDonationRepository implements ports.DonationRepository for testing.
type MockDonationRepository struct {
	mu sync.RWMutex

	requests map[string]*domain.DonationRequest

	// Call tracking for verification
	CreateCalls              []domain.DonationRequest
	FindByIDCalls            []string
	UpdateStatusCalls        []domain.DonationRequest
	CompleteWithHistoryCalls []domain.DonationRequest
	OutboxPayloads           [][]byte
	DeleteCalls              []string

	// Error injection
	CreateError              error
	FindByIDError            error
	ListByRequesterError     error
	ListAllError             error
	ListByStatusError        error
	UpdateError              error
	UpdateStatusError        error
	CompleteWithHistoryError error
	DeleteError              error
}

var _ ports.DonationRepository = (*MockDonationRepository)(nil)

// NewMockDonationRepository creates a new mock donation repository.
func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{
		requests: make(map[string]*domain.DonationRequest),
	}
}

// SeedRequest adds a donation request for test setup.
func (m *MockDonationRepository) SeedRequest(req *domain.DonationRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
}

func (m *MockDonationRepository) Create(ctx context.Context, req domain.DonationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, req)

	if m.CreateError != nil {
		return m.CreateError
	}

	stored := req
	m.requests[req.ID] = &stored
	return nil
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id string) (*domain.DonationRequest, error) {
	m.mu.Lock()
	m.FindByIDCalls = append(m.FindByIDCalls, id)
	m.mu.Unlock()

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, errors.New("donation request not found")
	}
	return req, nil
}

func (m *MockDonationRepository) ListByRequester(ctx context.Context, email string) ([]domain.DonationRequest, error) {
	if m.ListByRequesterError != nil {
		return nil, m.ListByRequesterError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.DonationRequest
	for _, req := range m.requests {
		if req.RequesterEmail == email {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MockDonationRepository) ListAll(ctx context.Context) ([]domain.DonationRequest, error) {
	if m.ListAllError != nil {
		return nil, m.ListAllError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.DonationRequest
	for _, req := range m.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (m *MockDonationRepository) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.DonationRequest, error) {
	if m.ListByStatusError != nil {
		return nil, m.ListByStatusError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.DonationRequest
	for _, req := range m.requests {
		if req.DonationStatus == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MockDonationRepository) Update(ctx context.Context, id string, req domain.DonationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return m.UpdateError
	}

	existing, ok := m.requests[id]
	if !ok {
		return errors.New("donation request not found")
	}
	updated := req
	updated.ID = id
	updated.DonationStatus = existing.DonationStatus
	m.requests[id] = &updated
	return nil
}

func (m *MockDonationRepository) UpdateStatus(ctx context.Context, req domain.DonationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateStatusCalls = append(m.UpdateStatusCalls, req)

	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}

	stored := req
	m.requests[req.ID] = &stored
	return nil
}

func (m *MockDonationRepository) CompleteWithHistory(ctx context.Context, req domain.DonationRequest, record domain.DonorHistoryRecord, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteWithHistoryCalls = append(m.CompleteWithHistoryCalls, req)
	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)

	if m.CompleteWithHistoryError != nil {
		return m.CompleteWithHistoryError
	}

	stored := req
	m.requests[req.ID] = &stored
	return nil
}

func (m *MockDonationRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return false, m.DeleteError
	}

	if _, ok := m.requests[id]; !ok {
		return false, nil
	}
	delete(m.requests, id)
	return true, nil
}

// Reset clears all stored data and call tracking.
func (m *MockDonationRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = make(map[string]*domain.DonationRequest)
	m.CreateCalls = nil
	m.FindByIDCalls = nil
	m.UpdateStatusCalls = nil
	m.CompleteWithHistoryCalls = nil
	m.OutboxPayloads = nil
	m.DeleteCalls = nil
	m.CreateError = nil
	m.FindByIDError = nil
	m.ListByRequesterError = nil
	m.ListAllError = nil
	m.ListByStatusError = nil
	m.UpdateError = nil
	m.UpdateStatusError = nil
	m.CompleteWithHistoryError = nil
	m.DeleteError = nil
}

// MockDonorHistoryRepository implements ports.DonorHistoryRepository for testing.
type MockDonorHistoryRepository struct {
	mu sync.RWMutex

	records []domain.DonorHistoryRecord

	// Call tracking
	CreateCalls []domain.DonorHistoryRecord

	// Error injection
	CreateError           error
	SummariesError        error
	ListByEmailError      error
	ListByDonationIDError error
}

var _ ports.DonorHistoryRepository = (*MockDonorHistoryRepository)(nil)

// NewMockDonorHistoryRepository creates a new mock history repository.
func NewMockDonorHistoryRepository() *MockDonorHistoryRepository {
	return &MockDonorHistoryRepository{}
}

// SeedRecord adds a history record for test setup.
func (m *MockDonorHistoryRepository) SeedRecord(record domain.DonorHistoryRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
}

func (m *MockDonorHistoryRepository) Create(ctx context.Context, record domain.DonorHistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, record)

	if m.CreateError != nil {
		return m.CreateError
	}

	m.records = append(m.records, record)
	return nil
}

func (m *MockDonorHistoryRepository) Summaries(ctx context.Context) ([]domain.DonorHistorySummary, error) {
	if m.SummariesError != nil {
		return nil, m.SummariesError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	byEmail := make(map[string]*domain.DonorHistorySummary)
	var order []string
	for _, record := range m.records {
		summary, ok := byEmail[record.DonorEmail]
		if !ok {
			summary = &domain.DonorHistorySummary{DonorEmail: record.DonorEmail}
			byEmail[record.DonorEmail] = summary
			order = append(order, record.DonorEmail)
		}
		summary.TotalDonations++
		if summary.LastDonationDate == nil || record.CreatedAt.After(*summary.LastDonationDate) {
			last := record.CreatedAt
			summary.LastDonationDate = &last
		}
	}

	out := make([]domain.DonorHistorySummary, 0, len(order))
	for _, email := range order {
		out = append(out, *byEmail[email])
	}
	return out, nil
}

func (m *MockDonorHistoryRepository) ListByEmail(ctx context.Context, email string) ([]domain.DonorHistoryRecord, error) {
	if m.ListByEmailError != nil {
		return nil, m.ListByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.DonorHistoryRecord
	for _, record := range m.records {
		if record.DonorEmail == email {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *MockDonorHistoryRepository) ListByDonationID(ctx context.Context, donationID string) ([]domain.DonorHistoryRecord, error) {
	if m.ListByDonationIDError != nil {
		return nil, m.ListByDonationIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.DonorHistoryRecord
	for _, record := range m.records {
		if record.DonationID == donationID {
			out = append(out, record)
		}
	}
	return out, nil
}

// Reset clears all stored data and call tracking.
func (m *MockDonorHistoryRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	m.CreateCalls = nil
	m.CreateError = nil
	m.SummariesError = nil
	m.ListByEmailError = nil
	m.ListByDonationIDError = nil
}
