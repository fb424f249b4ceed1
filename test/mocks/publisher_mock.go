package mocks

import (
	"context"
	"sync"

	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

// MockDonationEventPublisher implements ports.DonationEventPublisher for testing.
// This mock allows us to test the outbox relay without a real RabbitMQ connection.
//
// In the hexagonal architecture:
// - ports.DonationEventPublisher is the port (interface)
// - RabbitMQBroker is the real adapter (production)
// - MockDonationEventPublisher is the test adapter (testing)
type MockDonationEventPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []ports.DonationCompletedEvent

	// Error injection for testing error scenarios
	PublishError error

	// Track number of calls
	PublishCallCount int
}

// Ensure MockDonationEventPublisher implements ports.DonationEventPublisher at compile time.
var _ ports.DonationEventPublisher = (*MockDonationEventPublisher)(nil)

// NewMockDonationEventPublisher creates a new mock publisher.
func NewMockDonationEventPublisher() *MockDonationEventPublisher {
	return &MockDonationEventPublisher{
		PublishedEvents: make([]ports.DonationCompletedEvent, 0),
	}
}

// PublishDonationCompleted captures published events for verification.
func (m *MockDonationEventPublisher) PublishDonationCompleted(ctx context.Context, evt ports.DonationCompletedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns all events that were published.
func (m *MockDonationEventPublisher) GetPublishedEvents() []ports.DonationCompletedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	events := make([]ports.DonationCompletedEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

// GetPublishCount returns the number of times PublishDonationCompleted was called.
func (m *MockDonationEventPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}

// Reset clears all tracking data.
func (m *MockDonationEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = make([]ports.DonationCompletedEvent, 0)
	m.PublishError = nil
	m.PublishCallCount = 0
}
