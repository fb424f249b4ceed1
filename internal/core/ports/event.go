package ports

import (
	"context"
	"time"
)

// DonationCompletedEvent is emitted through the outbox when a request
// transitions to done. Downstream consumers (notifications, analytics)
// read it from the donation queue.
type DonationCompletedEvent struct {
	RequestID   string    `json:"request_id"`
	DonorEmail  string    `json:"donor_email"`
	DonorName   string    `json:"donor_name"`
	BloodGroup  string    `json:"blood_group"`
	District    string    `json:"district"`
	CompletedAt time.Time `json:"completed_at"`
}

type DonationEventPublisher interface {
	PublishDonationCompleted(ctx context.Context, evt DonationCompletedEvent) error
}
