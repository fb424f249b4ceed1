package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

const donationColumns = `id, requester_name, requester_email, recipient_name,
	recipient_district, recipient_upazila, hospital_name, full_address,
	blood_group, donation_date, donation_time, request_message, urgency_level,
	units_needed, donation_status, donor_name, donor_email, recommended_donors, created_at`

const donationCompletedEventType = "donation.completed"

type DonationSQLRepository struct {
	db *sql.DB
}

var _ ports.DonationRepository = (*DonationSQLRepository)(nil)

func NewDonationSQLRepository(db *sql.DB) *DonationSQLRepository {
	return &DonationSQLRepository{db: db}
}

func scanDonation(row interface{ Scan(...any) error }) (*domain.DonationRequest, error) {
	var d domain.DonationRequest
	var donorName, donorEmail sql.NullString
	var recommended []byte
	err := row.Scan(
		&d.ID, &d.RequesterName, &d.RequesterEmail, &d.RecipientName,
		&d.RecipientDistrict, &d.RecipientUpazila, &d.HospitalName, &d.FullAddress,
		&d.BloodGroup, &d.DonationDate, &d.DonationTime, &d.RequestMessage,
		&d.UrgencyLevel, &d.UnitsNeeded, &d.DonationStatus,
		&donorName, &donorEmail, &recommended, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.DonorName = donorName.String
	d.DonorEmail = donorEmail.String
	if len(recommended) > 0 {
		if err := json.Unmarshal(recommended, &d.RecommendedDonors); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

func (r *DonationSQLRepository) Create(ctx context.Context, req domain.DonationRequest) error {
	recommended, err := json.Marshal(req.RecommendedDonors)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO donation_requests (id, requester_name, requester_email,
			recipient_name, recipient_district, recipient_upazila, hospital_name,
			full_address, blood_group, donation_date, donation_time, request_message,
			urgency_level, units_needed, donation_status, recommended_donors, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		req.ID, req.RequesterName, req.RequesterEmail, req.RecipientName,
		req.RecipientDistrict, req.RecipientUpazila, req.HospitalName, req.FullAddress,
		req.BloodGroup, req.DonationDate, req.DonationTime, req.RequestMessage,
		req.UrgencyLevel, req.UnitsNeeded, req.DonationStatus, recommended, req.CreatedAt,
	)
	return err
}

func (r *DonationSQLRepository) FindByID(ctx context.Context, id string) (*domain.DonationRequest, error) {
	return scanDonation(r.db.QueryRowContext(ctx,
		"SELECT "+donationColumns+" FROM donation_requests WHERE id = $1", id))
}

func (r *DonationSQLRepository) ListByRequester(ctx context.Context, email string) ([]domain.DonationRequest, error) {
	return r.list(ctx,
		"SELECT "+donationColumns+" FROM donation_requests WHERE requester_email = $1 ORDER BY created_at DESC", email)
}

func (r *DonationSQLRepository) ListAll(ctx context.Context) ([]domain.DonationRequest, error) {
	return r.list(ctx,
		"SELECT "+donationColumns+" FROM donation_requests ORDER BY created_at DESC")
}

func (r *DonationSQLRepository) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.DonationRequest, error) {
	return r.list(ctx,
		"SELECT "+donationColumns+" FROM donation_requests WHERE donation_status = $1 ORDER BY created_at DESC", status)
}

func (r *DonationSQLRepository) list(ctx context.Context, query string, args ...any) ([]domain.DonationRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.DonationRequest
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *d)
	}
	return requests, rows.Err()
}

func (r *DonationSQLRepository) Update(ctx context.Context, id string, req domain.DonationRequest) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE donation_requests SET requester_name = $2, recipient_name = $3,
			recipient_district = $4, recipient_upazila = $5, hospital_name = $6,
			full_address = $7, blood_group = $8, donation_date = $9, donation_time = $10,
			request_message = $11, urgency_level = $12, units_needed = $13
		WHERE id = $1`,
		id, req.RequesterName, req.RecipientName, req.RecipientDistrict,
		req.RecipientUpazila, req.HospitalName, req.FullAddress, req.BloodGroup,
		req.DonationDate, req.DonationTime, req.RequestMessage, req.UrgencyLevel,
		req.UnitsNeeded,
	)
	return err
}

func (r *DonationSQLRepository) UpdateStatus(ctx context.Context, req domain.DonationRequest) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE donation_requests SET donation_status = $2, donor_name = $3, donor_email = $4
		WHERE id = $1`,
		req.ID, req.DonationStatus, nullIfEmpty(req.DonorName), nullIfEmpty(req.DonorEmail),
	)
	return err
}

// CompleteWithHistory marks the request done, appends the donor history
// record, and stages the outbox event in one transaction, followed
// by a NOTIFY so the relay picks the event up without polling.
func (r *DonationSQLRepository) CompleteWithHistory(ctx context.Context, req domain.DonationRequest, record domain.DonorHistoryRecord, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE donation_requests SET donation_status = $2 WHERE id = $1",
		req.ID, domain.DonationDone)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO donor_history (id, donor_email, donor_name, donation_id,
			blood_group, district, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, record.DonorEmail, record.DonorName, record.DonationID,
		record.BloodGroup, record.District, record.CreatedAt,
	)
	if err != nil {
		return err
	}

	eventID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4)`,
		eventID, donationCompletedEventType, outboxPayload, time.Now(),
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_notify('outbox_channel', $1)", eventID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *DonationSQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM donation_requests WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
