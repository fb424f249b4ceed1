package repository

import (
	"context"
	"database/sql"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

const historyColumns = "id, donor_email, donor_name, donation_id, blood_group, district, created_at"

type DonorHistorySQLRepository struct {
	db *sql.DB
}

var _ ports.DonorHistoryRepository = (*DonorHistorySQLRepository)(nil)

func NewDonorHistorySQLRepository(db *sql.DB) *DonorHistorySQLRepository {
	return &DonorHistorySQLRepository{db: db}
}

func (r *DonorHistorySQLRepository) Create(ctx context.Context, record domain.DonorHistoryRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO donor_history (id, donor_email, donor_name, donation_id,
			blood_group, district, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, record.DonorEmail, record.DonorName, record.DonationID,
		record.BloodGroup, record.District, record.CreatedAt,
	)
	return err
}

func (r *DonorHistorySQLRepository) Summaries(ctx context.Context) ([]domain.DonorHistorySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT donor_email, COUNT(*), MAX(created_at)
		FROM donor_history
		GROUP BY donor_email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.DonorHistorySummary
	for rows.Next() {
		var s domain.DonorHistorySummary
		var last sql.NullTime
		if err := rows.Scan(&s.DonorEmail, &s.TotalDonations, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			t := last.Time
			s.LastDonationDate = &t
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *DonorHistorySQLRepository) ListByEmail(ctx context.Context, email string) ([]domain.DonorHistoryRecord, error) {
	return r.list(ctx,
		"SELECT "+historyColumns+" FROM donor_history WHERE donor_email = $1 ORDER BY created_at DESC", email)
}

func (r *DonorHistorySQLRepository) ListByDonationID(ctx context.Context, donationID string) ([]domain.DonorHistoryRecord, error) {
	return r.list(ctx,
		"SELECT "+historyColumns+" FROM donor_history WHERE donation_id = $1 ORDER BY created_at DESC", donationID)
}

func (r *DonorHistorySQLRepository) list(ctx context.Context, query string, args ...any) ([]domain.DonorHistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DonorHistoryRecord
	for rows.Next() {
		var rec domain.DonorHistoryRecord
		if err := rows.Scan(&rec.ID, &rec.DonorEmail, &rec.DonorName, &rec.DonationID,
			&rec.BloodGroup, &rec.District, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
