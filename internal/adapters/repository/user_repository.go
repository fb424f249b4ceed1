package repository

import (
	"context"
	"database/sql"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

const userColumns = `id, name, email, blood_group, district, upazila,
	availability_status, last_donation_date, status, role, login_count, created_at`

type UserSQLRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserSQLRepository)(nil)

func NewUserSQLRepository(db *sql.DB) *UserSQLRepository {
	return &UserSQLRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*domain.Donor, error) {
	var u domain.Donor
	var lastDonation sql.NullTime
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.BloodGroup, &u.District, &u.Upazila,
		&u.AvailabilityStatus, &lastDonation, &u.Status, &u.Role,
		&u.LoginCount, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastDonation.Valid {
		t := lastDonation.Time
		u.LastDonationDate = &t
	}
	return &u, nil
}

func (r *UserSQLRepository) FindByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (r *UserSQLRepository) FindByID(ctx context.Context, id string) (*domain.Donor, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *UserSQLRepository) Create(ctx context.Context, user domain.Donor) error {
	var lastDonation sql.NullTime
	if user.LastDonationDate != nil {
		lastDonation = sql.NullTime{Time: *user.LastDonationDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, blood_group, district, upazila,
			availability_status, last_donation_date, status, role, login_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		user.ID, user.Name, user.Email, user.BloodGroup, user.District, user.Upazila,
		user.AvailabilityStatus, lastDonation, user.Status, user.Role,
		user.LoginCount, user.CreatedAt,
	)
	return err
}

func (r *UserSQLRepository) IncrementLoginCount(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET login_count = login_count + 1 WHERE email = $1", email)
	return err
}

func (r *UserSQLRepository) UpdateProfile(ctx context.Context, id string, user domain.Donor) error {
	var lastDonation sql.NullTime
	if user.LastDonationDate != nil {
		lastDonation = sql.NullTime{Time: *user.LastDonationDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2, blood_group = $3, district = $4, upazila = $5,
			availability_status = $6, last_donation_date = $7
		WHERE id = $1`,
		id, user.Name, user.BloodGroup, user.District, user.Upazila,
		user.AvailabilityStatus, lastDonation,
	)
	return err
}

func (r *UserSQLRepository) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET role = $2 WHERE email = $1", email, role)
	return err
}

func (r *UserSQLRepository) UpdateStatus(ctx context.Context, email string, status domain.AccountStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET status = $2 WHERE email = $1", email, status)
	return err
}

func (r *UserSQLRepository) ListExcluding(ctx context.Context, excludeEmail string) ([]domain.Donor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email <> $1 ORDER BY created_at", excludeEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserSQLRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Donor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role = $1 ORDER BY created_at", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Search always pins role = donor and status = active; the optional
// filter fields are exact matches.
func (r *UserSQLRepository) Search(ctx context.Context, filter ports.DonorSearchFilter) ([]domain.Donor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		WHERE role = 'donor' AND status = 'active'
			AND ($1 = '' OR blood_group = $1)
			AND ($2 = '' OR district = $2)
			AND ($3 = '' OR upazila = $3)
			AND ($4 = '' OR availability_status = $4)
		ORDER BY created_at`,
		string(filter.BloodGroup), filter.District, filter.Upazila, string(filter.Availability),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.Donor, error) {
	var users []domain.Donor
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
