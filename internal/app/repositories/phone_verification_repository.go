package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

// PhoneVerificationRepository handles database operations for OTP challenges
type PhoneVerificationRepository struct {
	db *pgxpool.Pool
}

// NewPhoneVerificationRepository creates a new PhoneVerificationRepository
func NewPhoneVerificationRepository(db *pgxpool.Pool) *PhoneVerificationRepository {
	return &PhoneVerificationRepository{db: db}
}

// Create inserts a new OTP challenge
func (r *PhoneVerificationRepository) Create(ctx context.Context, v *models.PhoneVerification) error {
	query := squirrel.Insert("phone_verifications").
		Columns("id", "phone_number", "code", "verified", "created_at", "expires_at").
		Values(v.ID, v.PhoneNumber, v.Code, v.Verified, v.CreatedAt, v.ExpiresAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating phone verification: %w", err)
	}

	return nil
}

// GetByID retrieves an OTP challenge by its ID.
// apperrors.ErrVerificationNotFound is returned when no challenge exists.
func (r *PhoneVerificationRepository) GetByID(ctx context.Context, id string) (*models.PhoneVerification, error) {
	query := squirrel.Select("id", "phone_number", "code", "verified", "created_at", "expires_at").
		From("phone_verifications").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	v := &models.PhoneVerification{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&v.ID, &v.PhoneNumber, &v.Code, &v.Verified, &v.CreatedAt, &v.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("error getting phone verification: %w", err)
	}

	return v, nil
}

// MarkVerified flips the verified flag on a challenge
func (r *PhoneVerificationRepository) MarkVerified(ctx context.Context, id string) error {
	query := squirrel.Update("phone_verifications").
		Set("verified", true).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVerificationNotFound
	}

	return nil
}

// DeleteExpired removes challenges whose expiry time has passed
func (r *PhoneVerificationRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	query := squirrel.Delete("phone_verifications").
		Where("expires_at <= ?", now).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting expired verifications: %w", err)
	}

	return nil
}
