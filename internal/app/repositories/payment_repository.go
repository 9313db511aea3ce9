package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

// PaymentRepository handles database operations for payment records
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a pending payment and returns its ID
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) (int64, error) {
	query := squirrel.Insert("payments").
		Columns("email", "course_id", "course_name", "amount_cents", "status", "checkout_session_id").
		Values(p.Email, p.CourseID, p.CourseName, p.AmountCents, p.Status, p.CheckoutSessionID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return 0, fmt.Errorf("error creating payment: %w", err)
	}

	return p.ID, nil
}

// SetCheckoutSessionID attaches the hosted checkout session to a payment
func (r *PaymentRepository) SetCheckoutSessionID(ctx context.Context, id int64, sessionID string) error {
	query := squirrel.Update("payments").
		Set("checkout_session_id", sessionID).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// GetByCheckoutSessionID retrieves a payment by its checkout session
func (r *PaymentRepository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	query := squirrel.Select("id", "email", "course_id", "course_name", "amount_cents", "status", "checkout_session_id", "created_at").
		From("payments").
		Where("checkout_session_id = ?", sessionID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	p := &models.Payment{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&p.ID, &p.Email, &p.CourseID, &p.CourseName, &p.AmountCents, &p.Status, &p.CheckoutSessionID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error getting payment: %w", err)
	}

	return p, nil
}

// MarkCompleted flips a payment's status to completed
func (r *PaymentRepository) MarkCompleted(ctx context.Context, sessionID string) error {
	query := squirrel.Update("payments").
		Set("status", models.PaymentStatusCompleted).
		Where("checkout_session_id = ?", sessionID).
		Where("status = ?", models.PaymentStatusPending).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error completing payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}
