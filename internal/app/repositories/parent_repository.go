package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

// ParentInfoRepository handles database operations for parent contact records
type ParentInfoRepository struct {
	db *pgxpool.Pool
}

// NewParentInfoRepository creates a new ParentInfoRepository
func NewParentInfoRepository(db *pgxpool.Pool) *ParentInfoRepository {
	return &ParentInfoRepository{db: db}
}

// Create inserts the parent contact record for a student
func (r *ParentInfoRepository) Create(ctx context.Context, parent *models.ParentInfo) (int64, error) {
	query := `
		INSERT INTO parent_info (student_id, full_name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		parent.StudentID,
		parent.FullName,
		parent.Email,
		parent.Phone,
	).Scan(&parent.ID, &parent.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating parent info: %w", err)
	}

	return parent.ID, nil
}

// GetByStudentID retrieves the parent contact record for a student
func (r *ParentInfoRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.ParentInfo, error) {
	query := `
		SELECT id, student_id, full_name, email, phone, created_at
		FROM parent_info
		WHERE student_id = $1`

	parent := &models.ParentInfo{}
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&parent.ID,
		&parent.StudentID,
		&parent.FullName,
		&parent.Email,
		&parent.Phone,
		&parent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting parent info by student id: %w", err)
	}

	return parent, nil
}
