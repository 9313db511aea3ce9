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

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student record and returns its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	query := `
		INSERT INTO students (user_id, full_name, grade, school_name, city, zipcode, subjects, other_subjects)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		student.UserID,
		student.FullName,
		student.Grade,
		student.SchoolName,
		student.City,
		student.Zipcode,
		student.Subjects,
		student.OtherSubjects,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return student.ID, nil
}

// GetByUserID retrieves the student record owned by a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, full_name, grade, school_name, city, zipcode, subjects, other_subjects, created_at
		FROM students
		WHERE user_id = $1`

	student := &models.Student{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&student.ID,
		&student.UserID,
		&student.FullName,
		&student.Grade,
		&student.SchoolName,
		&student.City,
		&student.Zipcode,
		&student.Subjects,
		&student.OtherSubjects,
		&student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting student by user id: %w", err)
	}

	return student, nil
}
