package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	StudentRepository           *StudentRepository
	ParentInfoRepository        *ParentInfoRepository
	PhoneVerificationRepository *PhoneVerificationRepository
	PaymentRepository           *PaymentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		StudentRepository:           NewStudentRepository(db),
		ParentInfoRepository:        NewParentInfoRepository(db),
		PhoneVerificationRepository: NewPhoneVerificationRepository(db),
		PaymentRepository:           NewPaymentRepository(db),
	}
}
