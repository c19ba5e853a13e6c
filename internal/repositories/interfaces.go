package repositories

import (
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByUserID(userID uuid.UUID) ([]models.Budget, error)
	// GetAll returns every budget in the system with its owning user preloaded,
	// as consumed by the risk analyzer.
	GetAll() ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id uuid.UUID) error
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByUserID(userID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetByUserAndDateRange(userID uuid.UUID, start, end time.Time) ([]models.Transaction, error)
	GetAllByUser(userID uuid.UUID) ([]models.Transaction, error)
	Delete(id uuid.UUID) error
}

// AlertRepositoryInterface defines the contract for alert repository operations
type AlertRepositoryInterface interface {
	Create(alert *models.Alert) error
	GetByID(id uuid.UUID) (*models.Alert, error)
	GetByStatus(status string) ([]models.Alert, error)
	GetRecent(limit int) ([]models.Alert, error)
	UpdateStatus(id uuid.UUID, status string) error
	DeleteByMessage(message string) error
}

// GoalRepositoryInterface defines the contract for goal repository operations
type GoalRepositoryInterface interface {
	Create(goal *models.Goal) error
	GetByID(id uuid.UUID) (*models.Goal, error)
	GetByUserID(userID uuid.UUID) ([]models.Goal, error)
	Update(goal *models.Goal) error
	Delete(id uuid.UUID) error
}

// ReceiptRepositoryInterface defines the contract for receipt repository operations
type ReceiptRepositoryInterface interface {
	Create(receipt *models.Receipt) error
	GetByID(id uuid.UUID) (*models.Receipt, error)
	GetByUserID(userID uuid.UUID) ([]models.Receipt, error)
}
