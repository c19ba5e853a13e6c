package repositories

import (
	"testing"
	"time"

	"finsight/internal/database"
	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionRepository(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

type TransactionRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo TransactionRepositoryInterface
	user *models.User
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) createTransaction(userID uuid.UUID, amount float64, txnDate time.Time) *models.Transaction {
	txn := &models.Transaction{
		UserID:      userID,
		Amount:      decimal.NewFromFloat(amount),
		Description: "test transaction",
		Category:    "Groceries",
		TxnDate:     txnDate,
	}
	s.Require().NoError(s.repo.Create(txn))
	return txn
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Create() {
	txn := s.createTransaction(s.user.ID, 42.50, time.Now())

	s.NotEqual(uuid.Nil, txn.ID)
	s.NotZero(txn.CreatedAt)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Create_RejectsNonPositiveAmount() {
	txn := &models.Transaction{
		UserID:  s.user.ID,
		Amount:  decimal.Zero,
		TxnDate: time.Now(),
	}

	err := s.repo.Create(txn)
	s.Error(err)
	s.ErrorIs(err, models.ErrInvalidAmount)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetByID() {
	txn := s.createTransaction(s.user.ID, 42.50, time.Now())

	found, err := s.repo.GetByID(txn.ID)
	s.NoError(err)
	s.Equal(txn.ID, found.ID)

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrTransactionNotFound, err)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetByUserID_Pagination() {
	now := time.Now()
	for i := 0; i < 5; i++ {
		s.createTransaction(s.user.ID, 10, now.Add(-time.Duration(i)*time.Hour))
	}

	page1, total, err := s.repo.GetByUserID(s.user.ID, 0, 2)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page1, 2)

	page3, total, err := s.repo.GetByUserID(s.user.ID, 4, 2)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page3, 1)

	// Newest first
	s.True(page1[0].TxnDate.After(page1[1].TxnDate))
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetByUserID_OtherUsersExcluded() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	s.createTransaction(s.user.ID, 10, time.Now())
	s.createTransaction(other.ID, 20, time.Now())

	transactions, total, err := s.repo.GetByUserID(s.user.ID, 0, 50)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(transactions, 1)
	s.Equal(s.user.ID, transactions[0].UserID)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetByUserAndDateRange() {
	monthStart := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	inRange := s.createTransaction(s.user.ID, 100, monthStart.AddDate(0, 0, 10))
	s.createTransaction(s.user.ID, 50, monthStart.AddDate(0, 0, -1)) // previous month
	s.createTransaction(s.user.ID, 75, monthStart.AddDate(0, 1, 2))  // next month

	transactions, err := s.repo.GetByUserAndDateRange(s.user.ID, monthStart, monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond))
	s.NoError(err)
	s.Len(transactions, 1)
	s.Equal(inRange.ID, transactions[0].ID)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetAllByUser_OldestFirst() {
	now := time.Now()
	oldest := s.createTransaction(s.user.ID, 10, now.Add(-48*time.Hour))
	s.createTransaction(s.user.ID, 20, now.Add(-24*time.Hour))
	newest := s.createTransaction(s.user.ID, 30, now)

	transactions, err := s.repo.GetAllByUser(s.user.ID)
	s.NoError(err)
	s.Len(transactions, 3)
	s.Equal(oldest.ID, transactions[0].ID)
	s.Equal(newest.ID, transactions[2].ID)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Delete() {
	txn := s.createTransaction(s.user.ID, 42.50, time.Now())

	s.NoError(s.repo.Delete(txn.ID))

	_, err := s.repo.GetByID(txn.ID)
	s.Equal(ErrTransactionNotFound, err)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Delete_NotFound() {
	s.Equal(ErrTransactionNotFound, s.repo.Delete(uuid.New()))
}
