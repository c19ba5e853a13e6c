package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// PasswordServiceTestSuite defines the test suite for PasswordService
type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

// SetupTest runs before each test
func (s *PasswordServiceTestSuite) SetupTest() {
	s.service = NewPasswordService()
}

// TestPasswordServiceSuite runs the test suite
func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

// Test ValidatePassword
func (s *PasswordServiceTestSuite) TestValidatePassword_ValidPassword() {
	err := s.service.ValidatePassword("SecurePass123!@#")
	s.NoError(err)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooShort() {
	err := s.service.ValidatePassword("Short1!")
	s.Error(err)
	s.Contains(err.Error(), "password must be at least 12 characters")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooLong() {
	err := s.service.ValidatePassword("Aa1!" + strings.Repeat("x", MaxPasswordLength))
	s.Error(err)
	s.Contains(err.Error(), "password must not exceed 72 characters")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingUppercase() {
	err := s.service.ValidatePassword("securepass123!@#")
	s.Error(err)
	s.Contains(err.Error(), "password must contain at least one uppercase letter")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingLowercase() {
	err := s.service.ValidatePassword("SECUREPASS123!@#")
	s.Error(err)
	s.Contains(err.Error(), "password must contain at least one lowercase letter")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingNumber() {
	err := s.service.ValidatePassword("SecurePassword!@#")
	s.Error(err)
	s.Contains(err.Error(), "password must contain at least one number")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingSpecialChar() {
	err := s.service.ValidatePassword("SecurePass12345")
	s.Error(err)
	s.Contains(err.Error(), "password must contain at least one special character")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Empty() {
	err := s.service.ValidatePassword("")
	s.Error(err)
	s.Contains(err.Error(), "password cannot be empty")
}

func (s *PasswordServiceTestSuite) TestValidatePassword_WithSpaces() {
	err := s.service.ValidatePassword("Secure Pass123!")
	s.NoError(err)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Complex() {
	err := s.service.ValidatePassword("C0mpl3x!P@ssw0rd#2026")
	s.NoError(err)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MinimumValid() {
	err := s.service.ValidatePassword("Aa1!Aa1!Aa1!")
	s.NoError(err)
}

// Test HashPassword
func (s *PasswordServiceTestSuite) TestHashPassword_Success() {
	hash, err := s.service.HashPassword("SecurePass123!@#")
	s.NoError(err)
	s.NotEmpty(hash)
	s.True(strings.HasPrefix(hash, "$2a$"))
}

func (s *PasswordServiceTestSuite) TestHashPassword_InvalidPasswordRejected() {
	hash, err := s.service.HashPassword("weak")
	s.Error(err)
	s.Empty(hash)
	s.Contains(err.Error(), "password validation failed")
}

func (s *PasswordServiceTestSuite) TestHashPassword_DifferentHashesForSamePassword() {
	hash1, err := s.service.HashPassword("SecurePass123!@#")
	s.Require().NoError(err)
	hash2, err := s.service.HashPassword("SecurePass123!@#")
	s.Require().NoError(err)

	// bcrypt salts every hash
	s.NotEqual(hash1, hash2)
}

// Test ComparePassword
func (s *PasswordServiceTestSuite) TestComparePassword_Match() {
	password := "SecurePass123!@#"
	hash, err := s.service.HashPassword(password)
	s.Require().NoError(err)

	s.True(s.service.ComparePassword(password, hash))
}

func (s *PasswordServiceTestSuite) TestComparePassword_Mismatch() {
	hash, err := s.service.HashPassword("SecurePass123!@#")
	s.Require().NoError(err)

	s.False(s.service.ComparePassword("WrongPass123!@#", hash))
}

func (s *PasswordServiceTestSuite) TestComparePassword_InvalidHash() {
	s.False(s.service.ComparePassword("SecurePass123!@#", "not-a-bcrypt-hash"))
}
