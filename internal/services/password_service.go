package services

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const (
	BCryptCost = 12

	MinPasswordLength = 12
	MaxPasswordLength = 72 // Bcrypt algorithm limitation
)

var (
	ErrPasswordEmpty       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong     = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	ErrPasswordNoUppercase = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLowercase = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber    = errors.New("password must contain at least one number")
	ErrPasswordNoSpecial   = errors.New("password must contain at least one special character")

	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	numberRegex    = regexp.MustCompile(`[0-9]`)
	specialRegex   = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{}|;:,.<>?]`)
)

// PasswordService handles password hashing and validation
type PasswordService struct {
	cost int
}

// NewPasswordService creates a new password service with default settings
func NewPasswordService() PasswordServiceInterface {
	return &PasswordService{
		cost: BCryptCost,
	}
}

// ValidatePassword checks if a password meets all security requirements
func (ps *PasswordService) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	if !uppercaseRegex.MatchString(password) {
		return ErrPasswordNoUppercase
	}

	if !lowercaseRegex.MatchString(password) {
		return ErrPasswordNoLowercase
	}

	if !numberRegex.MatchString(password) {
		return ErrPasswordNoNumber
	}

	if !specialRegex.MatchString(password) {
		return ErrPasswordNoSpecial
	}

	return nil
}

// HashPassword validates and hashes a password using bcrypt
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a plain password with a hashed password
// Returns true if they match, false otherwise
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	// bcrypt.CompareHashAndPassword provides timing-attack resistance
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
