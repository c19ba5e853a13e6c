package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Invalid Credentials",
			code:     AuthInvalidCredentials,
			expected: "Invalid email or password",
		},
		{
			name:     "Auth Missing Token",
			code:     AuthMissingToken,
			expected: "Authorization token is required",
		},
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Budget Not Found",
			code:     BudgetNotFound,
			expected: "Budget not found",
		},
		{
			name:     "Budget Access Denied",
			code:     BudgetAccessDenied,
			expected: "Budget does not belong to the authenticated user",
		},
		{
			name:     "Alert Not Found",
			code:     AlertNotFound,
			expected: "Alert not found",
		},
		{
			name:     "Receipt Extract Failed",
			code:     ReceiptExtractFailed,
			expected: "Receipt extraction failed",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			message := GetErrorMessage(tc.code)
			s.Equal(tc.expected, message)
		})
	}
}

// TestGetErrorMessage_InvalidCode tests getting message for invalid error code
func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	message := GetErrorMessage("INVALID_CODE")
	s.Equal("An error occurred", message)
}

// TestIsValidErrorCode_ValidCodes tests validation of valid error codes
func (s *CodesTestSuite) TestIsValidErrorCode_ValidCodes() {
	validCodes := []ErrorCode{
		AuthInvalidCredentials,
		AuthInsufficientPermission,
		ValidationGeneral,
		UserNotFound,
		BudgetNotFound,
		BudgetDuplicateName,
		TransactionInvalidAmount,
		AlertNotFound,
		GoalAccessDenied,
		ReceiptMissingFile,
		SystemRateLimitExceeded,
	}

	for _, code := range validCodes {
		s.True(IsValidErrorCode(code), "expected %s to be valid", code)
	}
}

// TestIsValidErrorCode_InvalidCodes tests validation of invalid error codes
func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCodes() {
	invalidCodes := []ErrorCode{
		"",
		"INVALID_CODE",
		"AUTH_999",
		"auth_001",
	}

	for _, code := range invalidCodes {
		s.False(IsValidErrorCode(code), "expected %s to be invalid", code)
	}
}
