package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
	UserInvalidID     ErrorCode = "USER_003"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetInvalidLimit  ErrorCode = "BUDGET_002"
	BudgetAccessDenied  ErrorCode = "BUDGET_003"
	BudgetDuplicateName ErrorCode = "BUDGET_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionAccessDenied  ErrorCode = "TRANSACTION_003"
)

// Alert error codes (ALERT_*)
const (
	AlertNotFound      ErrorCode = "ALERT_001"
	AlertInvalidStatus ErrorCode = "ALERT_002"
)

// Goal error codes (GOAL_*)
const (
	GoalNotFound      ErrorCode = "GOAL_001"
	GoalAccessDenied  ErrorCode = "GOAL_002"
	GoalInvalidTarget ErrorCode = "GOAL_003"
)

// Receipt error codes (RECEIPT_*)
const (
	ReceiptNotFound      ErrorCode = "RECEIPT_001"
	ReceiptMissingFile   ErrorCode = "RECEIPT_002"
	ReceiptExtractFailed ErrorCode = "RECEIPT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Invalid date format or range",

	// User errors
	UserNotFound:      "User not found",
	UserAlreadyExists: "An account with this email already exists",
	UserInvalidID:     "Invalid user ID format",

	// Budget errors
	BudgetNotFound:      "Budget not found",
	BudgetInvalidLimit:  "Invalid budget limit amount",
	BudgetAccessDenied:  "Budget does not belong to the authenticated user",
	BudgetDuplicateName: "A budget with this name already exists",

	// Transaction errors
	TransactionNotFound:      "Transaction not found",
	TransactionInvalidAmount: "Invalid transaction amount",
	TransactionAccessDenied:  "Transaction does not belong to the authenticated user",

	// Alert errors
	AlertNotFound:      "Alert not found",
	AlertInvalidStatus: "Invalid alert status",

	// Goal errors
	GoalNotFound:      "Goal not found",
	GoalAccessDenied:  "Goal does not belong to the authenticated user",
	GoalInvalidTarget: "Invalid goal target amount",

	// Receipt errors
	ReceiptNotFound:      "Receipt not found",
	ReceiptMissingFile:   "Receipt image file is required",
	ReceiptExtractFailed: "Receipt extraction failed",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
