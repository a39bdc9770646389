package apperrors

// ErrorCode identifies an error class in API responses.
type ErrorCode string

const (
	// Authentication / authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidDate      ErrorCode = "INVALID_DATE"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	CodeConflict      ErrorCode = "CONFLICT"

	// Users
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeEmailExists     ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUserNotVerified ErrorCode = "USER_NOT_VERIFIED"
	CodeAlreadyVerified ErrorCode = "EMAIL_ALREADY_VERIFIED"

	// Contacts
	CodeContactNotFound ErrorCode = "CONTACT_NOT_FOUND"
	CodeContactExists   ErrorCode = "CONTACT_ALREADY_EXISTS"

	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
