package httputil

import "github.com/redmonkez12/profile-directory/internal/apperror"

// Machine-readable error codes returned alongside error messages
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// CodeForKind returns the error code reported for an apperror kind
func CodeForKind(kind apperror.Kind) string {
	switch kind {
	case apperror.KindValidation:
		return CodeValidationFailed
	case apperror.KindConflict:
		return CodeUserExists
	case apperror.KindAuth:
		return CodeInvalidCredentials
	case apperror.KindUnavailable:
		return CodeStoreUnavailable
	default:
		return CodeInternalError
	}
}
