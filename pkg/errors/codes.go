package errors

import (
	"net/http"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeStorageError       ErrorCode = "COMMON_012"
	ErrCodeMessagingError     ErrorCode = "COMMON_013"
	ErrCodeNotImplemented     ErrorCode = "COMMON_014"
)

// Short aliases used at call sites throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeValidation     = ErrCodeValidation
	CodeDatabaseError  = ErrCodeDatabaseError
	CodeCacheError     = ErrCodeCacheError
	CodeStorageError   = ErrCodeStorageError
	CodeMessagingError = ErrCodeMessagingError
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
)

// Notation module error codes.
const (
	ErrCodeNotationEmpty         ErrorCode = "NOT_001"
	ErrCodeNotationSyntax        ErrorCode = "NOT_002"
	ErrCodeNotationUnknownUnit   ErrorCode = "NOT_003"
	ErrCodeNotationBadLinkage    ErrorCode = "NOT_004"
	ErrCodeNotationBadStereo     ErrorCode = "NOT_005"
	ErrCodeNotationUnsupported   ErrorCode = "NOT_006"
	ErrCodeNotationInvalidSMILES ErrorCode = "NOT_007"
)

// Domain-specific aliases for the notation module.
const (
	CodeNotationEmpty       = ErrCodeNotationEmpty
	CodeNotationSyntax      = ErrCodeNotationSyntax
	CodeNotationUnknownUnit = ErrCodeNotationUnknownUnit
	CodeNotationBadLinkage  = ErrCodeNotationBadLinkage
	CodeNotationBadStereo   = ErrCodeNotationBadStereo
	CodeNotationUnsupported = ErrCodeNotationUnsupported
	CodeInvalidSMILES       = ErrCodeNotationInvalidSMILES
)

// Compound library module error codes.
const (
	ErrCodeCompoundNotFound      ErrorCode = "CMP_001"
	ErrCodeCompoundAlreadyExists ErrorCode = "CMP_002"
	ErrCodeCompoundInvalid       ErrorCode = "CMP_003"
	ErrCodeCodeNotInLibrary      ErrorCode = "CMP_004"
	ErrCodeLibraryImportFailed   ErrorCode = "CMP_005"
	ErrCodeLibraryExportFailed   ErrorCode = "CMP_006"
)

const (
	CodeCompoundNotFound      = ErrCodeCompoundNotFound
	CodeCompoundAlreadyExists = ErrCodeCompoundAlreadyExists
	CodeCompoundInvalid       = ErrCodeCompoundInvalid
	CodeCodeNotInLibrary      = ErrCodeCodeNotInLibrary
	CodeLibraryImportFailed   = ErrCodeLibraryImportFailed
	CodeLibraryExportFailed   = ErrCodeLibraryExportFailed
)

// Conversion module error codes.
const (
	ErrCodeConversionFailed      ErrorCode = "CNV_001"
	ErrCodeBatchJobNotFound      ErrorCode = "CNV_002"
	ErrCodeBatchJobInvalid       ErrorCode = "CNV_003"
	ErrCodeSimilaritySearchError ErrorCode = "CNV_004"
)

const (
	CodeConversionFailed      = ErrCodeConversionFailed
	CodeBatchJobNotFound      = ErrCodeBatchJobNotFound
	CodeBatchJobInvalid       = ErrCodeBatchJobInvalid
	CodeSimilaritySearchError = ErrCodeSimilaritySearchError
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeNotationEmpty:         http.StatusBadRequest,
	ErrCodeNotationSyntax:        http.StatusBadRequest,
	ErrCodeNotationUnknownUnit:   http.StatusBadRequest,
	ErrCodeNotationBadLinkage:    http.StatusBadRequest,
	ErrCodeNotationBadStereo:     http.StatusBadRequest,
	ErrCodeNotationUnsupported:   http.StatusUnprocessableEntity,
	ErrCodeNotationInvalidSMILES: http.StatusBadRequest,

	ErrCodeCompoundNotFound:      http.StatusNotFound,
	ErrCodeCompoundAlreadyExists: http.StatusConflict,
	ErrCodeCompoundInvalid:       http.StatusBadRequest,
	ErrCodeCodeNotInLibrary:      http.StatusNotFound,
	ErrCodeLibraryImportFailed:   http.StatusBadRequest,
	ErrCodeLibraryExportFailed:   http.StatusInternalServerError,

	ErrCodeConversionFailed:      http.StatusUnprocessableEntity,
	ErrCodeBatchJobNotFound:      http.StatusNotFound,
	ErrCodeBatchJobInvalid:       http.StatusBadRequest,
	ErrCodeSimilaritySearchError: http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for an ErrorCode, defaulting to 500
// for unmapped codes.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := ErrorCodeHTTPStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}
