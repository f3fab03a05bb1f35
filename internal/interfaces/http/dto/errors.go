package dto

import "net/http"

// Error code constants exposed to API clients
// Format: ERR_<DESCRIPTION>
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid query values
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeNotFound is used when a resource or route is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeUnsupportedPlatform is used for an unknown or unconfigured platform prefix
	ErrCodeUnsupportedPlatform = "ERR_UNSUPPORTED_PLATFORM"
	// ErrCodeIngestionInProgress is used when another ingestion holds the platform lock
	ErrCodeIngestionInProgress = "ERR_INGESTION_IN_PROGRESS"
	// ErrCodeUpstream is used when the commerce platform call fails
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeServiceUnavailable is used when a dependency is down
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeUnsupportedPlatform: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeIngestionInProgress: http.StatusConflict,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeUpstream:            http.StatusBadGateway,
	ErrCodeServiceUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"UNSUPPORTED_PLATFORM":  ErrCodeUnsupportedPlatform,
	"INGESTION_IN_PROGRESS": ErrCodeIngestionInProgress,
	"UPSTREAM_ERROR":        ErrCodeUpstream,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format
// If the code is already in the API format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
