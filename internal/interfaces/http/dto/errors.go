package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Sync error codes
const (
	// ErrCodeSyncInProgress is used when a sync is already running
	ErrCodeSyncInProgress = "ERR_SYNC_IN_PROGRESS"
	// ErrCodeFetchFailed is used when the remote platform could not be read
	ErrCodeFetchFailed = "ERR_FETCH_FAILED"
	// ErrCodeEmptyCatalog is used when the platform returned no products
	ErrCodeEmptyCatalog = "ERR_EMPTY_CATALOG"
	// ErrCodeSinkWrite is used when publishing a feed artifact failed
	ErrCodeSinkWrite = "ERR_SINK_WRITE"
	// ErrCodeNotConfigured is used when platform credentials are absent
	ErrCodeNotConfigured = "ERR_PLATFORM_NOT_CONFIGURED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	ErrCodeSyncInProgress: http.StatusConflict,
	ErrCodeFetchFailed:    http.StatusBadGateway,
	ErrCodeEmptyCatalog:   http.StatusBadGateway,
	ErrCodeSinkWrite:      http.StatusInternalServerError,
	ErrCodeNotConfigured:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
