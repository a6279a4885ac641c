package catalog

import "errors"

var (
	// ErrFetchFailed indicates the remote catalog could not be retrieved
	ErrFetchFailed = errors.New("catalog: remote catalog fetch failed")

	// ErrEmptyCatalog indicates the fetch succeeded but returned no products
	ErrEmptyCatalog = errors.New("catalog: remote catalog returned no products")

	// ErrPlatformNotConfigured indicates the remote platform credential is missing
	ErrPlatformNotConfigured = errors.New("catalog: remote platform not configured")

	// ErrPlatformInvalidResponse indicates an unparseable platform response
	ErrPlatformInvalidResponse = errors.New("catalog: invalid remote platform response")

	// ErrSyncInProgress indicates a reentrant sync attempt
	ErrSyncInProgress = errors.New("catalog: sync already in progress")

	// ErrSinkWrite indicates an artifact could not be published to the sink
	ErrSinkWrite = errors.New("catalog: artifact sink write failed")
)
