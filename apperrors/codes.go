// Package apperrors holds the error types raised by the sighting engine and
// the classifier that turns any failure into one stable, user-facing message.
package apperrors

// OperationCode identifies the service operation that failed.
type OperationCode string

const (
	OpCreateSighting       OperationCode = "create-sighting-failed"
	OpFetchPublicSightings OperationCode = "fetch-public-sightings-failed"
	OpFetchAllSightings    OperationCode = "fetch-all-sightings-failed"
	OpUpdateSighting       OperationCode = "update-sighting-failed"
	OpReviewSighting       OperationCode = "review-sighting-failed"
	OpUnknown              OperationCode = "unknown-error"
)

// StorageCode is a storage-layer failure class, independent of the backend
// that produced it.
type StorageCode string

const (
	StoragePermissionDenied  StorageCode = "permission-denied"
	StorageUnauthenticated   StorageCode = "unauthenticated"
	StorageUnavailable       StorageCode = "unavailable"
	StorageDeadlineExceeded  StorageCode = "deadline-exceeded"
	StorageResourceExhausted StorageCode = "resource-exhausted"
	StorageAborted           StorageCode = "aborted"
	StorageNotFound          StorageCode = "not-found"
	StorageUnknown           StorageCode = "unknown"
)

// IdentityCode is a reviewer identity/credential failure class.
type IdentityCode string

const (
	IdentityInvalidCredential IdentityCode = "invalid-credential"
	IdentityUserDisabled      IdentityCode = "user-disabled"
	IdentityTooManyRequests   IdentityCode = "too-many-requests"
	IdentityTokenExpired      IdentityCode = "token-expired"
	IdentityInvalidToken      IdentityCode = "invalid-token"
	IdentityMissingToken      IdentityCode = "missing-token"
	IdentityUnknown           IdentityCode = "unknown"
)

// ParseOperationCode resolves a raw code string into a known OperationCode.
func ParseOperationCode(raw string) (OperationCode, bool) {
	switch code := OperationCode(raw); code {
	case OpCreateSighting, OpFetchPublicSightings, OpFetchAllSightings,
		OpUpdateSighting, OpReviewSighting, OpUnknown:
		return code, true
	default:
		return OpUnknown, false
	}
}

// ParseStorageCode resolves a raw code string into a known StorageCode.
// Unrecognized input yields StorageUnknown and false.
func ParseStorageCode(raw string) (StorageCode, bool) {
	switch code := StorageCode(raw); code {
	case StoragePermissionDenied, StorageUnauthenticated, StorageUnavailable,
		StorageDeadlineExceeded, StorageResourceExhausted, StorageAborted, StorageNotFound:
		return code, true
	default:
		return StorageUnknown, false
	}
}

// ParseIdentityCode resolves a raw code string into a known IdentityCode.
// Unrecognized input yields IdentityUnknown and false.
func ParseIdentityCode(raw string) (IdentityCode, bool) {
	switch code := IdentityCode(raw); code {
	case IdentityInvalidCredential, IdentityUserDisabled, IdentityTooManyRequests,
		IdentityTokenExpired, IdentityInvalidToken, IdentityMissingToken:
		return code, true
	default:
		return IdentityUnknown, false
	}
}
