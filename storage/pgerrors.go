package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/beast-watch/api-go/apperrors"
)

// translatePgError turns driver failures into apperrors.StorageError. Errors
// raised by transaction bodies (not found, already translated) pass through.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrSightingNotFound) {
		return err
	}
	var stErr *apperrors.StorageError
	if errors.As(err, &stErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewStorageError(apperrors.StorageDeadlineExceeded, "context-deadline", err)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.NewStorageError(apperrors.StorageAborted, "context-canceled", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperrors.NewStorageError(pgStorageCode(pgErr.Code), "pg:"+pgErr.Code, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperrors.NewStorageError(apperrors.StorageUnavailable, "pg:connect", err)
	}

	return apperrors.NewStorageError(apperrors.StorageUnknown, "gorm", err)
}

// pgStorageCode maps a postgres SQLSTATE to a storage code.
func pgStorageCode(sqlState string) apperrors.StorageCode {
	switch {
	case sqlState == "42501":
		return apperrors.StoragePermissionDenied
	case sqlState == "28000", sqlState == "28P01":
		return apperrors.StorageUnauthenticated
	case strings.HasPrefix(sqlState, "08"), sqlState == "57P01", sqlState == "57P02", sqlState == "57P03":
		return apperrors.StorageUnavailable
	case sqlState == "57014":
		return apperrors.StorageDeadlineExceeded
	case strings.HasPrefix(sqlState, "53"):
		return apperrors.StorageResourceExhausted
	case sqlState == "40001", sqlState == "40P01":
		return apperrors.StorageAborted
	default:
		return apperrors.StorageUnknown
	}
}

// isSerializationFailure reports whether err is a retryable write conflict.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
