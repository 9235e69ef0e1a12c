package storage

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"

	"github.com/beast-watch/api-go/apperrors"
)

// translateDynamoError turns AWS API failures into apperrors.StorageError.
func translateDynamoError(err error) error {
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

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewStorageError(dynamoStorageCode(apiErr.ErrorCode()), "dynamodb:"+apiErr.ErrorCode(), err)
	}

	return apperrors.NewStorageError(apperrors.StorageUnknown, "dynamodb", err)
}

func dynamoStorageCode(code string) apperrors.StorageCode {
	switch code {
	case "AccessDeniedException":
		return apperrors.StoragePermissionDenied
	case "UnrecognizedClientException", "InvalidSignatureException", "MissingAuthenticationTokenException", "ExpiredTokenException":
		return apperrors.StorageUnauthenticated
	case "ServiceUnavailable", "InternalServerError":
		return apperrors.StorageUnavailable
	case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded", "LimitExceededException":
		return apperrors.StorageResourceExhausted
	case "TransactionCanceledException", "TransactionConflictException", "TransactionInProgressException", "ConditionalCheckFailedException":
		return apperrors.StorageAborted
	case "ResourceNotFoundException":
		return apperrors.StorageNotFound
	default:
		return apperrors.StorageUnknown
	}
}
