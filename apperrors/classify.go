package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Coder is implemented by values that carry a machine-readable error code.
type Coder interface {
	ErrorCode() string
}

// Classifier turns any failure into one stable, localized message. Raw
// storage and identity codes never reach the returned text.
type Classifier struct {
	locale Locale
	logger *zap.Logger
}

// NewClassifier creates a Classifier for locale. A nil logger disables
// diagnostics for unrecognized codes.
func NewClassifier(locale Locale, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{locale: locale, logger: logger}
}

// Locale returns the classifier's locale.
func (c *Classifier) Locale() Locale { return c.locale }

// Message returns the user-facing message for v.
func (c *Classifier) Message(v any) string {
	err, isErr := v.(error)

	if isErr {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return vErr.Message
		}

		var sErr *ServiceError
		if errors.As(err, &sErr) {
			if msg, ok := c.lowLevelMessage(sErr.Err, sErr.Op); ok {
				return msg
			}
			if msg, ok := operationMessage(c.locale, sErr.Op); ok {
				return msg
			}
		}
	}

	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return genericMessage(c.locale)
		}
		return s
	}

	if msg, ok := c.codeMessage(v); ok {
		return msg
	}

	if isErr && err != nil && !carriesLowLevelCode(err) {
		return err.Error()
	}

	return genericMessage(c.locale)
}

// lowLevelMessage looks for a recognized storage or identity code in the
// cause chain of a failed operation.
func (c *Classifier) lowLevelMessage(cause error, op OperationCode) (string, bool) {
	if cause == nil {
		return "", false
	}

	var stErr *StorageError
	if errors.As(cause, &stErr) {
		if msg, ok := storageMessage(c.locale, stErr.Code); ok {
			return msg, true
		}
		c.logUnrecognized("storage", stErr.Raw, op, cause)
	}

	var idErr *IdentityError
	if errors.As(cause, &idErr) {
		if msg, ok := identityMessage(c.locale, idErr.Code); ok {
			return msg, true
		}
		c.logUnrecognized("identity", idErr.Raw, op, cause)
	}

	return "", false
}

func (c *Classifier) codeMessage(v any) (string, bool) {
	var coder Coder
	switch t := v.(type) {
	case Coder:
		coder = t
	case error:
		if !errors.As(t, &coder) {
			return "", false
		}
	default:
		return "", false
	}

	raw := coder.ErrorCode()
	if code, ok := ParseStorageCode(raw); ok {
		return storageMessage(c.locale, code)
	}
	if code, ok := ParseIdentityCode(raw); ok {
		return identityMessage(c.locale, code)
	}
	if code, ok := ParseOperationCode(raw); ok {
		return operationMessage(c.locale, code)
	}

	switch t := coder.(type) {
	case *StorageError:
		c.logUnrecognized("storage", t.Raw, OpUnknown, t)
	case *IdentityError:
		c.logUnrecognized("identity", t.Raw, OpUnknown, t)
	default:
		c.logUnrecognized("unknown", raw, OpUnknown, nil)
	}
	return "", false
}

// carriesLowLevelCode reports whether err wraps a storage or identity failure,
// whose text holds backend codes and driver output.
func carriesLowLevelCode(err error) bool {
	var stErr *StorageError
	var idErr *IdentityError
	return errors.As(err, &stErr) || errors.As(err, &idErr)
}

func (c *Classifier) logUnrecognized(kind, raw string, op OperationCode, cause error) {
	c.logger.Warn("unrecognized error code",
		zap.String("kind", kind),
		zap.String("raw_code", raw),
		zap.String("operation", string(op)),
		zap.Error(cause),
	)
}

// HTTPStatus maps a failure to the status code the API responds with.
func (*Classifier) HTTPStatus(err error) int {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrSightingNotFound) {
		return http.StatusNotFound
	}

	var idErr *IdentityError
	if errors.As(err, &idErr) {
		if idErr.Code == IdentityTooManyRequests {
			return http.StatusTooManyRequests
		}
		return http.StatusUnauthorized
	}

	var stErr *StorageError
	if errors.As(err, &stErr) {
		switch stErr.Code {
		case StoragePermissionDenied:
			return http.StatusForbidden
		case StorageUnavailable, StorageResourceExhausted:
			return http.StatusServiceUnavailable
		case StorageDeadlineExceeded:
			return http.StatusGatewayTimeout
		case StorageAborted:
			return http.StatusConflict
		case StorageNotFound:
			return http.StatusNotFound
		default:
			return http.StatusInternalServerError
		}
	}

	return http.StatusInternalServerError
}
