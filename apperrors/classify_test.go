package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type codedValue struct{ code string }

func (c codedValue) ErrorCode() string { return c.code }

type codedError struct{ code string }

func (c *codedError) Error() string     { return "coded: " + c.code }
func (c *codedError) ErrorCode() string { return c.code }

func newObservedClassifier(locale Locale) (*Classifier, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewClassifier(locale, zap.New(core)), logs
}

func TestClassifierMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "validation error returns its message",
			in:   NewValidationError("sighted_at", "future date not allowed", nil),
			want: "future date not allowed",
		},
		{
			name: "wrapped validation error returns its message",
			in:   fmt.Errorf("create: %w", NewValidationError("location", "location is required", nil)),
			want: "location is required",
		},
		{
			name: "service error with storage cause uses storage message",
			in: NewServiceError(OpReviewSighting,
				NewStorageError(StoragePermissionDenied, "pg:42501", errors.New("denied")), nil),
			want: "You do not have permission to perform this action.",
		},
		{
			name: "service error with identity cause uses identity message",
			in: NewServiceError(OpCreateSighting,
				NewIdentityError(IdentityUserDisabled, "disabled", nil), nil),
			want: "This account has been disabled.",
		},
		{
			name: "service error with plain cause uses operation message",
			in:   NewServiceError(OpCreateSighting, errors.New("boom"), nil),
			want: "Could not submit the sighting. Please try again.",
		},
		{
			name: "service error wrapping not found uses operation message",
			in:   NewServiceError(OpReviewSighting, ErrSightingNotFound, nil),
			want: "Could not record the review. Please try again.",
		},
		{
			name: "plain string is returned verbatim",
			in:   "something specific",
			want: "something specific",
		},
		{
			name: "coded value with storage code",
			in:   codedValue{code: "unavailable"},
			want: "The service is temporarily unavailable. Check your connection and try again.",
		},
		{
			name: "coded error with operation code",
			in:   &codedError{code: "update-sighting-failed"},
			want: "Could not update the sighting. Please try again.",
		},
		{
			name: "unknown coded error falls back to its text",
			in:   &codedError{code: "made-up"},
			want: "coded: made-up",
		},
		{
			name: "bare unknown storage error gets generic message",
			in: NewStorageError(StorageUnknown, "pg:42P01",
				errors.New(`ERROR: relation "reviewers" does not exist (SQLSTATE 42P01)`)),
			want: "An unexpected error occurred. Please try again later.",
		},
		{
			name: "wrapped unknown identity error gets generic message",
			in:   fmt.Errorf("login: %w", NewIdentityError(IdentityUnknown, "jwt:weird", errors.New("raw"))),
			want: "An unexpected error occurred. Please try again later.",
		},
		{
			name: "bare known storage error uses storage message",
			in:   NewStorageError(StorageAborted, "pg:40001", errors.New("could not serialize")),
			want: "The change conflicted with another update. Please try again.",
		},
		{
			name: "blank string gets generic message",
			in:   "  ",
			want: "An unexpected error occurred. Please try again later.",
		},
		{
			name: "plain error returns its text",
			in:   errors.New("disk on fire"),
			want: "disk on fire",
		},
		{
			name: "non-error value gets generic message",
			in:   42,
			want: "An unexpected error occurred. Please try again later.",
		},
		{
			name: "nil gets generic message",
			in:   nil,
			want: "An unexpected error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClassifier(LocaleEnglish, nil)
			assert.Equal(t, tt.want, c.Message(tt.in))
		})
	}
}

func TestClassifierMessage_Japanese(t *testing.T) {
	t.Parallel()

	c := NewClassifier(LocaleJapanese, nil)

	assert.Equal(t, "投稿に失敗しました。再度お試しください。",
		c.Message(NewServiceError(OpCreateSighting, errors.New("boom"), nil)))
	assert.Equal(t, "この操作を行う権限がありません。",
		c.Message(NewServiceError(OpUpdateSighting,
			NewStorageError(StoragePermissionDenied, "pg:42501", nil), nil)))
	assert.Equal(t, "予期せぬエラーが発生しました。時間をおいて再度お試しください。", c.Message(struct{}{}))
}

func TestClassifierMessage_UnknownStorageCodeIsLoggedNotShown(t *testing.T) {
	t.Parallel()

	c, logs := newObservedClassifier(LocaleEnglish)
	err := NewServiceError(OpUpdateSighting,
		NewStorageError(StorageUnknown, "pg:XX000", errors.New("internal")), nil)

	msg := c.Message(err)

	assert.Equal(t, "Could not update the sighting. Please try again.", msg)
	assert.NotContains(t, msg, "XX000")

	entries := logs.FilterMessage("unrecognized error code").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "storage", fields["kind"])
	assert.Equal(t, "pg:XX000", fields["raw_code"])
	assert.Equal(t, string(OpUpdateSighting), fields["operation"])
}

func TestClassifierMessage_BareUnknownStorageErrorIsLoggedNotShown(t *testing.T) {
	t.Parallel()

	c, logs := newObservedClassifier(LocaleJapanese)
	err := NewStorageError(StorageUnknown, "pg:42P01", errors.New(`relation "reviewers" does not exist`))

	msg := c.Message(err)

	assert.Equal(t, "予期せぬエラーが発生しました。時間をおいて再度お試しください。", msg)
	assert.NotContains(t, msg, "42P01")
	entries := logs.FilterMessage("unrecognized error code").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "pg:42P01", entries[0].ContextMap()["raw_code"])
}

func TestClassifierMessage_UnknownIdentityCodeIsLogged(t *testing.T) {
	t.Parallel()

	c, logs := newObservedClassifier(LocaleEnglish)
	err := NewServiceError(OpReviewSighting,
		NewIdentityError(IdentityUnknown, "jwt:weird", nil), nil)

	assert.Equal(t, "Could not record the review. Please try again.", c.Message(err))
	assert.Equal(t, 1, logs.FilterField(zap.String("kind", "identity")).Len())
}

func TestClassifierMessage_NeverEmpty(t *testing.T) {
	t.Parallel()

	inputs := []any{
		nil, "", " ", 0, struct{}{},
		errors.New("x"),
		NewStorageError(StorageUnknown, "raw", nil),
		NewServiceError(OpUnknown, nil, nil),
		NewServiceError(OperationCode("bogus"), errors.New("cause"), nil),
		codedValue{code: "nope"},
	}

	c := NewClassifier(LocaleEnglish, nil)
	for _, in := range inputs {
		assert.NotEmpty(t, c.Message(in), "input %#v", in)
	}
}

func TestClassifierHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("note", "too long", nil), http.StatusBadRequest},
		{"not found", NewServiceError(OpReviewSighting, ErrSightingNotFound, nil), http.StatusNotFound},
		{"invalid credential", NewIdentityError(IdentityInvalidCredential, "bcrypt", nil), http.StatusUnauthorized},
		{"token expired", NewIdentityError(IdentityTokenExpired, "jwt", nil), http.StatusUnauthorized},
		{"too many requests", NewIdentityError(IdentityTooManyRequests, "limit", nil), http.StatusTooManyRequests},
		{"permission denied", NewStorageError(StoragePermissionDenied, "pg:42501", nil), http.StatusForbidden},
		{"unavailable", NewServiceError(OpFetchPublicSightings,
			NewStorageError(StorageUnavailable, "pg:08006", nil), nil), http.StatusServiceUnavailable},
		{"deadline", NewStorageError(StorageDeadlineExceeded, "context-deadline", nil), http.StatusGatewayTimeout},
		{"aborted", NewStorageError(StorageAborted, "pg:40001", nil), http.StatusConflict},
		{"unknown storage", NewStorageError(StorageUnknown, "gorm", nil), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	c := NewClassifier(LocaleEnglish, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.HTTPStatus(tt.err))
		})
	}
}
