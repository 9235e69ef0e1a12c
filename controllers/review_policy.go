package controllers

import (
	"strings"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
)

const (
	fieldReviewComment       = "review_comment"
	msgReviewCommentRequired = "a comment is required when rejecting a sighting"
)

// ReviewPolicy holds review rules enforced by the API before the service is
// called.
type ReviewPolicy struct {
	RequireRejectComment bool
}

// DefaultReviewPolicy requires a comment on every rejection.
func DefaultReviewPolicy() ReviewPolicy {
	return ReviewPolicy{RequireRejectComment: true}
}

// Check returns a *apperrors.ValidationError when status and comment break
// the policy.
func (p ReviewPolicy) Check(status models.Status, comment *string) error {
	if !p.RequireRejectComment || status != models.StatusRejected {
		return nil
	}
	if comment == nil || strings.TrimSpace(*comment) == "" {
		return apperrors.NewValidationError(fieldReviewComment, msgReviewCommentRequired, nil)
	}
	return nil
}
