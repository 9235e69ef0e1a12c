// Package services implements the sighting synchronization service: it owns
// the rule that a published record exists exactly while its master record is
// approved, and changes both views inside one storage transaction.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
	"github.com/beast-watch/api-go/storage"
	"github.com/beast-watch/api-go/validation"
)

// Option configures a SightingService.
type Option func(*SightingService)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SightingService) {
		s.logger = logger
	}
}

// WithClock overrides the clock used for created_at and reviewed_at.
func WithClock(now func() time.Time) Option {
	return func(s *SightingService) {
		s.now = now
	}
}

// WithIDGenerator overrides how new sighting ids are assigned.
func WithIDGenerator(newID func() string) Option {
	return func(s *SightingService) {
		s.newID = newID
	}
}

// SightingService creates, lists, reviews and edits sightings.
type SightingService struct {
	store     storage.Store
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewSightingService creates a SightingService on store.
func NewSightingService(store storage.Store, validator *validation.Validator, opts ...Option) *SightingService {
	s := &SightingService{
		store:     store,
		validator: validator,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new pending sighting and returns its id. The published
// store is never touched.
func (s *SightingService) Create(ctx context.Context, in models.CreateSightingInput) (string, error) {
	if err := s.validator.ValidateCreateOrError(in); err != nil {
		return "", err
	}

	sightedAt, err := s.validator.ParseSightedAt(in.SightedAt)
	if err != nil {
		return "", err
	}

	sighting := &models.Sighting{
		ID:         s.newID(),
		AnimalType: in.AnimalType,
		SightedAt:  sightedAt.UTC(),
		Lat:        *in.Lat,
		Lng:        *in.Lng,
		Status:     models.StatusPending,
		CreatedAt:  s.now().UTC(),
		CreatedBy:  in.CreatedBy,
	}
	if in.Note != nil {
		sighting.Note = *in.Note
	}

	if err := s.store.InsertMaster(ctx, sighting); err != nil {
		return "", apperrors.NewServiceError(apperrors.OpCreateSighting, err, map[string]any{
			"operation":   "create",
			"animal_type": in.AnimalType,
			"has_note":    sighting.Note != "",
		})
	}

	s.logger.Info("sighting created",
		zap.String("sighting_id", sighting.ID),
		zap.String("animal_type", sighting.AnimalType),
	)
	return sighting.ID, nil
}

// FetchPublished returns every published sighting, newest sighting first.
func (s *SightingService) FetchPublished(ctx context.Context) ([]models.PublishedSighting, error) {
	sightings, err := s.store.ListPublished(ctx)
	if err != nil {
		return nil, apperrors.NewServiceError(apperrors.OpFetchPublicSightings, err, map[string]any{
			"operation":  "fetch_published",
			"collection": models.PublishedSighting{}.TableName(),
		})
	}
	return sightings, nil
}

// FetchAllMaster returns every master record in any status, newest sighting first.
func (s *SightingService) FetchAllMaster(ctx context.Context) ([]models.Sighting, error) {
	sightings, err := s.store.ListMaster(ctx)
	if err != nil {
		return nil, apperrors.NewServiceError(apperrors.OpFetchAllSightings, err, map[string]any{
			"operation":  "fetch_all",
			"collection": models.Sighting{}.TableName(),
		})
	}
	return sightings, nil
}

// Review records a reviewer decision. Approving copies the current content
// into the published store; any other decision removes the published record.
// An empty comment is accepted for every status.
func (s *SightingService) Review(ctx context.Context, id string, in models.ReviewInput) error {
	if err := s.validator.ValidateReviewOrError(in); err != nil {
		return err
	}

	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		current, err := tx.GetMaster(ctx, id)
		if err != nil {
			return err
		}
		published := current.Published()

		reviewedAt := s.now().UTC()
		current.Status = in.Status
		current.ReviewComment = &in.ReviewComment
		current.ReviewedBy = &in.ReviewedBy
		current.ReviewedAt = &reviewedAt
		if err := tx.PutMaster(ctx, current); err != nil {
			return err
		}

		if in.Status == models.StatusApproved {
			return tx.PutPublished(ctx, published)
		}
		return tx.DeletePublished(ctx, id)
	})
	if err != nil {
		return apperrors.NewServiceError(apperrors.OpReviewSighting, err, map[string]any{
			"operation":     "review",
			"sighting_id":   id,
			"review_action": string(in.Status),
			"has_comment":   strings.TrimSpace(in.ReviewComment) != "",
			"reviewer_id":   in.ReviewedBy,
		})
	}

	s.logger.Info("sighting reviewed",
		zap.String("sighting_id", id),
		zap.String("status", string(in.Status)),
		zap.String("reviewed_by", in.ReviewedBy),
	)
	return nil
}

// Update applies a partial edit. While the resulting status is approved the
// published record is rewritten from the merged content; leaving approved
// removes it.
func (s *SightingService) Update(ctx context.Context, id string, patch models.SightingPatch) error {
	if patch.TouchesContent() || patch.Status != nil {
		if err := s.validator.ValidateUpdateOrError(patch); err != nil {
			return err
		}
	}

	var sightedAt *time.Time
	if patch.SightedAt != nil {
		parsed, err := s.validator.ParseSightedAt(*patch.SightedAt)
		if err != nil {
			return err
		}
		parsed = parsed.UTC()
		sightedAt = &parsed
	}

	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		current, err := tx.GetMaster(ctx, id)
		if err != nil {
			return err
		}
		previousStatus := current.Status

		newStatus := previousStatus
		if patch.Status != nil {
			newStatus = *patch.Status
		}

		applyPatch(current, patch, sightedAt)
		if patch.Status != nil {
			reviewedAt := s.now().UTC()
			current.ReviewedAt = &reviewedAt
		}
		if err := tx.PutMaster(ctx, current); err != nil {
			return err
		}

		switch {
		case newStatus == models.StatusApproved:
			return tx.PutPublished(ctx, current.Published())
		case previousStatus == models.StatusApproved:
			return tx.DeletePublished(ctx, id)
		default:
			return nil
		}
	})
	if err != nil {
		errContext := map[string]any{
			"operation":      "update",
			"sighting_id":    id,
			"updated_fields": patch.Fields(),
		}
		if patch.Status != nil {
			errContext["status_change"] = string(*patch.Status)
		}
		return apperrors.NewServiceError(apperrors.OpUpdateSighting, err, errContext)
	}

	s.logger.Info("sighting updated",
		zap.String("sighting_id", id),
		zap.Strings("fields", patch.Fields()),
	)
	return nil
}

// applyPatch copies the present patch fields onto the master record. Fields
// absent from the patch keep their current value, which is what makes the
// published copy a field-level merge.
func applyPatch(s *models.Sighting, patch models.SightingPatch, sightedAt *time.Time) {
	if patch.AnimalType != nil {
		s.AnimalType = *patch.AnimalType
	}
	if sightedAt != nil {
		s.SightedAt = *sightedAt
	}
	if patch.Lat != nil {
		s.Lat = *patch.Lat
	}
	if patch.Lng != nil {
		s.Lng = *patch.Lng
	}
	if patch.Note != nil {
		s.Note = *patch.Note
	}
	if patch.Status != nil {
		s.Status = *patch.Status
	}
	if patch.ReviewComment != nil {
		s.ReviewComment = patch.ReviewComment
	}
	if patch.ReviewedBy != nil {
		s.ReviewedBy = patch.ReviewedBy
	}
}
