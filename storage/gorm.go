package storage

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
)

// GormStore keeps both views in postgres tables through gorm. Master rows are
// locked with SELECT ... FOR UPDATE for the duration of a transaction, and
// serialization failures are retried.
type GormStore struct {
	db          *gorm.DB
	maxAttempts uint
	logger      *zap.Logger
}

var _ Store = (*GormStore)(nil)

// GormOption configures a GormStore.
type GormOption func(*GormStore)

// WithGormMaxAttempts sets how many times a conflicting transaction is tried.
func WithGormMaxAttempts(n uint) GormOption {
	return func(s *GormStore) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithGormLogger sets the logger used for retry diagnostics.
func WithGormLogger(logger *zap.Logger) GormOption {
	return func(s *GormStore) {
		s.logger = logger
	}
}

// NewGormStore creates a GormStore on db.
func NewGormStore(db *gorm.DB, opts ...GormOption) *GormStore {
	s := &GormStore{
		db:          db,
		maxAttempts: defaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates or updates the sighting tables.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Sighting{}, &models.PublishedSighting{})
}

func (s *GormStore) InsertMaster(ctx context.Context, sighting *models.Sighting) error {
	return translatePgError(s.db.WithContext(ctx).Create(sighting).Error)
}

func (s *GormStore) ListMaster(ctx context.Context) ([]models.Sighting, error) {
	var sightings []models.Sighting
	if err := s.db.WithContext(ctx).Order("sighted_at DESC").Find(&sightings).Error; err != nil {
		return nil, translatePgError(err)
	}
	return sightings, nil
}

func (s *GormStore) ListPublished(ctx context.Context) ([]models.PublishedSighting, error) {
	var sightings []models.PublishedSighting
	if err := s.db.WithContext(ctx).Order("sighted_at DESC").Find(&sightings).Error; err != nil {
		return nil, translatePgError(err)
	}
	return sightings, nil
}

func (s *GormStore) RunInTransaction(ctx context.Context, fn TxFunc) error {
	attempt := 0
	err := retryConflicts(ctx, s.maxAttempts, isSerializationFailure, func() error {
		attempt++
		if attempt > 1 {
			s.logger.Debug("retrying sighting transaction", zap.Int("attempt", attempt))
		}
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(ctx, &gormTx{db: tx})
		})
	})
	return translatePgError(err)
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) GetMaster(_ context.Context, id string) (*models.Sighting, error) {
	var sighting models.Sighting
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&sighting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrSightingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sighting, nil
}

func (t *gormTx) PutMaster(_ context.Context, sighting *models.Sighting) error {
	sighting.Version++
	return t.db.Save(sighting).Error
}

func (t *gormTx) PutPublished(_ context.Context, published *models.PublishedSighting) error {
	return t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(published).Error
}

func (t *gormTx) DeletePublished(_ context.Context, id string) error {
	return t.db.Where("id = ?", id).Delete(&models.PublishedSighting{}).Error
}
