package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tclog "github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
)

type nopLogger struct{}

func (*nopLogger) Printf(_ string, _ ...any) {}

var _ tclog.Logger = (*nopLogger)(nil)

// setupTestDB starts a postgres container and returns a migrated gorm handle.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tc.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("sightings"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
		tc.WithLogger(&nopLogger{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { tc.CleanupContainer(t, container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Reviewer{}))
	return db
}

func TestGormStore(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormStore(db)
	require.NoError(t, store.Migrate())

	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("insert and list newest first", func(t *testing.T) {
		require.NoError(t, store.InsertMaster(ctx, newSighting("g-1", base)))
		require.NoError(t, store.InsertMaster(ctx, newSighting("g-2", base.Add(time.Hour))))

		sightings, err := store.ListMaster(ctx)
		require.NoError(t, err)
		require.Len(t, sightings, 2)
		assert.Equal(t, "g-2", sightings[0].ID)
		assert.Equal(t, "g-1", sightings[1].ID)
	})

	t.Run("duplicate insert is a storage error", func(t *testing.T) {
		err := store.InsertMaster(ctx, newSighting("g-1", base))
		var stErr *apperrors.StorageError
		require.ErrorAs(t, err, &stErr)
		assert.Equal(t, "pg:23505", stErr.Raw)
	})

	t.Run("approve publishes then reject unpublishes", func(t *testing.T) {
		require.NoError(t, store.RunInTransaction(ctx, func(ctx context.Context, tx Tx) error {
			return approve(ctx, tx, "g-1")
		}))

		published, err := store.ListPublished(ctx)
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, "g-1", published[0].ID)

		// Upsert of an existing published row
		require.NoError(t, store.RunInTransaction(ctx, func(ctx context.Context, tx Tx) error {
			return approve(ctx, tx, "g-1")
		}))

		require.NoError(t, store.RunInTransaction(ctx, func(ctx context.Context, tx Tx) error {
			s, err := tx.GetMaster(ctx, "g-1")
			if err != nil {
				return err
			}
			s.Status = models.StatusRejected
			if err := tx.PutMaster(ctx, s); err != nil {
				return err
			}
			return tx.DeletePublished(ctx, "g-1")
		}))

		published, err = store.ListPublished(ctx)
		require.NoError(t, err)
		assert.Empty(t, published)
	})

	t.Run("failed body rolls back", func(t *testing.T) {
		err := store.RunInTransaction(ctx, func(ctx context.Context, tx Tx) error {
			if err := approve(ctx, tx, "g-2"); err != nil {
				return err
			}
			_, err := tx.GetMaster(ctx, "missing")
			return err
		})
		require.ErrorIs(t, err, apperrors.ErrSightingNotFound)

		published, err := store.ListPublished(ctx)
		require.NoError(t, err)
		assert.Empty(t, published)
	})

	t.Run("concurrent reviews serialize on the master row", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, store.RunInTransaction(ctx, func(ctx context.Context, tx Tx) error {
					return approve(ctx, tx, "g-2")
				}))
			}()
		}
		wg.Wait()

		var master models.Sighting
		require.NoError(t, db.First(&master, "id = ?", "g-2").Error)
		assert.Equal(t, int64(5), master.Version)
	})

	t.Run("reviewer directory", func(t *testing.T) {
		dir := NewGormReviewerDirectory(db)
		reviewer := &models.Reviewer{ID: "r-1", Email: " Ranger@Example.com ", PasswordHash: "hash"}
		require.NoError(t, dir.CreateReviewer(ctx, reviewer))

		found, err := dir.FindByEmail(ctx, "ranger@example.com")
		require.NoError(t, err)
		assert.Equal(t, "r-1", found.ID)

		at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, dir.RecordLogin(ctx, "r-1", at))
		found, err = dir.FindByEmail(ctx, "RANGER@example.com")
		require.NoError(t, err)
		require.NotNil(t, found.LastLoginAt)
		assert.True(t, found.LastLoginAt.Equal(at))

		_, err = dir.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrReviewerNotFound)
	})
}
