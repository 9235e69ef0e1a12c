// Package storage persists master and published sightings. Every backend
// offers the same transactional read-check-write primitive so the service
// can change both views of a sighting atomically.
package storage

import (
	"context"

	"github.com/beast-watch/api-go/models"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store,Tx

// Tx is the view of both stores inside one transaction. Writes become
// visible to other readers only when the transaction commits.
type Tx interface {
	// GetMaster reads a master record, returning apperrors.ErrSightingNotFound
	// when it does not exist.
	GetMaster(ctx context.Context, id string) (*models.Sighting, error)
	// PutMaster overwrites a master record previously read in this transaction.
	PutMaster(ctx context.Context, s *models.Sighting) error
	// PutPublished creates or overwrites a published record.
	PutPublished(ctx context.Context, p *models.PublishedSighting) error
	// DeletePublished removes a published record. A missing record is not an error.
	DeletePublished(ctx context.Context, id string) error
}

// TxFunc is the body of a transaction. It may run more than once when the
// backend retries after a conflicting write.
type TxFunc func(ctx context.Context, tx Tx) error

// Store is a pair of keyed stores sharing one id space.
type Store interface {
	// InsertMaster stores a new master record.
	InsertMaster(ctx context.Context, s *models.Sighting) error
	// ListMaster returns every master record ordered by sighted_at descending.
	ListMaster(ctx context.Context) ([]models.Sighting, error)
	// ListPublished returns every published record ordered by sighted_at descending.
	ListPublished(ctx context.Context) ([]models.PublishedSighting, error)
	// RunInTransaction runs fn atomically: all of its writes land or none do.
	RunInTransaction(ctx context.Context, fn TxFunc) error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendDynamoDB Backend = "dynamodb"
	BackendMemory   Backend = "memory"
)
