package storage

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
)

// MemoryStore keeps both views in process memory. Transactions hold the
// store lock for their whole duration and apply staged writes on success.
type MemoryStore struct {
	mu        sync.Mutex
	master    map[string]models.Sighting
	published map[string]models.PublishedSighting
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		master:    map[string]models.Sighting{},
		published: map[string]models.PublishedSighting{},
	}
}

func (s *MemoryStore) InsertMaster(_ context.Context, sighting *models.Sighting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.master[sighting.ID]; exists {
		return fmt.Errorf("sighting %s already exists", sighting.ID)
	}
	s.master[sighting.ID] = *sighting
	return nil
}

func (s *MemoryStore) ListMaster(_ context.Context) ([]models.Sighting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sightings := make([]models.Sighting, 0, len(s.master))
	for _, sighting := range s.master {
		sightings = append(sightings, sighting)
	}
	slices.SortFunc(sightings, func(a, b models.Sighting) int {
		if c := b.SightedAt.Compare(a.SightedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sightings, nil
}

func (s *MemoryStore) ListPublished(_ context.Context) ([]models.PublishedSighting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sightings := make([]models.PublishedSighting, 0, len(s.published))
	for _, sighting := range s.published {
		sightings = append(sightings, sighting)
	}
	slices.SortFunc(sightings, func(a, b models.PublishedSighting) int {
		if c := b.SightedAt.Compare(a.SightedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sightings, nil
}

func (s *MemoryStore) RunInTransaction(ctx context.Context, fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		store:     s,
		master:    map[string]models.Sighting{},
		published: map[string]*models.PublishedSighting{},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for id, sighting := range tx.master {
		s.master[id] = sighting
	}
	for id, published := range tx.published {
		if published == nil {
			delete(s.published, id)
			continue
		}
		s.published[id] = *published
	}
	return nil
}

// memoryTx stages writes; a nil published entry marks a delete.
type memoryTx struct {
	store     *MemoryStore
	master    map[string]models.Sighting
	published map[string]*models.PublishedSighting
}

func (t *memoryTx) GetMaster(_ context.Context, id string) (*models.Sighting, error) {
	if sighting, ok := t.master[id]; ok {
		return &sighting, nil
	}
	sighting, ok := t.store.master[id]
	if !ok {
		return nil, apperrors.ErrSightingNotFound
	}
	return &sighting, nil
}

func (t *memoryTx) PutMaster(_ context.Context, sighting *models.Sighting) error {
	if _, ok := t.store.master[sighting.ID]; !ok {
		return apperrors.ErrSightingNotFound
	}
	sighting.Version++
	t.master[sighting.ID] = *sighting
	return nil
}

func (t *memoryTx) PutPublished(_ context.Context, published *models.PublishedSighting) error {
	p := *published
	t.published[published.ID] = &p
	return nil
}

func (t *memoryTx) DeletePublished(_ context.Context, id string) error {
	t.published[id] = nil
	return nil
}

// PublishedIDs returns the ids currently in the published store.
func (s *MemoryStore) PublishedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.published))
	for id := range s.published {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
