package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/beast-watch/api-go/models"
)

// ErrReviewerNotFound is returned when no reviewer has the requested email.
var ErrReviewerNotFound = errors.New("reviewer not found")

// ReviewerDirectory stores reviewer accounts.
type ReviewerDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.Reviewer, error)
	CreateReviewer(ctx context.Context, r *models.Reviewer) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GormReviewerDirectory keeps reviewers in postgres.
type GormReviewerDirectory struct {
	db *gorm.DB
}

func NewGormReviewerDirectory(db *gorm.DB) *GormReviewerDirectory {
	return &GormReviewerDirectory{db: db}
}

func (d *GormReviewerDirectory) FindByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	var reviewer models.Reviewer
	err := d.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&reviewer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewerNotFound
	}
	if err != nil {
		return nil, translatePgError(err)
	}
	return &reviewer, nil
}

func (d *GormReviewerDirectory) CreateReviewer(ctx context.Context, r *models.Reviewer) error {
	r.Email = normalizeEmail(r.Email)
	if err := d.db.WithContext(ctx).Create(r).Error; err != nil {
		return translatePgError(err)
	}
	return nil
}

func (d *GormReviewerDirectory) RecordLogin(ctx context.Context, id string, at time.Time) error {
	err := d.db.WithContext(ctx).Model(&models.Reviewer{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
	if err != nil {
		return translatePgError(err)
	}
	return nil
}

// MemoryReviewerDirectory keeps reviewers in process memory. It backs the
// memory and dynamodb store backends, where no postgres is configured.
type MemoryReviewerDirectory struct {
	mu      sync.RWMutex
	byEmail map[string]models.Reviewer
}

func NewMemoryReviewerDirectory() *MemoryReviewerDirectory {
	return &MemoryReviewerDirectory{byEmail: make(map[string]models.Reviewer)}
}

func (d *MemoryReviewerDirectory) FindByEmail(_ context.Context, email string) (*models.Reviewer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	reviewer, ok := d.byEmail[normalizeEmail(email)]
	if !ok || reviewer.DeletedAt.Valid {
		return nil, ErrReviewerNotFound
	}
	return &reviewer, nil
}

func (d *MemoryReviewerDirectory) CreateReviewer(_ context.Context, r *models.Reviewer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	r.Email = normalizeEmail(r.Email)
	if _, exists := d.byEmail[r.Email]; exists {
		return errors.New("reviewer email already registered")
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	d.byEmail[r.Email] = *r
	return nil
}

func (d *MemoryReviewerDirectory) RecordLogin(_ context.Context, id string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for email, reviewer := range d.byEmail {
		if reviewer.ID == id {
			reviewer.LastLoginAt = &at
			d.byEmail[email] = reviewer
			return nil
		}
	}
	return ErrReviewerNotFound
}
