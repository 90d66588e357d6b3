package fraud

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// AuditRepository persists fraud audit entries. The table is append-only:
// rows are written once and only ever read back for rate tracking and later
// analysis.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, e *AuditEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AuditEntry{}).
		Where("ip_address = ? AND created_at >= ?", ip, since).
		Count(&count).Error
	return count, err
}

func (r *AuditRepository) GetByReviewID(ctx context.Context, reviewID int64) ([]AuditEntry, error) {
	var entries []AuditEntry
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
