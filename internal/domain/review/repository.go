package review

import (
	"context"
	"time"

	"trustrate/internal/domain/fraud"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// Update persists author-editable fields only; status and flag columns have
// their own write paths.
func (r *Repository) Update(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", rv.ID).
		Updates(map[string]any{
			"title":          rv.Title,
			"content":        rv.Content,
			"rating":         rv.Rating,
			"service_rating": rv.ServiceRating,
			"price_rating":   rv.PriceRating,
			"speed_rating":   rv.SpeedRating,
			"quality_rating": rv.QualityRating,
			"image_url":      rv.ImageURL,
			"updated_at":     time.Now().UTC(),
		}).Error
}

func (r *Repository) ListByCompany(ctx context.Context, companyID int64, status Status, limit, offset int) ([]Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []Review
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

// ListModeration returns the moderator queue, filtered by status and/or flag.
func (r *Repository) ListModeration(ctx context.Context, status *Status, flagged *bool, limit, offset int) ([]Review, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := r.db.WithContext(ctx).Model(&Review{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if flagged != nil {
		q = q.Where("is_flagged = ?", *flagged)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Review
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

// LatestByAuthorForCompanySince backs the eligibility gate: the most recent
// review by this author for this company inside the window, regardless of its
// moderation status.
func (r *Repository) LatestByAuthorForCompanySince(ctx context.Context, userID, companyID int64, since time.Time) (*Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ? AND created_at >= ?", userID, companyID, since).
		Order("created_at DESC").
		First(&rv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rv, nil
}

func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) error {
	tx := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ClearFlag(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_flagged":  false,
			"flag_reason": "",
			"updated_at":  time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) SetCompanyReply(ctx context.Context, id int64, reply string) (*Review, error) {
	tx := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"company_reply": reply,
			"replied_at":    time.Now().UTC(),
			"updated_at":    time.Now().UTC(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) AppendHistory(ctx context.Context, h *History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *Repository) ListHistory(ctx context.Context, reviewID int64) ([]History, error) {
	var rows []History
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ---- fraud.ReviewStore ----

func (r *Repository) CountByAuthorSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *Repository) RecentCorpus(ctx context.Context, since time.Time, limit int) ([]fraud.CorpusItem, error) {
	var rows []Review
	err := r.db.WithContext(ctx).
		Select("id", "content").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]fraud.CorpusItem, 0, len(rows))
	for _, rv := range rows {
		items = append(items, fraud.CorpusItem{ID: rv.ID, Content: rv.Content})
	}
	return items, nil
}

// MarkFlagged only ever sets the flag; clearing is a moderator action through
// ClearFlag.
func (r *Repository) MarkFlagged(ctx context.Context, reviewID int64, reason string) error {
	tx := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]any{
			"is_flagged":  true,
			"flag_reason": reason,
			"updated_at":  time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
