package review

import "time"

// Status is the moderation lifecycle state. There is no terminal state: a
// moderator can move a review between any two states at any time.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Review is a user-authored evaluation of a company. IsFlagged is advisory and
// orthogonal to Status: a flagged review stays pending and is routed to the
// moderator queue, never auto-rejected.
type Review struct {
	ID            int64  `json:"id" gorm:"column:id;primaryKey"`
	CompanyID     int64  `json:"company_id" gorm:"column:company_id;index:idx_reviews_company_created"`
	UserID        int64  `json:"user_id" gorm:"column:user_id;index:idx_reviews_user_created"`
	Title         string `json:"title" gorm:"column:title"`
	Content       string `json:"content" gorm:"column:content"`
	Rating        int    `json:"rating" gorm:"column:rating"`
	ServiceRating *int   `json:"service_rating,omitempty" gorm:"column:service_rating"`
	PriceRating   *int   `json:"price_rating,omitempty" gorm:"column:price_rating"`
	SpeedRating   *int   `json:"speed_rating,omitempty" gorm:"column:speed_rating"`
	QualityRating *int   `json:"quality_rating,omitempty" gorm:"column:quality_rating"`

	Status     Status `json:"status" gorm:"column:status"`
	IsFlagged  bool   `json:"is_flagged" gorm:"column:is_flagged"`
	FlagReason string `json:"flag_reason,omitempty" gorm:"column:flag_reason"`

	ImageURL     *string    `json:"image_url,omitempty" gorm:"column:image_url"`
	CompanyReply *string    `json:"company_reply,omitempty" gorm:"column:company_reply"`
	RepliedAt    *time.Time `json:"replied_at,omitempty" gorm:"column:replied_at"`

	// client-reported submission metadata, never exposed to readers
	WritingDurationSeconds float64 `json:"-" gorm:"column:writing_duration_seconds"`
	SubmitIP               string  `json:"-" gorm:"column:submit_ip"`
	IsCopyPaste            bool    `json:"-" gorm:"column:is_copy_paste"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;index:idx_reviews_company_created;index:idx_reviews_user_created"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Review) TableName() string { return "reviews" }

// History is an append-only snapshot of a review's pre-edit content, taken
// whenever the author edits after initial publication.
type History struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey"`
	ReviewID  int64     `json:"review_id" gorm:"column:review_id;index"`
	Title     string    `json:"title" gorm:"column:title"`
	Content   string    `json:"content" gorm:"column:content"`
	Rating    int       `json:"rating" gorm:"column:rating"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (History) TableName() string { return "review_history" }
