package review

import "time"

type SubmitReviewRequest struct {
	CompanyID     int64  `json:"company_id" validate:"required,gt=0"`
	Title         string `json:"title" validate:"required,min=3"`
	Content       string `json:"content" validate:"required,min=20"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
	ServiceRating int    `json:"service_rating" validate:"required,gte=1,lte=5"`
	PriceRating   int    `json:"price_rating" validate:"required,gte=1,lte=5"`
	SpeedRating   int    `json:"speed_rating" validate:"required,gte=1,lte=5"`
	QualityRating int    `json:"quality_rating" validate:"required,gte=1,lte=5"`

	ImageURL *string `json:"image_url,omitempty"`

	// client-reported submission metadata, both optional
	WritingDurationSeconds float64 `json:"writing_duration_seconds,omitempty" validate:"omitempty,gt=0"`
	IsCopyPaste            bool    `json:"is_copy_paste,omitempty"`
}

type UpdateReviewRequest struct {
	Title         string  `json:"title" validate:"required,min=3"`
	Content       string  `json:"content" validate:"required,min=20"`
	Rating        int     `json:"rating" validate:"required,gte=1,lte=5"`
	ServiceRating int     `json:"service_rating" validate:"required,gte=1,lte=5"`
	PriceRating   int     `json:"price_rating" validate:"required,gte=1,lte=5"`
	SpeedRating   int     `json:"speed_rating" validate:"required,gte=1,lte=5"`
	QualityRating int     `json:"quality_rating" validate:"required,gte=1,lte=5"`
	ImageURL      *string `json:"image_url,omitempty"`
}

type ModerateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

type EligibilityResponse struct {
	Eligible     bool       `json:"eligible"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

type ModerationListResponse struct {
	Items []Review `json:"items"`
	Total int64    `json:"total"`
}
