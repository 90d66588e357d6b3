package company

import "time"

// Company is the business being reviewed. Directory management lives in a
// separate service; this service only needs the row reviews hang off and the
// owner reference used to authorize replies.
type Company struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey"`
	OwnerID   int64     `json:"owner_id" gorm:"column:owner_id"`
	Name      string    `json:"name" gorm:"column:name"`
	Slug      string    `json:"slug" gorm:"column:slug;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Company) TableName() string { return "companies" }
