package fraud

import "time"

// FraudType is the coarse classification assigned to one evaluation, chosen by
// priority among the tripped heuristics.
type FraudType string

const (
	FraudTypeNone             FraudType = "none"
	FraudTypeIPAbuse          FraudType = "ip_abuse"
	FraudTypeDuplicateContent FraudType = "duplicate_content"
	FraudTypeBotBehavior      FraudType = "bot_behavior"
	FraudTypeRapidSubmission  FraudType = "rapid_submission"
)

// AuditEntry is the immutable record of one risk evaluation. One row is written
// per evaluation regardless of outcome; the IP rate tracker counts against this
// table, so even risk-zero evaluations matter.
type AuditEntry struct {
	ID              int64     `json:"id" gorm:"column:id;primaryKey"`
	ReviewID        int64     `json:"review_id" gorm:"column:review_id;index"`
	UserID          int64     `json:"user_id" gorm:"column:user_id"`
	IPAddress       string    `json:"ip_address" gorm:"column:ip_address;index:idx_fraud_audit_ip_created"`
	UserAgent       string    `json:"user_agent" gorm:"column:user_agent"`
	TypingSpeedWPM  *float64  `json:"typing_speed_wpm,omitempty" gorm:"column:typing_speed_wpm"`
	IsCopyPaste     bool      `json:"is_copy_paste" gorm:"column:is_copy_paste"`
	MaxSimilarity   float64   `json:"max_similarity" gorm:"column:max_similarity"`
	SimilarReviewID *int64    `json:"similar_review_id,omitempty" gorm:"column:similar_review_id"`
	FraudType       FraudType `json:"fraud_type" gorm:"column:fraud_type"`
	RiskScore       float64   `json:"risk_score" gorm:"column:risk_score"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at;index:idx_fraud_audit_ip_created"`
}

func (AuditEntry) TableName() string { return "fraud_audit_entries" }
