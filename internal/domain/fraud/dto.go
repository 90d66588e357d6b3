package fraud

// EvaluateRequest is the internal service-boundary payload. Submission
// metadata is forwarded by the caller; fields the client never reported are
// simply absent and skip their heuristics.
type EvaluateRequest struct {
	ReviewID               int64   `json:"review_id" validate:"required,gt=0"`
	UserID                 int64   `json:"user_id" validate:"required,gt=0"`
	CompanyID              int64   `json:"company_id" validate:"required,gt=0"`
	Content                string  `json:"content" validate:"required"`
	IPAddress              string  `json:"ip_address,omitempty"`
	UserAgent              string  `json:"user_agent,omitempty"`
	WritingDurationSeconds float64 `json:"writing_duration_seconds,omitempty" validate:"omitempty,gt=0"`
	IsCopyPaste            bool    `json:"is_copy_paste,omitempty"`
}

type EvaluateResponse struct {
	RiskScore  float64   `json:"risk_score"`
	FraudType  FraudType `json:"fraud_type"`
	Indicators []string  `json:"indicators"`
	Flagged    bool      `json:"flagged"`
}
