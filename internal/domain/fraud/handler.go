package fraud

import (
	"net/http"

	"trustrate/internal/pkg/response"
	"trustrate/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the evaluation endpoint on the internal group; the
// caller is expected to wrap the group with the internal token middleware.
func (h *Handler) RegisterRoutes(internal *gin.RouterGroup) {
	internal.POST("/fraud/evaluate", h.Evaluate)
}

func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	ip := req.IPAddress
	if ip == "" {
		ip = c.ClientIP()
	}
	ua := req.UserAgent
	if ua == "" {
		ua = c.Request.UserAgent()
	}

	ev, err := h.svc.Evaluate(c.Request.Context(), EvaluateInput{
		ReviewID:               req.ReviewID,
		UserID:                 req.UserID,
		CompanyID:              req.CompanyID,
		Content:                req.Content,
		IPAddress:              ip,
		UserAgent:              ua,
		WritingDurationSeconds: req.WritingDurationSeconds,
		IsCopyPaste:            req.IsCopyPaste,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EVALUATION_FAILED", "Fraud evaluation failed")
		return
	}

	indicators := ev.Indicators
	if indicators == nil {
		indicators = []string{}
	}
	response.Success(c, http.StatusOK, EvaluateResponse{
		RiskScore:  ev.RiskScore,
		FraudType:  ev.FraudType,
		Indicators: indicators,
		Flagged:    ev.Flagged,
	})
}
