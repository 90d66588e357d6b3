package review

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) RegisterRoutes(public, protected, moderation *gin.RouterGroup) {
	if public != nil {
		public.GET("/companies/:id/reviews", h.ListByCompany)
	}

	if protected != nil {
		protected.POST("/reviews", h.Submit)
		protected.PUT("/reviews/:id", h.Update)
		protected.POST("/reviews/:id/reply", h.Reply)
		protected.GET("/companies/:id/reviews/eligibility", h.Eligibility)
	}

	if moderation != nil {
		moderation.GET("/reviews", h.ListModeration)
		moderation.GET("/reviews/:id/history", h.History)
		moderation.PATCH("/reviews/:id/status", h.Moderate)
		moderation.POST("/reviews/:id/unflag", h.Unflag)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	meta := SubmissionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	rv, err := h.svc.Submit(c.Request.Context(), userID, req, meta)
	if err != nil {
		var notEligible *NotEligibleError
		switch {
		case errors.As(err, &notEligible):
			response.ErrorWithDetails(c, http.StatusConflict, "NOT_ELIGIBLE",
				"You already reviewed this company in the last 12 months",
				gin.H{"blocked_until": notEligible.BlockedUntil.Format(time.RFC3339)})
		case errors.Is(err, ErrCompanyNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
		case errors.Is(err, ErrInvalidRequest):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) Eligibility(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || companyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	eligible, blockedUntil, err := h.svc.CheckEligibility(c.Request.Context(), userID, companyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, EligibilityResponse{Eligible: eligible, BlockedUntil: blockedUntil})
}

func (h *Handler) Update(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.Update(c.Request.Context(), reviewID, userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) History(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	items, err := h.svc.History(c.Request.Context(), reviewID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListByCompany(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || companyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.ListByCompany(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListModeration(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	var status *Status
	if raw := c.Query("status"); raw != "" {
		s := Status(raw)
		status = &s
	}
	var flagged *bool
	if raw := c.Query("flagged"); raw != "" {
		f := raw == "true" || raw == "1"
		flagged = &f
	}

	items, total, err := h.svc.ListModeration(c.Request.Context(), status, flagged, limit, offset)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ModerationListResponse{Items: items, Total: total})
}

func (h *Handler) Moderate(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	rv, err := h.svc.Moderate(c.Request.Context(), reviewID, Status(req.Status))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Unflag(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	rv, err := h.svc.Unflag(c.Request.Context(), reviewID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Reply(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.Reply(c.Request.Context(), reviewID, userID, req.Reply)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Invalid review status")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCompanyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
