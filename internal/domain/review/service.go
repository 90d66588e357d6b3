package review

import (
	"context"
	"errors"
	"time"

	"trustrate/internal/domain/company"
	"trustrate/internal/domain/fraud"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EligibilityWindow is the rolling lock between two reviews of the same
// company by the same author. Implemented as exactly 365 days so the boundary
// is precise.
const EligibilityWindow = 365 * 24 * time.Hour

type CompanyGate interface {
	GetByID(ctx context.Context, id int64) (*company.Company, error)
}

type FraudEvaluator interface {
	Evaluate(ctx context.Context, in fraud.EvaluateInput) (*fraud.Evaluation, error)
}

type Service struct {
	reviews   *Repository
	companies CompanyGate
	fraud     FraudEvaluator
}

func NewService(reviews *Repository, companies CompanyGate, fraudSvc FraudEvaluator) *Service {
	return &Service{reviews: reviews, companies: companies, fraud: fraudSvc}
}

// SubmissionMeta is what the transport layer knows about the request itself.
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
}

// Submit runs the eligibility gate, creates the review as pending and then
// hands it to the fraud pipeline. A pipeline failure or timeout never fails
// the submission: the user-facing contract is "your review was received", so
// the review stays pending and unflagged and evaluation can be retried through
// the internal endpoint.
func (s *Service) Submit(ctx context.Context, userID int64, req SubmitReviewRequest, meta SubmissionMeta) (*Review, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.companies.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	eligible, blockedUntil, err := s.CheckEligibility(ctx, userID, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, &NotEligibleError{BlockedUntil: *blockedUntil}
	}

	rv := &Review{
		CompanyID:              req.CompanyID,
		UserID:                 userID,
		Title:                  req.Title,
		Content:                req.Content,
		Rating:                 req.Rating,
		ServiceRating:          &req.ServiceRating,
		PriceRating:            &req.PriceRating,
		SpeedRating:            &req.SpeedRating,
		QualityRating:          &req.QualityRating,
		Status:                 StatusPending,
		ImageURL:               req.ImageURL,
		WritingDurationSeconds: req.WritingDurationSeconds,
		SubmitIP:               meta.IPAddress,
		IsCopyPaste:            req.IsCopyPaste,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	if s.fraud != nil {
		_, err := s.fraud.Evaluate(ctx, fraud.EvaluateInput{
			ReviewID:               rv.ID,
			UserID:                 userID,
			CompanyID:              req.CompanyID,
			Content:                req.Content,
			IPAddress:              meta.IPAddress,
			UserAgent:              meta.UserAgent,
			WritingDurationSeconds: req.WritingDurationSeconds,
			IsCopyPaste:            req.IsCopyPaste,
		})
		if err != nil {
			log.WithError(err).WithField("review_id", rv.ID).
				Error("fraud evaluation failed, review left pending and unflagged")
		} else if fresh, err := s.reviews.GetByID(ctx, rv.ID); err == nil {
			rv = fresh
		}
	}

	return rv, nil
}

// CheckEligibility applies the one-review-per-company-per-12-months rule. A
// rejected prior review still arms the lock: the rule keys off submission, not
// approval. Pure read, no side effects.
func (s *Service) CheckEligibility(ctx context.Context, userID, companyID int64) (bool, *time.Time, error) {
	if userID <= 0 || companyID <= 0 {
		return false, nil, ErrInvalidRequest
	}

	oneYearAgo := time.Now().UTC().Add(-EligibilityWindow)
	prior, err := s.reviews.LatestByAuthorForCompanySince(ctx, userID, companyID, oneYearAgo)
	if err != nil {
		return false, nil, err
	}
	if prior == nil {
		return true, nil, nil
	}

	blockedUntil := prior.CreatedAt.Add(EligibilityWindow)
	return false, &blockedUntil, nil
}

// Update lets the author edit a review. The pre-edit title/content/rating are
// snapshotted first; status and flag are untouched by edits.
func (s *Service) Update(ctx context.Context, reviewID, userID int64, req UpdateReviewRequest) (*Review, error) {
	if reviewID <= 0 || userID <= 0 {
		return nil, ErrInvalidRequest
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rv.UserID != userID {
		return nil, ErrForbidden
	}

	snapshot := &History{
		ReviewID: rv.ID,
		Title:    rv.Title,
		Content:  rv.Content,
		Rating:   rv.Rating,
	}
	if err := s.reviews.AppendHistory(ctx, snapshot); err != nil {
		return nil, err
	}

	rv.Title = req.Title
	rv.Content = req.Content
	rv.Rating = req.Rating
	rv.ServiceRating = &req.ServiceRating
	rv.PriceRating = &req.PriceRating
	rv.SpeedRating = &req.SpeedRating
	rv.QualityRating = &req.QualityRating
	rv.ImageURL = req.ImageURL

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

func (s *Service) History(ctx context.Context, reviewID int64) ([]History, error) {
	if reviewID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.reviews.ListHistory(ctx, reviewID)
}

// Moderate moves a review to any lifecycle state. Every state is reachable
// from every other; only moderators get here.
func (s *Service) Moderate(ctx context.Context, reviewID int64, status Status) (*Review, error) {
	if reviewID <= 0 {
		return nil, ErrInvalidRequest
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.reviews.SetStatus(ctx, reviewID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

func (s *Service) Unflag(ctx context.Context, reviewID int64) (*Review, error) {
	if reviewID <= 0 {
		return nil, ErrInvalidRequest
	}
	if err := s.reviews.ClearFlag(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

// Reply attaches the company's response; only the company owner may reply.
func (s *Service) Reply(ctx context.Context, reviewID, userID int64, reply string) (*Review, error) {
	if reviewID <= 0 || userID <= 0 || reply == "" {
		return nil, ErrInvalidRequest
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	co, err := s.companies.GetByID(ctx, rv.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if co.OwnerID != userID {
		return nil, ErrForbidden
	}

	updated, err := s.reviews.SetCompanyReply(ctx, reviewID, reply)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ListByCompany returns the public view: approved reviews only.
func (s *Service) ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]Review, error) {
	if companyID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.reviews.ListByCompany(ctx, companyID, StatusApproved, limit, offset)
}

func (s *Service) ListModeration(ctx context.Context, status *Status, flagged *bool, limit, offset int) ([]Review, int64, error) {
	if status != nil && !status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.reviews.ListModeration(ctx, status, flagged, limit, offset)
}
