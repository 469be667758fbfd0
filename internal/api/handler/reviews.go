package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/kiranshivaraju/reviewpulse/internal/api/middleware"
	"github.com/kiranshivaraju/reviewpulse/internal/api/response"
	"github.com/kiranshivaraju/reviewpulse/internal/review"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// maxBodyBytes bounds a submission body.
const maxBodyBytes = 64 << 10

// ReviewService defines what the review handlers depend on.
type ReviewService interface {
	Submit(ctx context.Context, sub review.Submission) (*models.ReviewRecord, error)
	List(ctx context.Context, p review.ListParams) (*review.ListResult, error)
}

type submitResult struct {
	ID         string `json:"id"`
	AIResponse string `json:"aiResponse"`
}

// NewSubmitHandler returns an http.HandlerFunc for POST /reviews.
func NewSubmitHandler(svc ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			response.Error(w, http.StatusBadRequest, response.CodeValidation,
				"Request body is too large or unreadable", nil)
			return
		}

		sub, err := review.DecodeSubmission(body)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		record, err := svc.Submit(r.Context(), sub)
		if err != nil {
			logger := slog.With("request_id", chimw.GetReqID(r.Context()), "error", err)
			switch {
			case errors.Is(err, review.ErrEnrichment):
				logger.Error("review enrichment failed")
				response.Error(w, http.StatusServiceUnavailable, response.CodeLLM,
					"Failed to process review with AI. Please try again.", nil)
			case errors.Is(err, review.ErrPersistence):
				logger.Error("review save failed")
				response.Error(w, http.StatusServiceUnavailable, response.CodeDatabase,
					"Failed to save review. Please try again.", nil)
			default:
				logger.Error("review submission failed")
				response.Error(w, http.StatusInternalServerError, response.CodeUnknown,
					"An unexpected error occurred. Please try again.", nil)
			}
			return
		}

		slog.Info("review submitted", "id", record.ID, "rating", record.Rating)
		response.Created(w, submitResult{ID: record.ID, AIResponse: record.AIResponse})
	}
}

// NewListHandler returns an http.HandlerFunc for GET /reviews and GET /admin/reviews.
func NewListHandler(svc ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := review.ParseListParams(r.URL.Query())
		if err != nil {
			writeValidationError(w, err)
			return
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			slog.Error("review listing failed",
				"request_id", chimw.GetReqID(r.Context()), "error", err)
			response.Error(w, http.StatusServiceUnavailable, response.CodeDatabase,
				"Failed to fetch reviews. Please try again.", nil)
			return
		}

		if sess, ok := mw.GetSession(r); ok {
			slog.Debug("admin review listing", "session_id", sess.ID, "total", result.Total)
		}
		response.JSON(w, result)
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *review.ValidationError
	if !errors.As(err, &verr) {
		response.Error(w, http.StatusBadRequest, response.CodeValidation, err.Error(), nil)
		return
	}
	code := response.CodeValidation
	if verr.TooLong() {
		code = response.CodeReviewTooLong
	}
	response.Error(w, http.StatusBadRequest, code, verr.Error(), verr.Fields)
}
