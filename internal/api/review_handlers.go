package api

import (
	"net/http"

	"github.com/vytor/heptareview/internal/models"
)

// The review date and schedule are decided server-side.
type submitReviewRequest struct {
	CardID            int64   `json:"cardId" validate:"required,gt=0"`
	FamiliarityScore  int     `json:"familiarityScore" validate:"required,min=1,max=5"`
	ReviewTimeMinutes *int    `json:"reviewTimeMinutes" validate:"omitempty,min=0,max=1440"`
	ReviewNotes       *string `json:"reviewNotes" validate:"omitempty,max=5000"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	review, err := s.ReviewService.SubmitReview(r.Context(), models.ReviewSubmission{
		CardID:            req.CardID,
		FamiliarityScore:  req.FamiliarityScore,
		ReviewTimeMinutes: req.ReviewTimeMinutes,
		ReviewNotes:       req.ReviewNotes,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, review)
}

func (s *Server) handleDueToday(w http.ResponseWriter, r *http.Request) {
	cards, err := s.ReviewService.DueToday(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}
