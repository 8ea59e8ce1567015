package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/heptareview/internal/logger"
	"github.com/vytor/heptareview/internal/models"
)

type createCardRequest struct {
	CardName string  `json:"cardName" validate:"required,max=200"`
	Subject  string  `json:"subject" validate:"required,max=100"`
	Note     *string `json:"note" validate:"omitempty,max=5000"`
}

type updateCardRequest struct {
	CardName *string `json:"cardName" validate:"omitempty,max=200"`
	Subject  *string `json:"subject" validate:"omitempty,max=100"`
	Note     *string `json:"note" validate:"omitempty,max=5000"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := models.CardFilter{
		Subject: q.Get("subject"),
		Search:  q.Get("q"),
		Limit:   limit,
		Offset:  offset,
	}
	cards, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	total, err := s.CardService.CountCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), models.Card{
		Name:    req.CardName,
		Subject: req.Subject,
		Note:    req.Note,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req updateCardRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, models.CardUpdate{
		Name:    req.CardName,
		Subject: req.Subject,
		Note:    req.Note,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("card %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCardReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	reviews, err := s.CardService.ListReviews(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reviews)
}
