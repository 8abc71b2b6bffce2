package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
	"studytrack-backend/internal/schedule"
)

type FlashcardHandler struct {
	flashRepo *repository.FlashcardRepo
}

func NewFlashcardHandler(flashRepo *repository.FlashcardRepo) *FlashcardHandler {
	return &FlashcardHandler{flashRepo: flashRepo}
}

// Deck endpoints

func (h *FlashcardHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "name is required", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deck := &models.FlashcardDeck{
		UserID:      userID,
		SubjectID:   req.SubjectID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	if err := h.flashRepo.CreateDeck(r.Context(), deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, deck)
}

func (h *FlashcardHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.flashRepo.ListDecksByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch decks", r))
		return
	}
	if decks == nil {
		decks = []*models.FlashcardDeck{}
	}

	writeJSON(w, http.StatusOK, decks)
}

func (h *FlashcardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.ownedDeck(w, r, "id")
	if !ok {
		return
	}

	cards, err := h.flashRepo.ListCardsByDeck(r.Context(), deck.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch cards", r))
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}

func (h *FlashcardHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.ownedDeck(w, r, "id")
	if !ok {
		return
	}

	if err := h.flashRepo.DeleteDeck(r.Context(), deck.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}

// Card endpoints

func (h *FlashcardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.ownedDeck(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Front == "" || req.Back == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "front and back are required", r))
		return
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "difficulty must be easy, medium or hard", r))
		return
	}

	card := &models.Flashcard{
		DeckID:     deck.ID,
		Front:      req.Front,
		Back:       req.Back,
		Difficulty: req.Difficulty,
	}

	if err := h.flashRepo.CreateCard(r.Context(), card); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create card", r))
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

// Due returns the deck's cards that are ready for review, cards never
// reviewed first.
func (h *FlashcardHandler) Due(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.ownedDeck(w, r, "id")
	if !ok {
		return
	}

	cards, err := h.flashRepo.ListDueCards(r.Context(), deck.ID, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch due cards", r))
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, cards)
}

// Review applies a spaced repetition pass to one card and bumps the
// deck's last-studied timestamp.
func (h *FlashcardHandler) Review(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.ownedDeck(w, r, "id")
	if !ok {
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	var req models.ReviewCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !req.Difficulty.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "difficulty must be easy, medium or hard", r))
		return
	}

	card, err := h.flashRepo.GetCardByID(r.Context(), cardID)
	if err != nil || card.DeckID != deck.ID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return
	}

	correct := req.Correct == nil || *req.Correct
	now := time.Now()
	schedule.ReviewCard(card, req.Difficulty, correct, now)

	if err := h.flashRepo.UpdateReview(r.Context(), card); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save review", r))
		return
	}
	h.flashRepo.TouchDeck(r.Context(), deck.ID, now)

	writeJSON(w, http.StatusOK, card)
}

func (h *FlashcardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.ownedDeck(w, r, "id")
	if !ok {
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	card, err := h.flashRepo.GetCardByID(r.Context(), cardID)
	if err != nil || card.DeckID != deck.ID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return
	}

	if err := h.flashRepo.DeleteCard(r.Context(), cardID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete card", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}

func (h *FlashcardHandler) ownedDeck(w http.ResponseWriter, r *http.Request, param string) (*models.FlashcardDeck, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return nil, false
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.flashRepo.GetDeckByID(r.Context(), id)
	if err != nil || deck.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return nil, false
	}
	return deck, true
}
