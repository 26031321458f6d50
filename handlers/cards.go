package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kanbanhq/kanban-api/database"
	"github.com/kanbanhq/kanban-api/logging"
)

// CardHandler handles card endpoints, including label and member links.
type CardHandler struct {
	dataService *database.DataService
}

func NewCardHandler(dataService *database.DataService) *CardHandler {
	return &CardHandler{dataService: dataService}
}

// CreateCard creates a card at the end of a list.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	listID, _ := strconv.ParseInt(mux.Vars(r)["listId"], 10, 64)

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	card, err := h.dataService.CreateCard(listID, req.Title)
	if err != nil {
		logging.Logger.Errorf("Error creating card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error creating card")
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// UpdateCard applies a partial update. Omitted fields keep their stored
// values; in particular omitting archived never un-archives a card.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		Archived    *bool   `json:"archived"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	card, err := h.dataService.UpdateCard(id, req.Title, req.Description, req.DueDate, req.Archived)
	if err != nil {
		logging.Logger.Errorf("Error updating card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error updating card")
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// DeleteCard hard-deletes a card with its checklists and links.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	if err := h.dataService.DeleteCard(id); err != nil {
		logging.Logger.Errorf("Error deleting card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error deleting card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCards applies a drag-and-drop reordering, including moves between
// lists.
func (h *CardHandler) ReorderCards(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardOrder []database.CardPosition `json:"cardOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardOrder == nil {
		respondMessage(w, http.StatusBadRequest, "cardOrder must be an array")
		return
	}

	if err := h.dataService.ReorderCards(req.CardOrder); err != nil {
		logging.Logger.Errorf("Error reordering cards: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error reordering cards")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachLabel adds a label to a card.
func (h *CardHandler) AttachLabel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, _ := strconv.ParseInt(vars["cardId"], 10, 64)
	labelID, _ := strconv.ParseInt(vars["labelId"], 10, 64)

	if err := h.dataService.AttachLabel(cardID, labelID); err != nil {
		logging.Logger.Errorf("Error adding label to card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error adding label to card")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DetachLabel removes a label from a card.
func (h *CardHandler) DetachLabel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, _ := strconv.ParseInt(vars["cardId"], 10, 64)
	labelID, _ := strconv.ParseInt(vars["labelId"], 10, 64)

	if err := h.dataService.DetachLabel(cardID, labelID); err != nil {
		logging.Logger.Errorf("Error removing label from card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error removing label from card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignMember adds a user to a card.
func (h *CardHandler) AssignMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, _ := strconv.ParseInt(vars["cardId"], 10, 64)
	userID, _ := strconv.ParseInt(vars["userId"], 10, 64)

	if err := h.dataService.AssignMember(cardID, userID); err != nil {
		logging.Logger.Errorf("Error assigning member to card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error assigning member to card")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// UnassignMember removes a user from a card.
func (h *CardHandler) UnassignMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, _ := strconv.ParseInt(vars["cardId"], 10, 64)
	userID, _ := strconv.ParseInt(vars["userId"], 10, 64)

	if err := h.dataService.UnassignMember(cardID, userID); err != nil {
		logging.Logger.Errorf("Error removing member from card: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error removing member from card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
