package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kanbanhq/kanban-api/database"
	"github.com/kanbanhq/kanban-api/logging"
)

// ChecklistHandler handles checklist and checklist-item endpoints.
type ChecklistHandler struct {
	dataService *database.DataService
}

func NewChecklistHandler(dataService *database.DataService) *ChecklistHandler {
	return &ChecklistHandler{dataService: dataService}
}

// CreateChecklist creates a checklist on a card.
func (h *ChecklistHandler) CreateChecklist(w http.ResponseWriter, r *http.Request) {
	cardID, _ := strconv.ParseInt(mux.Vars(r)["cardId"], 10, 64)

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	checklist, err := h.dataService.CreateChecklist(cardID, req.Title)
	if err != nil {
		logging.Logger.Errorf("Error creating checklist: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error creating checklist")
		return
	}
	respondJSON(w, http.StatusCreated, checklist)
}

// CreateItem creates an item at the end of a checklist.
func (h *ChecklistHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	checklistID, _ := strconv.ParseInt(mux.Vars(r)["checklistId"], 10, 64)

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	item, err := h.dataService.CreateChecklistItem(checklistID, req.Title)
	if err != nil {
		logging.Logger.Errorf("Error creating checklist item: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error creating checklist item")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdateItem applies a partial update to a checklist item.
func (h *ChecklistHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req struct {
		Title      *string `json:"title"`
		IsComplete *bool   `json:"is_complete"`
		Position   *int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := h.dataService.UpdateChecklistItem(id, req.Title, req.IsComplete, req.Position)
	if err != nil {
		logging.Logger.Errorf("Error updating checklist item: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error updating checklist item")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteItem removes a checklist item.
func (h *ChecklistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	if err := h.dataService.DeleteChecklistItem(id); err != nil {
		logging.Logger.Errorf("Error deleting checklist item: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error deleting checklist item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
