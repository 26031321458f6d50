package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kanbanhq/kanban-api/database"
	"github.com/kanbanhq/kanban-api/logging"
)

// ListHandler handles list endpoints.
type ListHandler struct {
	dataService *database.DataService
}

func NewListHandler(dataService *database.DataService) *ListHandler {
	return &ListHandler{dataService: dataService}
}

// CreateList creates a list at the end of a board.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	boardID, _ := strconv.ParseInt(mux.Vars(r)["boardId"], 10, 64)

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	list, err := h.dataService.CreateList(boardID, req.Title)
	if err != nil {
		logging.Logger.Errorf("Error creating list: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error creating list")
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

// UpdateList renames a list. Updating a missing list responds 200 with a
// null body, matching the other update endpoints.
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req struct {
		Title *string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	list, err := h.dataService.UpdateList(id, req.Title)
	if err != nil {
		logging.Logger.Errorf("Error updating list: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error updating list")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// DeleteList hard-deletes a list and everything on it.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	if err := h.dataService.DeleteList(id); err != nil {
		logging.Logger.Errorf("Error deleting list: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error deleting list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderLists applies a drag-and-drop reordering of a board's lists.
func (h *ListHandler) ReorderLists(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListOrder []database.ListPosition `json:"listOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListOrder == nil {
		respondMessage(w, http.StatusBadRequest, "listOrder must be an array")
		return
	}

	if err := h.dataService.ReorderLists(req.ListOrder); err != nil {
		logging.Logger.Errorf("Error reordering lists: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error reordering lists")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
