package handlers

import (
	"github.com/gorilla/mux"
	"github.com/kanbanhq/kanban-api/database"
)

// NewRouter builds the API router. Numeric path params are constrained at
// the route level, so handlers can parse them without a second check.
func NewRouter(dataService *database.DataService) *mux.Router {
	boardHandler := NewBoardHandler(dataService)
	listHandler := NewListHandler(dataService)
	cardHandler := NewCardHandler(dataService)
	checklistHandler := NewChecklistHandler(dataService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Boards
	api.HandleFunc("/boards", boardHandler.ListBoards).Methods("GET")
	api.HandleFunc("/boards", boardHandler.CreateBoard).Methods("POST")
	api.HandleFunc("/boards/{id:[0-9]+}", boardHandler.GetBoard).Methods("GET")
	api.HandleFunc("/boards/{boardId:[0-9]+}/search", boardHandler.SearchCards).Methods("GET")

	// Lists
	api.HandleFunc("/boards/{boardId:[0-9]+}/lists", listHandler.CreateList).Methods("POST")
	api.HandleFunc("/lists/reorder", listHandler.ReorderLists).Methods("POST")
	api.HandleFunc("/lists/{id:[0-9]+}", listHandler.UpdateList).Methods("PUT")
	api.HandleFunc("/lists/{id:[0-9]+}", listHandler.DeleteList).Methods("DELETE")

	// Cards
	api.HandleFunc("/lists/{listId:[0-9]+}/cards", cardHandler.CreateCard).Methods("POST")
	api.HandleFunc("/cards/reorder", cardHandler.ReorderCards).Methods("POST")
	api.HandleFunc("/cards/{id:[0-9]+}", cardHandler.UpdateCard).Methods("PUT")
	api.HandleFunc("/cards/{id:[0-9]+}", cardHandler.DeleteCard).Methods("DELETE")

	// Labels and members on cards
	api.HandleFunc("/cards/{cardId:[0-9]+}/labels/{labelId:[0-9]+}", cardHandler.AttachLabel).Methods("POST")
	api.HandleFunc("/cards/{cardId:[0-9]+}/labels/{labelId:[0-9]+}", cardHandler.DetachLabel).Methods("DELETE")
	api.HandleFunc("/cards/{cardId:[0-9]+}/members/{userId:[0-9]+}", cardHandler.AssignMember).Methods("POST")
	api.HandleFunc("/cards/{cardId:[0-9]+}/members/{userId:[0-9]+}", cardHandler.UnassignMember).Methods("DELETE")

	// Checklists
	api.HandleFunc("/cards/{cardId:[0-9]+}/checklists", checklistHandler.CreateChecklist).Methods("POST")
	api.HandleFunc("/checklists/{checklistId:[0-9]+}/items", checklistHandler.CreateItem).Methods("POST")
	api.HandleFunc("/checklist-items/{id:[0-9]+}", checklistHandler.UpdateItem).Methods("PUT")
	api.HandleFunc("/checklist-items/{id:[0-9]+}", checklistHandler.DeleteItem).Methods("DELETE")

	r.HandleFunc("/", Health).Methods("GET")

	return r
}
