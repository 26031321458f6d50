package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kanbanhq/kanban-api/database"
	"github.com/kanbanhq/kanban-api/logging"
)

// BoardHandler handles board-level endpoints.
type BoardHandler struct {
	dataService *database.DataService
}

func NewBoardHandler(dataService *database.DataService) *BoardHandler {
	return &BoardHandler{dataService: dataService}
}

// BoardDetail is the assembled document returned for a single board.
type BoardDetail struct {
	Board  database.Board   `json:"board"`
	Lists  []ListDetail     `json:"lists"`
	Labels []database.Label `json:"labels"`
	Users  []database.User  `json:"users"`
}

type ListDetail struct {
	database.List
	Cards []CardDetail `json:"cards"`
}

type CardDetail struct {
	database.Card
	Labels     []*database.Label `json:"labels"`
	Checklists []ChecklistDetail `json:"checklists"`
	Members    []*database.User  `json:"members"`
}

type ChecklistDetail struct {
	database.Checklist
	Items []database.ChecklistItem `json:"items"`
}

// ListBoards returns all boards.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.dataService.Boards()
	if err != nil {
		logging.Logger.Errorf("Error fetching boards: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error fetching boards")
		return
	}
	respondJSON(w, http.StatusOK, boards)
}

// CreateBoard creates a board from a JSON body with a title.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	board, err := h.dataService.CreateBoard(req.Title)
	if err != nil {
		logging.Logger.Errorf("Error creating board: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error creating board")
		return
	}
	respondJSON(w, http.StatusCreated, board)
}

// GetBoard returns one board with its lists, cards, and related entities
// assembled into a single document.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	board, err := h.dataService.BoardByID(id)
	if err != nil {
		logging.Logger.Errorf("Error fetching board: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error fetching board")
		return
	}
	if board == nil {
		respondMessage(w, http.StatusNotFound, "Board not found")
		return
	}

	detail, err := h.assembleBoard(*board)
	if err != nil {
		logging.Logger.Errorf("Error fetching board: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error fetching board")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// assembleBoard joins the board's lists and cards with labels, checklists,
// and members in memory. Links pointing at rows that no longer resolve keep
// their slot as a null entry rather than being skipped.
func (h *BoardHandler) assembleBoard(board database.Board) (*BoardDetail, error) {
	lists, err := h.dataService.ListsForBoard(board.ID)
	if err != nil {
		return nil, err
	}
	cards, err := h.dataService.CardsForBoard(board.ID)
	if err != nil {
		return nil, err
	}
	labels, err := h.dataService.LabelsForBoard(board.ID)
	if err != nil {
		return nil, err
	}
	cardLabels, err := h.dataService.CardLabels()
	if err != nil {
		return nil, err
	}
	checklists, err := h.dataService.Checklists()
	if err != nil {
		return nil, err
	}
	checklistItems, err := h.dataService.ChecklistItems()
	if err != nil {
		return nil, err
	}
	cardMembers, err := h.dataService.CardMembers()
	if err != nil {
		return nil, err
	}
	users, err := h.dataService.Users()
	if err != nil {
		return nil, err
	}

	labelByID := make(map[int64]*database.Label, len(labels))
	for i := range labels {
		labelByID[labels[i].ID] = &labels[i]
	}
	userByID := make(map[int64]*database.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	cardsByList := make(map[int64][]database.Card)
	for _, c := range cards {
		cardsByList[c.ListID] = append(cardsByList[c.ListID], c)
	}
	labelIDsByCard := make(map[int64][]int64)
	for _, cl := range cardLabels {
		labelIDsByCard[cl.CardID] = append(labelIDsByCard[cl.CardID], cl.LabelID)
	}
	checklistsByCard := make(map[int64][]database.Checklist)
	for _, ch := range checklists {
		checklistsByCard[ch.CardID] = append(checklistsByCard[ch.CardID], ch)
	}
	itemsByChecklist := make(map[int64][]database.ChecklistItem)
	for _, it := range checklistItems {
		itemsByChecklist[it.ChecklistID] = append(itemsByChecklist[it.ChecklistID], it)
	}
	userIDsByCard := make(map[int64][]int64)
	for _, cm := range cardMembers {
		userIDsByCard[cm.CardID] = append(userIDsByCard[cm.CardID], cm.UserID)
	}

	detail := &BoardDetail{
		Board:  board,
		Lists:  make([]ListDetail, 0, len(lists)),
		Labels: labels,
		Users:  users,
	}

	for _, list := range lists {
		listDetail := ListDetail{List: list, Cards: []CardDetail{}}

		for _, card := range cardsByList[list.ID] {
			cardDetail := CardDetail{
				Card:       card,
				Labels:     []*database.Label{},
				Checklists: []ChecklistDetail{},
				Members:    []*database.User{},
			}

			for _, labelID := range labelIDsByCard[card.ID] {
				cardDetail.Labels = append(cardDetail.Labels, labelByID[labelID])
			}
			for _, checklist := range checklistsByCard[card.ID] {
				items := itemsByChecklist[checklist.ID]
				if items == nil {
					items = []database.ChecklistItem{}
				}
				cardDetail.Checklists = append(cardDetail.Checklists, ChecklistDetail{
					Checklist: checklist,
					Items:     items,
				})
			}
			for _, userID := range userIDsByCard[card.ID] {
				cardDetail.Members = append(cardDetail.Members, userByID[userID])
			}

			listDetail.Cards = append(listDetail.Cards, cardDetail)
		}

		detail.Lists = append(detail.Lists, listDetail)
	}

	return detail, nil
}

// SearchCards filters the board's non-archived cards by title substring,
// label, member, and due-date range.
func (h *BoardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	boardID, _ := strconv.ParseInt(mux.Vars(r)["boardId"], 10, 64)

	q := r.URL.Query()
	filter := database.CardFilter{
		Query:     q.Get("q"),
		LabelID:   q.Get("labelId"),
		MemberID:  q.Get("memberId"),
		DueBefore: q.Get("dueBefore"),
		DueAfter:  q.Get("dueAfter"),
	}

	cards, err := h.dataService.SearchCards(boardID, filter)
	if err != nil {
		logging.Logger.Errorf("Error searching cards: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error searching cards")
		return
	}
	respondJSON(w, http.StatusOK, cards)
}
