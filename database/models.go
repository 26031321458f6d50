package database

type Board struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type List struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type Card struct {
	ID          int64   `json:"id"`
	ListID      int64   `json:"list_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Position    int     `json:"position"`
	Archived    bool    `json:"archived"`
}

type Label struct {
	ID      int64  `json:"id"`
	BoardID int64  `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// CardLabel links a card to a label. It has no identity of its own.
type CardLabel struct {
	CardID  int64 `json:"card_id"`
	LabelID int64 `json:"label_id"`
}

type Checklist struct {
	ID     int64  `json:"id"`
	CardID int64  `json:"card_id"`
	Title  string `json:"title"`
}

type ChecklistItem struct {
	ID          int64  `json:"id"`
	ChecklistID int64  `json:"checklist_id"`
	Title       string `json:"title"`
	IsComplete  bool   `json:"is_complete"`
	Position    int    `json:"position"`
}

// CardMember links a card to a user.
type CardMember struct {
	CardID int64 `json:"card_id"`
	UserID int64 `json:"user_id"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListPosition is one entry of a list reorder request.
type ListPosition struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}

// CardPosition is one entry of a card reorder request. ListID changes when
// a card is dragged into another list.
type CardPosition struct {
	ID       int64 `json:"id"`
	ListID   int64 `json:"list_id"`
	Position int   `json:"position"`
}
