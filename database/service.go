package database

import (
	"database/sql"
	"fmt"
)

// DataService handles all database operations for the board API.
type DataService struct {
	db *sql.DB
}

func NewDataService(db *sql.DB) *DataService {
	return &DataService{db: db}
}

// Boards returns all boards, id ascending.
func (s *DataService) Boards() ([]Board, error) {
	rows, err := s.db.Query("SELECT id, title FROM boards ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []Board{}
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// CreateBoard inserts a board and reads the created row back.
func (s *DataService) CreateBoard(title string) (*Board, error) {
	res, err := s.db.Exec("INSERT INTO boards (title) VALUES (?)", title)
	if err != nil {
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}
	return s.BoardByID(id)
}

// BoardByID returns the board or nil when no such row exists.
func (s *DataService) BoardByID(id int64) (*Board, error) {
	var b Board
	err := s.db.QueryRow("SELECT id, title FROM boards WHERE id = ?", id).Scan(&b.ID, &b.Title)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}
	return &b, nil
}

// ListsForBoard returns the board's lists in display order.
func (s *DataService) ListsForBoard(boardID int64) ([]List, error) {
	rows, err := s.db.Query(
		"SELECT id, board_id, title, position FROM lists WHERE board_id = ? ORDER BY position", boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	lists := []List{}
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CardsForBoard returns all non-archived cards on the board's lists,
// in display order.
func (s *DataService) CardsForBoard(boardID int64) ([]Card, error) {
	rows, err := s.db.Query(`
		SELECT id, list_id, title, description, due_date, position, archived
		FROM cards
		WHERE list_id IN (SELECT id FROM lists WHERE board_id = ?) AND archived = 0
		ORDER BY position`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}

// LabelsForBoard returns the board's labels.
func (s *DataService) LabelsForBoard(boardID int64) ([]Label, error) {
	rows, err := s.db.Query(
		"SELECT id, board_id, name, color FROM labels WHERE board_id = ?", boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	labels := []Label{}
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// CardLabels returns every card-label link.
func (s *DataService) CardLabels() ([]CardLabel, error) {
	rows, err := s.db.Query("SELECT card_id, label_id FROM card_labels")
	if err != nil {
		return nil, fmt.Errorf("failed to query card labels: %w", err)
	}
	defer rows.Close()

	links := []CardLabel{}
	for rows.Next() {
		var cl CardLabel
		if err := rows.Scan(&cl.CardID, &cl.LabelID); err != nil {
			return nil, fmt.Errorf("failed to scan card label: %w", err)
		}
		links = append(links, cl)
	}
	return links, rows.Err()
}

// Checklists returns every checklist.
func (s *DataService) Checklists() ([]Checklist, error) {
	rows, err := s.db.Query("SELECT id, card_id, title FROM checklists")
	if err != nil {
		return nil, fmt.Errorf("failed to query checklists: %w", err)
	}
	defer rows.Close()

	checklists := []Checklist{}
	for rows.Next() {
		var c Checklist
		if err := rows.Scan(&c.ID, &c.CardID, &c.Title); err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		checklists = append(checklists, c)
	}
	return checklists, rows.Err()
}

// ChecklistItems returns every checklist item.
func (s *DataService) ChecklistItems() ([]ChecklistItem, error) {
	rows, err := s.db.Query(
		"SELECT id, checklist_id, title, is_complete, position FROM checklist_items")
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items: %w", err)
	}
	defer rows.Close()

	items := []ChecklistItem{}
	for rows.Next() {
		var it ChecklistItem
		if err := rows.Scan(&it.ID, &it.ChecklistID, &it.Title, &it.IsComplete, &it.Position); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CardMembers returns every card-member link.
func (s *DataService) CardMembers() ([]CardMember, error) {
	rows, err := s.db.Query("SELECT card_id, user_id FROM card_members")
	if err != nil {
		return nil, fmt.Errorf("failed to query card members: %w", err)
	}
	defer rows.Close()

	links := []CardMember{}
	for rows.Next() {
		var cm CardMember
		if err := rows.Scan(&cm.CardID, &cm.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan card member: %w", err)
		}
		links = append(links, cm)
	}
	return links, rows.Err()
}

// Users returns every user.
func (s *DataService) Users() ([]User, error) {
	rows, err := s.db.Query("SELECT id, name, email FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateList inserts a list at the end of the board.
func (s *DataService) CreateList(boardID int64, title string) (*List, error) {
	var maxPos int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(position), 0) FROM lists WHERE board_id = ?", boardID).Scan(&maxPos)
	if err != nil {
		return nil, fmt.Errorf("failed to query max list position: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO lists (board_id, title, position) VALUES (?, ?, ?)", boardID, title, maxPos+1)
	if err != nil {
		return nil, fmt.Errorf("failed to insert list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}
	return s.ListByID(id)
}

// ListByID returns the list or nil when no such row exists.
func (s *DataService) ListByID(id int64) (*List, error) {
	var l List
	err := s.db.QueryRow(
		"SELECT id, board_id, title, position FROM lists WHERE id = ?", id).
		Scan(&l.ID, &l.BoardID, &l.Title, &l.Position)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}
	return &l, nil
}

// UpdateList applies the given title if present, then reads the row back.
// A missing row yields (nil, nil).
func (s *DataService) UpdateList(id int64, title *string) (*List, error) {
	_, err := s.db.Exec("UPDATE lists SET title = COALESCE(?, title) WHERE id = ?", title, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return s.ListByID(id)
}

// DeleteList removes the list. Cards and their join rows go with it.
func (s *DataService) DeleteList(id int64) error {
	if _, err := s.db.Exec("DELETE FROM lists WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// ReorderLists applies a batch of position updates in one transaction.
// The whole batch rolls back if any update fails or targets a missing list.
func (s *DataService) ReorderLists(order []ListPosition) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range order {
		res, err := tx.Exec("UPDATE lists SET position = ? WHERE id = ?", item.Position, item.ID)
		if err != nil {
			return fmt.Errorf("failed to update list position: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("list %d not found", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateCard inserts a card at the end of the list.
func (s *DataService) CreateCard(listID int64, title string) (*Card, error) {
	var maxPos int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(position), 0) FROM cards WHERE list_id = ?", listID).Scan(&maxPos)
	if err != nil {
		return nil, fmt.Errorf("failed to query max card position: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO cards (list_id, title, position) VALUES (?, ?, ?)", listID, title, maxPos+1)
	if err != nil {
		return nil, fmt.Errorf("failed to insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}
	return s.CardByID(id)
}

// CardByID returns the card or nil when no such row exists.
func (s *DataService) CardByID(id int64) (*Card, error) {
	var c Card
	err := s.db.QueryRow(`
		SELECT id, list_id, title, description, due_date, position, archived
		FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.DueDate, &c.Position, &c.Archived)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card: %w", err)
	}
	return &c, nil
}

// UpdateCard applies the provided fields; absent fields keep their stored
// values. A missing row yields (nil, nil).
func (s *DataService) UpdateCard(id int64, title, description, dueDate *string, archived *bool) (*Card, error) {
	_, err := s.db.Exec(`
		UPDATE cards SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			due_date = COALESCE(?, due_date),
			archived = COALESCE(?, archived)
		WHERE id = ?`, title, description, dueDate, archived, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return s.CardByID(id)
}

// DeleteCard removes the card and its label/member links and checklists.
func (s *DataService) DeleteCard(id int64) error {
	if _, err := s.db.Exec("DELETE FROM cards WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// ReorderCards applies a batch of list/position updates in one transaction,
// moving cards between lists when list_id changes. The whole batch rolls
// back if any update fails or targets a missing card.
func (s *DataService) ReorderCards(order []CardPosition) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range order {
		res, err := tx.Exec(
			"UPDATE cards SET list_id = ?, position = ? WHERE id = ?",
			item.ListID, item.Position, item.ID)
		if err != nil {
			return fmt.Errorf("failed to update card position: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("card %d not found", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AttachLabel adds a label to a card. Attaching the same label twice is a
// primary-key violation and surfaces as an error.
func (s *DataService) AttachLabel(cardID, labelID int64) error {
	if _, err := s.db.Exec(
		"INSERT INTO card_labels (card_id, label_id) VALUES (?, ?)", cardID, labelID); err != nil {
		return fmt.Errorf("failed to insert card label: %w", err)
	}
	return nil
}

// DetachLabel removes a label from a card.
func (s *DataService) DetachLabel(cardID, labelID int64) error {
	if _, err := s.db.Exec(
		"DELETE FROM card_labels WHERE card_id = ? AND label_id = ?", cardID, labelID); err != nil {
		return fmt.Errorf("failed to delete card label: %w", err)
	}
	return nil
}

// CreateChecklist inserts a checklist on a card.
func (s *DataService) CreateChecklist(cardID int64, title string) (*Checklist, error) {
	res, err := s.db.Exec(
		"INSERT INTO checklists (card_id, title) VALUES (?, ?)", cardID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to insert checklist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}

	var c Checklist
	err = s.db.QueryRow("SELECT id, card_id, title FROM checklists WHERE id = ?", id).
		Scan(&c.ID, &c.CardID, &c.Title)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist: %w", err)
	}
	return &c, nil
}

// CreateChecklistItem inserts an item at the end of the checklist.
func (s *DataService) CreateChecklistItem(checklistID int64, title string) (*ChecklistItem, error) {
	var maxPos int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(position), 0) FROM checklist_items WHERE checklist_id = ?",
		checklistID).Scan(&maxPos)
	if err != nil {
		return nil, fmt.Errorf("failed to query max item position: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO checklist_items (checklist_id, title, position) VALUES (?, ?, ?)",
		checklistID, title, maxPos+1)
	if err != nil {
		return nil, fmt.Errorf("failed to insert checklist item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}
	return s.ChecklistItemByID(id)
}

// ChecklistItemByID returns the item or nil when no such row exists.
func (s *DataService) ChecklistItemByID(id int64) (*ChecklistItem, error) {
	var it ChecklistItem
	err := s.db.QueryRow(`
		SELECT id, checklist_id, title, is_complete, position
		FROM checklist_items WHERE id = ?`, id).
		Scan(&it.ID, &it.ChecklistID, &it.Title, &it.IsComplete, &it.Position)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist item: %w", err)
	}
	return &it, nil
}

// UpdateChecklistItem applies the provided fields; absent fields keep their
// stored values. A missing row yields (nil, nil).
func (s *DataService) UpdateChecklistItem(id int64, title *string, isComplete *bool, position *int) (*ChecklistItem, error) {
	_, err := s.db.Exec(`
		UPDATE checklist_items SET
			title = COALESCE(?, title),
			is_complete = COALESCE(?, is_complete),
			position = COALESCE(?, position)
		WHERE id = ?`, title, isComplete, position, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}
	return s.ChecklistItemByID(id)
}

// DeleteChecklistItem removes the item.
func (s *DataService) DeleteChecklistItem(id int64) error {
	if _, err := s.db.Exec("DELETE FROM checklist_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return nil
}

// AssignMember adds a user to a card.
func (s *DataService) AssignMember(cardID, userID int64) error {
	if _, err := s.db.Exec(
		"INSERT INTO card_members (card_id, user_id) VALUES (?, ?)", cardID, userID); err != nil {
		return fmt.Errorf("failed to insert card member: %w", err)
	}
	return nil
}

// UnassignMember removes a user from a card.
func (s *DataService) UnassignMember(cardID, userID int64) error {
	if _, err := s.db.Exec(
		"DELETE FROM card_members WHERE card_id = ? AND user_id = ?", cardID, userID); err != nil {
		return fmt.Errorf("failed to delete card member: %w", err)
	}
	return nil
}

// CardFilter narrows a board card search. Zero values mean "no filter".
type CardFilter struct {
	Query     string
	LabelID   string
	MemberID  string
	DueBefore string
	DueAfter  string
}

// SearchCards returns the board's non-archived cards matching the filter,
// due date ascending with null due dates last.
func (s *DataService) SearchCards(boardID int64, f CardFilter) ([]Card, error) {
	query := `
		SELECT c.id, c.list_id, c.title, c.description, c.due_date, c.position, c.archived
		FROM cards c JOIN lists l ON c.list_id = l.id
		WHERE l.board_id = ? AND c.archived = 0`
	args := []any{boardID}

	if f.Query != "" {
		query += " AND c.title LIKE ?"
		args = append(args, "%"+f.Query+"%")
	}
	if f.LabelID != "" {
		query += " AND EXISTS (SELECT 1 FROM card_labels cl WHERE cl.card_id = c.id AND cl.label_id = ?)"
		args = append(args, f.LabelID)
	}
	if f.MemberID != "" {
		query += " AND EXISTS (SELECT 1 FROM card_members cm WHERE cm.card_id = c.id AND cm.user_id = ?)"
		args = append(args, f.MemberID)
	}
	if f.DueBefore != "" {
		query += " AND c.due_date <= ?"
		args = append(args, f.DueBefore)
	}
	if f.DueAfter != "" {
		query += " AND c.due_date >= ?"
		args = append(args, f.DueAfter)
	}

	query += " ORDER BY c.due_date IS NULL, c.due_date"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}

func scanCards(rows *sql.Rows) ([]Card, error) {
	cards := []Card{}
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.DueDate, &c.Position, &c.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
