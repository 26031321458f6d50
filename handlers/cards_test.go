package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/kanbanhq/kanban-api/database"
)

func TestCreateCardRequiresTitle(t *testing.T) {
	h, db := newTestServer(t)
	_, listID, _ := seedBoardListCard(t, h)

	rr := doRequest(t, h, "POST", fmt.Sprintf("/api/lists/%d/cards", listID), map[string]string{"title": ""})
	wantStatus(t, rr, http.StatusBadRequest)

	if n := countRows(t, db, "SELECT COUNT(*) FROM cards"); n != 1 {
		t.Fatalf("cards = %d, want only the seeded one", n)
	}
}

func TestCardPositionsScopedToList(t *testing.T) {
	h, _ := newTestServer(t)
	boardID, listID, _ := seedBoardListCard(t, h) // seeds a card at position 1

	var second database.Card
	rr := doRequest(t, h, "POST", fmt.Sprintf("/api/lists/%d/cards", listID), map[string]string{"title": "Second"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &second)
	if second.Position != 2 {
		t.Fatalf("second card position = %d, want 2", second.Position)
	}

	// A fresh list starts its own position sequence.
	var other database.List
	rr = doRequest(t, h, "POST", fmt.Sprintf("/api/boards/%d/lists", boardID), map[string]string{"title": "Doing"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &other)

	var first database.Card
	rr = doRequest(t, h, "POST", fmt.Sprintf("/api/lists/%d/cards", other.ID), map[string]string{"title": "Elsewhere"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &first)
	if first.Position != 1 {
		t.Fatalf("card position in new list = %d, want 1", first.Position)
	}
}

func TestUpdateCardPartial(t *testing.T) {
	h, _ := newTestServer(t)
	_, _, cardID := seedBoardListCard(t, h)

	rr := doRequest(t, h, "PUT", fmt.Sprintf("/api/cards/%d", cardID), map[string]string{
		"description": "details",
		"due_date":    "2026-02-01",
	})
	wantStatus(t, rr, http.StatusOK)

	// A title-only update keeps description, due date, and archived flag.
	var card database.Card
	rr = doRequest(t, h, "PUT", fmt.Sprintf("/api/cards/%d", cardID), map[string]string{"title": "Renamed"})
	wantStatus(t, rr, http.StatusOK)
	decodeBody(t, rr, &card)

	if card.Title != "Renamed" {
		t.Fatalf("title = %q", card.Title)
	}
	if card.Description == nil || *card.Description != "details" {
		t.Fatalf("description = %v, want preserved", card.Description)
	}
	if card.DueDate == nil || *card.DueDate != "2026-02-01" {
		t.Fatalf("due_date = %v, want preserved", card.DueDate)
	}
	if card.Archived {
		t.Fatalf("archived flipped without being supplied")
	}

	rr = doRequest(t, h, "PUT", fmt.Sprintf("/api/cards/%d", cardID), map[string]any{"archived": true})
	wantStatus(t, rr, http.StatusOK)
	decodeBody(t, rr, &card)
	if !card.Archived {
		t.Fatalf("archived = false after archiving")
	}

	// And archived stays set across later partial updates.
	rr = doRequest(t, h, "PUT", fmt.Sprintf("/api/cards/%d", cardID), map[string]string{"title": "Again"})
	wantStatus(t, rr, http.StatusOK)
	decodeBody(t, rr, &card)
	if !card.Archived {
		t.Fatalf("archived lost on unrelated update")
	}
}

func TestDeleteCardCascades(t *testing.T) {
	h, db := newTestServer(t)
	boardID, _, cardID := seedBoardListCard(t, h)

	labelID := seedLabel(t, db, boardID, "bug", "red")
	rr := doRequest(t, h, "POST", fmt.Sprintf("/api/cards/%d/labels/%d", cardID, labelID), nil)
	wantStatus(t, rr, http.StatusCreated)
	rr = doRequest(t, h, "POST", fmt.Sprintf("/api/cards/%d/checklists", cardID), map[string]string{"title": "Steps"})
	wantStatus(t, rr, http.StatusCreated)

	rr = doRequest(t, h, "DELETE", fmt.Sprintf("/api/cards/%d", cardID), nil)
	wantStatus(t, rr, http.StatusNoContent)

	if n := countRows(t, db, "SELECT COUNT(*) FROM card_labels"); n != 0 {
		t.Fatalf("card_labels left = %d", n)
	}
	if n := countRows(t, db, "SELECT COUNT(*) FROM checklists"); n != 0 {
		t.Fatalf("checklists left = %d", n)
	}
}

func TestReorderCardsMovesBetweenLists(t *testing.T) {
	h, db := newTestServer(t)
	boardID, _, cardID := seedBoardListCard(t, h)

	var other database.List
	rr := doRequest(t, h, "POST", fmt.Sprintf("/api/boards/%d/lists", boardID), map[string]string{"title": "Done"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &other)

	rr = doRequest(t, h, "POST", "/api/cards/reorder", map[string]any{
		"cardOrder": []map[string]any{
			{"id": cardID, "list_id": other.ID, "position": 1},
		},
	})
	wantStatus(t, rr, http.StatusNoContent)

	var gotList int64
	if err := db.QueryRow("SELECT list_id FROM cards WHERE id = ?", cardID).Scan(&gotList); err != nil {
		t.Fatalf("query card: %v", err)
	}
	if gotList != other.ID {
		t.Fatalf("card list_id = %d, want %d", gotList, other.ID)
	}
}

func TestReorderCardsMalformedPayload(t *testing.T) {
	h, _ := newTestServer(t)
	seedBoardListCard(t, h)

	rr := doRequest(t, h, "POST", "/api/cards/reorder", `{"cardOrder":{"id":1}}`)
	wantStatus(t, rr, http.StatusBadRequest)
}

func TestReorderCardsRollsBackOnUnknownID(t *testing.T) {
	h, db := newTestServer(t)
	_, listID, cardID := seedBoardListCard(t, h)

	rr := doRequest(t, h, "POST", "/api/cards/reorder", map[string]any{
		"cardOrder": []map[string]any{
			{"id": cardID, "list_id": listID, "position": 7},
			{"id": 999, "list_id": listID, "position": 1},
		},
	})
	wantStatus(t, rr, http.StatusInternalServerError)

	var pos int
	if err := db.QueryRow("SELECT position FROM cards WHERE id = ?", cardID).Scan(&pos); err != nil {
		t.Fatalf("query card: %v", err)
	}
	if pos != 1 {
		t.Fatalf("position = %d, want rolled back to 1", pos)
	}
}

func TestAttachLabelTwiceFails(t *testing.T) {
	h, db := newTestServer(t)
	boardID, _, cardID := seedBoardListCard(t, h)
	labelID := seedLabel(t, db, boardID, "bug", "red")

	path := fmt.Sprintf("/api/cards/%d/labels/%d", cardID, labelID)
	rr := doRequest(t, h, "POST", path, nil)
	wantStatus(t, rr, http.StatusCreated)

	// Duplicate attach is a key violation, surfaced as an operational error.
	rr = doRequest(t, h, "POST", path, nil)
	wantStatus(t, rr, http.StatusInternalServerError)

	rr = doRequest(t, h, "DELETE", path, nil)
	wantStatus(t, rr, http.StatusNoContent)
	if n := countRows(t, db, "SELECT COUNT(*) FROM card_labels"); n != 0 {
		t.Fatalf("card_labels left = %d", n)
	}
}

func TestAssignAndUnassignMember(t *testing.T) {
	h, db := newTestServer(t)
	_, _, cardID := seedBoardListCard(t, h)
	userID := seedUser(t, db, "Ada", "ada@example.com")

	path := fmt.Sprintf("/api/cards/%d/members/%d", cardID, userID)
	rr := doRequest(t, h, "POST", path, nil)
	wantStatus(t, rr, http.StatusCreated)
	if n := countRows(t, db, "SELECT COUNT(*) FROM card_members"); n != 1 {
		t.Fatalf("card_members = %d, want 1", n)
	}

	rr = doRequest(t, h, "DELETE", path, nil)
	wantStatus(t, rr, http.StatusNoContent)
	if n := countRows(t, db, "SELECT COUNT(*) FROM card_members"); n != 0 {
		t.Fatalf("card_members = %d, want 0", n)
	}
}
