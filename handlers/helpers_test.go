package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kanbanhq/kanban-api/database"
	"github.com/kanbanhq/kanban-api/handlers"
)

// newTestServer builds the real router over a fresh in-memory database.
// The raw handle is returned too, for seeding rows the API has no
// endpoint for (labels, users) and for asserting on stored state.
func newTestServer(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), 1)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return handlers.NewRouter(database.NewDataService(db)), db
}

// doRequest performs a request against the router. A string body is sent
// verbatim; anything else is marshaled to JSON.
func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d (body %q)", rr.Code, want, rr.Body.String())
	}
}

// seedBoardListCard creates a board with one list and one card through the
// API and returns their ids.
func seedBoardListCard(t *testing.T, h http.Handler) (boardID, listID, cardID int64) {
	t.Helper()

	var board database.Board
	rr := doRequest(t, h, "POST", "/api/boards", map[string]string{"title": "Board"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &board)

	var list database.List
	rr = doRequest(t, h, "POST", fmt.Sprintf("/api/boards/%d/lists", board.ID), map[string]string{"title": "List"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &list)

	var card database.Card
	rr = doRequest(t, h, "POST", fmt.Sprintf("/api/lists/%d/cards", list.ID), map[string]string{"title": "Card"})
	wantStatus(t, rr, http.StatusCreated)
	decodeBody(t, rr, &card)

	return board.ID, list.ID, card.ID
}

func seedLabel(t *testing.T, db *sql.DB, boardID int64, name, color string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO labels (board_id, name, color) VALUES (?, ?, ?)", boardID, name, color)
	if err != nil {
		t.Fatalf("seed label: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedUser(t *testing.T, db *sql.DB, name, email string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO users (name, email) VALUES (?, ?)", name, email)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query %q: %v", query, err)
	}
	return n
}
