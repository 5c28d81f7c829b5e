package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chotta-app/chotta/internal/invite"
	"github.com/chotta-app/chotta/internal/service"
	"github.com/chotta-app/chotta/internal/storage/sqlite"
)

// setupTestServer creates a test server over a temp SQLite database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chotta-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	a := New(
		service.NewRoomService(store, 14*24*time.Hour),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		invite.NewManager("test-secret"),
	)

	server := httptest.NewServer(a.Handler())
	t.Cleanup(server.Close)
	return server
}

// doJSON performs a request with a JSON body and decodes the JSON response.
func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp
}

func TestRoomFlow(t *testing.T) {
	server := setupTestServer(t)

	// Create a room
	var room struct {
		ID              string `json:"id"`
		DefaultCurrency string `json:"default_currency"`
		Expired         bool   `json:"expired"`
	}
	resp := doJSON(t, "POST", server.URL+"/api/rooms",
		map[string]string{"name": "Trip", "default_currency": "EUR"}, &room)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create room status = %d, want 201", resp.StatusCode)
	}
	if room.ID == "" || room.Expired {
		t.Fatalf("unexpected room: %+v", room)
	}

	// Add participants
	addParticipant := func(name string) string {
		t.Helper()
		var p struct {
			ID string `json:"id"`
		}
		resp := doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/participants",
			map[string]string{"name": name}, &p)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add participant status = %d, want 201", resp.StatusCode)
		}
		return p.ID
	}
	alice := addParticipant("Alice")
	addParticipant("Bob")
	addParticipant("Carol")

	// Alice pays 30, split equally
	resp = doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/expenses", map[string]interface{}{
		"title":        "Dinner",
		"paid_by":      alice,
		"amount":       30,
		"distribution": "equal",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add expense status = %d, want 201", resp.StatusCode)
	}

	// Balances: Alice +20, Bob -10, Carol -10
	var balances map[string]float64
	resp = doJSON(t, "GET", server.URL+"/api/rooms/"+room.ID+"/balances", nil, &balances)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("balances status = %d, want 200", resp.StatusCode)
	}
	if math.Abs(balances[alice]-20) > 0.001 {
		t.Errorf("Alice balance = %v, want 20", balances[alice])
	}

	// Settlements: two payments of 10 to Alice
	var settlements []struct {
		FromID string  `json:"from"`
		ToID   string  `json:"to"`
		Amount float64 `json:"amount"`
	}
	resp = doJSON(t, "GET", server.URL+"/api/rooms/"+room.ID+"/settlements", nil, &settlements)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settlements status = %d, want 200", resp.StatusCode)
	}
	if len(settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(settlements))
	}

	// Confirm the first suggestion
	resp = doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/settlements/confirm",
		settlements[0], nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("confirm status = %d, want 201", resp.StatusCode)
	}

	resp = doJSON(t, "GET", server.URL+"/api/rooms/"+room.ID+"/settlements", nil, &settlements)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settlements status = %d, want 200", resp.StatusCode)
	}
	if len(settlements) != 1 {
		t.Fatalf("expected 1 settlement after confirm, got %d", len(settlements))
	}

	// Stats reflect the history
	var stats struct {
		TotalExpenses  float64 `json:"total_expenses"`
		TotalTransfers float64 `json:"total_transfers"`
	}
	resp = doJSON(t, "GET", server.URL+"/api/rooms/"+room.ID+"/stats", nil, &stats)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", resp.StatusCode)
	}
	if math.Abs(stats.TotalExpenses-30) > 0.001 {
		t.Errorf("TotalExpenses = %v, want 30", stats.TotalExpenses)
	}
	if math.Abs(stats.TotalTransfers-10) > 0.001 {
		t.Errorf("TotalTransfers = %v, want 10", stats.TotalTransfers)
	}
}

func TestInviteFlow(t *testing.T) {
	server := setupTestServer(t)

	var room struct {
		ID string `json:"id"`
	}
	doJSON(t, "POST", server.URL+"/api/rooms", map[string]string{"name": "Invited"}, &room)

	var created struct {
		Token string `json:"token"`
	}
	resp := doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/invite", nil, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("invite status = %d, want 201", resp.StatusCode)
	}
	if created.Token == "" {
		t.Fatal("expected a token")
	}

	var joined struct {
		ID string `json:"id"`
	}
	resp = doJSON(t, "GET", server.URL+"/api/join/"+created.Token, nil, &joined)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join status = %d, want 200", resp.StatusCode)
	}
	if joined.ID != room.ID {
		t.Errorf("joined room = %s, want %s", joined.ID, room.ID)
	}

	// A forged token is rejected
	resp = doJSON(t, "GET", server.URL+"/api/join/not.a.token", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("forged join status = %d, want 404", resp.StatusCode)
	}
}

func TestErrorMapping(t *testing.T) {
	server := setupTestServer(t)

	// Unknown room
	resp := doJSON(t, "GET", server.URL+"/api/rooms/nope", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown room status = %d, want 404", resp.StatusCode)
	}

	var room struct {
		ID string `json:"id"`
	}
	doJSON(t, "POST", server.URL+"/api/rooms", map[string]string{"name": "Errors"}, &room)

	// Malformed JSON body
	req, _ := http.NewRequest("POST", server.URL+"/api/rooms/"+room.ID+"/participants",
		bytes.NewBufferString("{not json"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", resp.StatusCode)
	}

	// JSON has no NaN literal, so a NaN amount cannot even be submitted;
	// a negative amount exercises the validation path instead.
	var p struct {
		ID string `json:"id"`
	}
	doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/participants", map[string]string{"name": "Alice"}, &p)
	resp = doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/expenses", map[string]interface{}{
		"title": "Bad", "paid_by": p.ID, "amount": -5, "distribution": "equal",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative amount status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
}

func TestPasscodeProtection(t *testing.T) {
	server := setupTestServer(t)

	var room struct {
		ID string `json:"id"`
	}
	doJSON(t, "POST", server.URL+"/api/rooms", map[string]string{"name": "Locked"}, &room)

	// Set a passcode
	resp := doJSON(t, "PUT", server.URL+"/api/rooms/"+room.ID,
		map[string]string{"new_passcode": "sesam"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set passcode status = %d, want 200", resp.StatusCode)
	}

	// Extension without the passcode is forbidden
	resp = doJSON(t, "POST", server.URL+"/api/rooms/"+room.ID+"/extend", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("extend without passcode status = %d, want 403", resp.StatusCode)
	}

	// With the passcode it passes
	req, _ := http.NewRequest("POST", server.URL+"/api/rooms/"+room.ID+"/extend", nil)
	req.Header.Set(passcodeHeader, "sesam")
	withPass, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("extend failed: %v", err)
	}
	withPass.Body.Close()
	if withPass.StatusCode != http.StatusOK {
		t.Errorf("extend with passcode status = %d, want 200", withPass.StatusCode)
	}
}
