// internal/server/server_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/finassist/internal/assist"
	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/store"
	"github.com/user/finassist/internal/store/storetest"
	"github.com/user/finassist/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(storetest.SeedDir(t), store.WithClock(storetest.Clock()))
	if err != nil {
		t.Fatal(err)
	}
	contexts := session.NewManager()
	srv := New(st, assist.New(st, contexts), session.NewGenerator(st, contexts, true))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestChat(t *testing.T) {
	ts := newTestServer(t)

	payload := `{"user_id":"usr_002","message":"filter invoices for vendor='IndiSky', status=failed"}`
	resp, err := http.Post(ts.URL+"/chat", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body types.Response
	decodeBody(t, resp, &body)
	if !strings.Contains(body.Content, "I found 3 invoices from IndiSky") {
		t.Errorf("content = %q", body.Content)
	}
	if body.DataShown == nil || len(body.DataShown.InvoiceIDs) != 3 {
		t.Errorf("data_shown = %+v", body.DataShown)
	}
}

func TestChatValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name    string
		payload string
		status  int
	}{
		{"unknown user", `{"user_id":"usr_999","message":"hello"}`, http.StatusNotFound},
		{"missing message", `{"user_id":"usr_002"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/chat", "application/json", strings.NewReader(tc.payload))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}

func TestWelcomeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/welcome?user_id=usr_002")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body session.Welcome
	decodeBody(t, resp, &body)
	if !body.ShowUpdates || !strings.Contains(body.Content, "Welcome back, Priya!") {
		t.Errorf("welcome = %+v", body)
	}

	resp, err = http.Get(ts.URL + "/api/welcome")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing user_id: status = %d", resp.StatusCode)
	}
}

func TestTicketsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/tickets?user_id=usr_002&status=resolved")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var tickets []types.Ticket
	decodeBody(t, resp, &tickets)
	if len(tickets) != 1 || tickets[0].ID != "TKT-2024-X7Q" {
		t.Errorf("tickets = %+v", tickets)
	}

	// Report viewers only see their own tickets.
	resp, err = http.Get(ts.URL + "/api/tickets?user_id=usr_003")
	if err != nil {
		t.Fatal(err)
	}
	var viewerTickets []types.Ticket
	decodeBody(t, resp, &viewerTickets)
	if len(viewerTickets) != 0 {
		t.Errorf("viewer tickets = %+v", viewerTickets)
	}
}

func TestContextEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/context?user_id=usr_003")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["summary"] != "No active context" {
		t.Errorf("summary = %q", body["summary"])
	}
}

func TestUsersAndActionsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/users")
	if err != nil {
		t.Fatal(err)
	}
	var users []types.User
	decodeBody(t, resp, &users)
	if len(users) != 4 {
		t.Errorf("users = %d, want 4", len(users))
	}

	resp, err = http.Get(ts.URL + "/api/actions?user_id=usr_003")
	if err != nil {
		t.Fatal(err)
	}
	var actions []map[string]any
	decodeBody(t, resp, &actions)
	if len(actions) != 2 {
		t.Errorf("viewer actions = %+v", actions)
	}

	resp, err = http.Get(ts.URL + "/api/actions?user_id=usr_999")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown user: status = %d", resp.StatusCode)
	}
}
