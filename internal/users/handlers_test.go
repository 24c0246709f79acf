package users_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/CovertCollective/CC-Backend/internal/store"
	"github.com/CovertCollective/CC-Backend/internal/token"
	"github.com/CovertCollective/CC-Backend/internal/users"
)

var testSecret = []byte("users-test-secret")

// newTestServer mounts the user routes over a fresh in-memory collection
// and returns the server, the collection and a token service for minting
// caller identities.
func newTestServer(t *testing.T) (*httptest.Server, *store.Collection[users.User], *token.Service) {
	t.Helper()

	userStore := store.NewCollection[users.User](store.NewMemBackend(), "users")
	tokens := token.NewService(testSecret)
	handler := users.NewHandler(userStore)

	r := chi.NewRouter()
	r.Mount("/api/user", handler.SetupProfileRoutes(tokens))
	r.Mount("/api/users", handler.SetupRoutes(tokens))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, userStore, tokens
}

func mintToken(t *testing.T, tokens *token.Service, id int, isAdmin bool) string {
	t.Helper()
	signed, err := tokens.Issue(id, fmt.Sprintf("caller-%d@test.local", id), isAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

// doJSON performs an authenticated request with an optional JSON body and
// decodes the JSON response into out (which may be nil).
func doJSON(t *testing.T, method, url, bearer string, payload interface{}, out interface{}) int {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return res.StatusCode
}

func seedUser(t *testing.T, col *store.Collection[users.User], u users.User) {
	t.Helper()
	err := col.Update(func(records []users.User) ([]users.User, error) {
		return append(records, u), nil
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

// TestListUsers_StripsPasswords verifies no password digest appears in the
// admin list response.
func TestListUsers_StripsPasswords(t *testing.T) {
	server, userStore, tokens := newTestServer(t)
	seedUser(t, userStore, users.User{ID: 1, Email: "a@test.local", Password: "$2a$10$digest"})
	seedUser(t, userStore, users.User{ID: 2, Email: "b@test.local", Password: "$2a$10$digest"})

	var list []map[string]interface{}
	status := doJSON(t, http.MethodGet, server.URL+"/api/users", mintToken(t, tokens, 1, true), nil, &list)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	for _, u := range list {
		if _, present := u["password"]; present {
			t.Errorf("password digest leaked for user %v", u["email"])
		}
	}
}

// TestCreateUser covers explicit creation: defaults, the duplicate-email
// conflict and required-field validation.
func TestCreateUser(t *testing.T) {
	server, _, tokens := newTestServer(t)
	admin := mintToken(t, tokens, 1, true)

	var created map[string]interface{}
	status := doJSON(t, http.MethodPost, server.URL+"/api/users", admin, map[string]interface{}{
		"email":    "recruit@test.local",
		"password": "pw",
		"codename": "Agent-MANUAL",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, created)
	}
	if created["rank"] != "Initiate" || created["status"] != "Active" {
		t.Errorf("expected default rank/status, got %v/%v", created["rank"], created["status"])
	}
	if created["goatLevel"] != float64(50) || created["rizz"] != float64(50) {
		t.Errorf("expected default stats of 50, got %v/%v", created["goatLevel"], created["rizz"])
	}
	if _, present := created["password"]; present {
		t.Error("password digest leaked in create response")
	}

	var dup map[string]interface{}
	status = doJSON(t, http.MethodPost, server.URL+"/api/users", admin, map[string]interface{}{
		"email":    "recruit@test.local",
		"password": "pw",
		"codename": "Agent-OTHER",
	}, &dup)
	if status != http.StatusBadRequest || dup["error"] != "User already exists" {
		t.Errorf("expected 400 User already exists, got %d (%v)", status, dup["error"])
	}

	var missing map[string]interface{}
	status = doJSON(t, http.MethodPost, server.URL+"/api/users", admin, map[string]interface{}{
		"email": "incomplete@test.local",
	}, &missing)
	if status != http.StatusBadRequest || missing["error"] != "Missing required fields" {
		t.Errorf("expected 400 Missing required fields, got %d (%v)", status, missing["error"])
	}
}

// TestCreateUser_IDAllocation verifies contiguous ids for sequential
// creation and no reuse after a deletion.
func TestCreateUser_IDAllocation(t *testing.T) {
	server, _, tokens := newTestServer(t)
	admin := mintToken(t, tokens, 1, true)

	for i := 1; i <= 3; i++ {
		var created map[string]interface{}
		status := doJSON(t, http.MethodPost, server.URL+"/api/users", admin, map[string]interface{}{
			"email":    fmt.Sprintf("agent%d@test.local", i),
			"password": "pw",
			"codename": fmt.Sprintf("Agent-%d", i),
		}, &created)
		if status != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i, status)
		}
		if created["id"] != float64(i) {
			t.Errorf("create %d: expected id %d, got %v", i, i, created["id"])
		}
	}

	status := doJSON(t, http.MethodDelete, server.URL+"/api/users/2", admin, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}

	var created map[string]interface{}
	doJSON(t, http.MethodPost, server.URL+"/api/users", admin, map[string]interface{}{
		"email":    "after-gap@test.local",
		"password": "pw",
		"codename": "Agent-GAP",
	}, &created)
	if created["id"] != float64(4) {
		t.Errorf("expected id 4 after deleting id 2, got %v", created["id"])
	}
}

// TestUpdateUser verifies the full-overwrite update semantics and the 404
// for an unknown id.
func TestUpdateUser(t *testing.T) {
	server, userStore, tokens := newTestServer(t)
	admin := mintToken(t, tokens, 1, true)
	seedUser(t, userStore, users.User{
		ID: 5, Email: "promote@test.local", Password: "$2a$10$digest",
		Codename: "Agent-OLD", Rank: "Initiate", GoatLevel: 30, Rizz: 40, Status: "Active",
	})

	var updated map[string]interface{}
	status := doJSON(t, http.MethodPut, server.URL+"/api/users/5", admin, map[string]interface{}{
		"codename":  "Agent-NEW",
		"rank":      "Operative",
		"goatLevel": 80,
		"rizz":      90,
		"status":    "Active",
		"isAdmin":   true,
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if updated["codename"] != "Agent-NEW" || updated["rank"] != "Operative" || updated["isAdmin"] != true {
		t.Errorf("unexpected updated record: %v", updated)
	}
	if updated["updatedAt"] == nil {
		t.Error("expected updatedAt to be stamped")
	}
	if updated["email"] != "promote@test.local" {
		t.Errorf("email must not change on update, got %v", updated["email"])
	}

	records, _ := userStore.Load()
	if records[0].Password != "$2a$10$digest" {
		t.Error("password digest must survive an update")
	}

	var body map[string]interface{}
	status = doJSON(t, http.MethodPut, server.URL+"/api/users/999", admin, map[string]interface{}{}, &body)
	if status != http.StatusNotFound || body["error"] != "User not found" {
		t.Errorf("expected 404 User not found, got %d (%v)", status, body["error"])
	}
}

// TestDeleteUser_NotFound verifies the 404 and that a failed delete leaves
// the collection untouched.
func TestDeleteUser_NotFound(t *testing.T) {
	server, userStore, tokens := newTestServer(t)
	admin := mintToken(t, tokens, 1, true)
	seedUser(t, userStore, users.User{ID: 1, Email: "stay@test.local", Codename: "Agent-STAY"})

	var body map[string]interface{}
	status := doJSON(t, http.MethodDelete, server.URL+"/api/users/999", admin, nil, &body)
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
	if body["error"] != "User not found" {
		t.Errorf("expected User not found, got %v", body["error"])
	}

	records, err := userStore.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].Email != "stay@test.local" {
		t.Errorf("expected collection unchanged, got %+v", records)
	}
}

// TestUsersRoutes_RequireAdmin verifies every management route rejects a
// verified non-admin caller with a 403.
func TestUsersRoutes_RequireAdmin(t *testing.T) {
	server, _, tokens := newTestServer(t)
	member := mintToken(t, tokens, 2, false)

	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
	}
	for _, route := range routes {
		status := doJSON(t, route.method, server.URL+route.path, member, map[string]interface{}{}, nil)
		if status != http.StatusForbidden {
			t.Errorf("%s %s: expected 403 for non-admin, got %d", route.method, route.path, status)
		}
	}
}

// TestBootstrap verifies admin seeding on an empty store and that it is a
// no-op when users already exist.
func TestBootstrap(t *testing.T) {
	userStore := store.NewCollection[users.User](store.NewMemBackend(), "users")

	if err := users.Bootstrap(userStore, "founder@test.local", "secret-pw"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	records, err := userStore.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 bootstrap user, got %d", len(records))
	}
	admin := records[0]
	if admin.ID != 1 || !admin.IsAdmin || admin.Rank != "The Almighty" || admin.Codename != "The Founder" {
		t.Errorf("unexpected bootstrap admin: %+v", admin)
	}
	if admin.Password == "secret-pw" || admin.Password == "" {
		t.Error("bootstrap password must be stored hashed")
	}

	if err := users.Bootstrap(userStore, "founder@test.local", "secret-pw"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	records, _ = userStore.Load()
	if len(records) != 1 {
		t.Errorf("bootstrap must be a no-op on a non-empty store, got %d users", len(records))
	}
}
