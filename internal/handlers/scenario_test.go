package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestBloggingFlow walks the full lifecycle: register, conflicting
// re-register, cookie login, authorized post creation, a second user's
// rejected mutation, and owner deletion.
func TestBloggingFlow(t *testing.T) {
	r := setupRouter(t)

	aliceID, _ := registerUser(t, r, "alice123", "a@x.com", "secret1")

	// same username with a different email conflicts
	w, _ := doJSON(t, r, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice123",
		"email":    "a2@x.com",
		"password": "secret1",
	}, "")

	if w.Code != http.StatusConflict {
		t.Fatalf("re-register: got status %d, want 409", w.Code)
	}

	// login by email sets the session cookie
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login: got status %d, want 200", w.Code)
	}

	var sessionCookie *http.Cookie

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "accessToken" {
			sessionCookie = cookie
		}
	}

	if sessionCookie == nil {
		t.Fatal("login did not set the accessToken cookie")
	}

	// create a post using the cookie
	body, _ := json.Marshal(map[string]string{"title": "Hi there", "content": "Body text"})

	req := httptest.NewRequest(http.MethodPost, "/api/post/addpost", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create post via cookie: got status %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var env envelope

	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}

	var post postPayload

	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("failed to decode post: %v", err)
	}

	if post.AuthorID != aliceID {
		t.Errorf("author_id = %d, want %d", post.AuthorID, aliceID)
	}

	// a second user's session cannot touch the post
	_, bobToken := registerUser(t, r, "bob456", "b@x.com", "secret2")

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/post/updatepost/%d", post.ID), map[string]string{
		"content": "Hijacked body",
	}, bobToken)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("second user update: got status %d, want 401", w.Code)
	}

	// owner deletes; the post is gone afterwards
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/post/deletepost/%d", post.ID), nil)
	req.AddCookie(sessionCookie)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: got status %d, want 200", rec.Code)
	}

	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/post/getpost/%d", post.ID), nil, "")

	if w.Code != http.StatusOK || string(env.Data) != "null" {
		t.Errorf("get after delete: status %d data %s, want 200 with null", w.Code, env.Data)
	}
}
