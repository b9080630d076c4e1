package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bloghub-dev/bloghub/db"
	"github.com/bloghub-dev/bloghub/internal/auth"
	"github.com/bloghub-dev/bloghub/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []fieldError    `json:"errors"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWT(); err != nil {
		t.Fatalf("failed to init JWT: %v", err)
	}

	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return router.New(database)
}

// doJSON performs a request against the router. A non-empty token is sent
// as a Bearer header.
func doJSON(t *testing.T, r *gin.Engine, method string, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope

	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope from %q: %v", w.Body.String(), err)
	}

	return w, env
}

// registerUser registers a user and returns its id and access token.
func registerUser(t *testing.T, r *gin.Engine, username string, email string, password string) (uint, string) {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/users/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d, want 201 (body: %s)", username, w.Code, w.Body.String())
	}

	var data struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}

	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode register data: %v", err)
	}

	if data.AccessToken == "" {
		t.Fatal("register returned an empty access token")
	}

	return data.User.ID, data.AccessToken
}

// createPost creates a post as the given user and returns its id.
func createPost(t *testing.T, r *gin.Engine, token string, title string, content string) uint {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/post/addpost", map[string]string{
		"title":   title,
		"content": content,
	}, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("create post: got status %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	var post struct {
		ID uint `json:"id"`
	}

	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("failed to decode post data: %v", err)
	}

	return post.ID
}

// createComment creates a comment on a post and returns its id.
func createComment(t *testing.T, r *gin.Engine, token string, postID uint, content string) uint {
	t.Helper()

	path := fmt.Sprintf("/api/comment/addcomment/%d", postID)

	w, env := doJSON(t, r, http.MethodPost, path, map[string]string{"content": content}, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("create comment: got status %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	var comment struct {
		ID uint `json:"id"`
	}

	if err := json.Unmarshal(env.Data, &comment); err != nil {
		t.Fatalf("failed to decode comment data: %v", err)
	}

	return comment.ID
}
