package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bloghub-dev/bloghub/internal/apierr"
	"github.com/bloghub-dev/bloghub/internal/models"
	"github.com/bloghub-dev/bloghub/internal/response"
	"github.com/bloghub-dev/bloghub/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostHandler struct {
	DB *gorm.DB
}

func NewPostHandler(database *gorm.DB) *PostHandler {
	return &PostHandler{DB: database}
}

func toPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Slug:      post.Slug,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// validatePostFields checks supplied fields after trimming. On create both
// fields are required; on update only supplied fields are checked.
func validatePostFields(title string, content string, partial bool) []apierr.FieldError {
	var fields []apierr.FieldError

	if !partial || title != "" {
		if utf8.RuneCountInString(title) < 3 {
			fields = append(fields, apierr.FieldError{Field: "title", Message: "Enter a valid title"})
		}
	}

	if !partial || content != "" {
		if utf8.RuneCountInString(content) < 4 {
			fields = append(fields, apierr.FieldError{Field: "content", Message: "Enter a valid content"})
		}
	}

	return fields
}

// List returns every post, unfiltered and unpaginated.
func (h *PostHandler) List(ctx *gin.Context) {
	var posts []models.Post

	if err := h.DB.Find(&posts).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to fetch posts", err))
		return
	}

	payload := make([]PostResponse, 0, len(posts))

	for _, post := range posts {
		payload = append(payload, toPostResponse(post))
	}

	response.JSON(ctx, http.StatusOK, payload, "All posts fetched successfully")
}

// Get returns the post by identifier. A missing post yields 200 with null
// data; unlike the mutation paths the read path raises no not-found error.
func (h *PostHandler) Get(ctx *gin.Context) {
	postID, ok := paramID(ctx, "postId")

	if !ok {
		response.JSON(ctx, http.StatusOK, nil, "Post fetched successfully")
		return
	}

	var post models.Post

	if err := h.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.JSON(ctx, http.StatusOK, nil, "Post fetched successfully")
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch post", err))
		return
	}

	response.JSON(ctx, http.StatusOK, toPostResponse(post), "Post fetched successfully")
}

func (h *PostHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("You must be logged in to add a post"))
		return
	}

	var body PostRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.Error(ctx, apierr.BadRequest("Invalid request body"))
		return
	}

	title := strings.TrimSpace(body.Title)
	content := strings.TrimSpace(body.Content)

	if fields := validatePostFields(title, content, false); len(fields) > 0 {
		response.Error(ctx, apierr.Validation(fields...))
		return
	}

	post := models.Post{
		Title:    title,
		Content:  content,
		Slug:     slug.Make(title),
		AuthorID: userID,
	}

	if err := h.DB.Create(&post).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to create post", err))
		return
	}

	response.JSON(ctx, http.StatusCreated, toPostResponse(post), "Post added successfully")
}

// Update applies only the supplied fields; a changed title refreshes the
// slug. Ownership is checked before any write.
func (h *PostHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("You must be logged in to update a post"))
		return
	}

	postID, ok := paramID(ctx, "id")

	if !ok {
		response.Error(ctx, apierr.NotFound("Post not found"))
		return
	}

	var body PostRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.Error(ctx, apierr.BadRequest("Invalid request body"))
		return
	}

	title := strings.TrimSpace(body.Title)
	content := strings.TrimSpace(body.Content)

	if fields := validatePostFields(title, content, true); len(fields) > 0 {
		response.Error(ctx, apierr.Validation(fields...))
		return
	}

	var post models.Post

	if err := h.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(ctx, apierr.NotFound("Post not found"))
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch post", err))
		return
	}

	if post.AuthorID != userID {
		response.Error(ctx, apierr.NotOwner("You are not allowed to modify this post"))
		return
	}

	if title != "" {
		post.Title = title
		post.Slug = slug.Make(title)
	}

	if content != "" {
		post.Content = content
	}

	if err := h.DB.Save(&post).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to update post", err))
		return
	}

	response.JSON(ctx, http.StatusOK, toPostResponse(post), "Post updated successfully")
}

// Delete removes the post and returns the deleted document as confirmation.
func (h *PostHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("You must be logged in to delete a post"))
		return
	}

	postID, ok := paramID(ctx, "id")

	if !ok {
		response.Error(ctx, apierr.NotFound("Post not found"))
		return
	}

	var post models.Post

	if err := h.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(ctx, apierr.NotFound("Post not found"))
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch post", err))
		return
	}

	if post.AuthorID != userID {
		response.Error(ctx, apierr.NotOwner("You are not allowed to delete this post"))
		return
	}

	if err := h.DB.Delete(&post).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to delete post", err))
		return
	}

	response.JSON(ctx, http.StatusOK, toPostResponse(post), "Post deleted successfully")
}
