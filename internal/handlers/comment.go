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
	"gorm.io/gorm"
)

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentHandler struct {
	DB *gorm.DB
}

func NewCommentHandler(database *gorm.DB) *CommentHandler {
	return &CommentHandler{DB: database}
}

func toCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
	}
}

func validateCommentContent(content string) []apierr.FieldError {
	if utf8.RuneCountInString(content) < 3 {
		return []apierr.FieldError{{Field: "content", Message: "Enter a valid content"}}
	}
	return nil
}

// ListByPost returns every comment on the given post. An empty result set
// answers 404, which conflates "post has no comments" with "post does not
// exist"; the behavior is kept as the documented contract.
func (h *CommentHandler) ListByPost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "postId")

	if !ok {
		response.Error(ctx, apierr.NotFound("No comments found for this post"))
		return
	}

	var comments []models.Comment

	if err := h.DB.Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to fetch comments", err))
		return
	}

	if len(comments) == 0 {
		response.Error(ctx, apierr.NotFound("No comments found for this post"))
		return
	}

	payload := make([]CommentResponse, 0, len(comments))

	for _, comment := range comments {
		payload = append(payload, toCommentResponse(comment))
	}

	response.JSON(ctx, http.StatusOK, gin.H{
		"count":    len(payload),
		"comments": payload,
	}, "Comments fetched successfully")
}

func (h *CommentHandler) Get(ctx *gin.Context) {
	commentID, ok := paramID(ctx, "commentId")

	if !ok {
		response.Error(ctx, apierr.NotFound("Comment not found"))
		return
	}

	var comment models.Comment

	if err := h.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(ctx, apierr.NotFound("Comment not found"))
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch comment", err))
		return
	}

	response.JSON(ctx, http.StatusOK, toCommentResponse(comment), "Comment fetched successfully")
}

// Create checks the referenced post exists before writing. The check is not
// transactional; a post deleted between check and write leaves an orphaned
// comment, which the data model accepts.
func (h *CommentHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("You must be logged in to add a comment"))
		return
	}

	postID, ok := paramID(ctx, "postId")

	if !ok {
		response.Error(ctx, apierr.NotFound("Post not found"))
		return
	}

	var body CommentRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.Error(ctx, apierr.BadRequest("Invalid request body"))
		return
	}

	content := strings.TrimSpace(body.Content)

	if fields := validateCommentContent(content); fields != nil {
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

	comment := models.Comment{
		PostID:   postID,
		Content:  content,
		AuthorID: userID,
	}

	if err := h.DB.Create(&comment).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to create comment", err))
		return
	}

	response.JSON(ctx, http.StatusCreated, toCommentResponse(comment), "Comment added successfully")
}

func (h *CommentHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("You must be logged in to update a comment"))
		return
	}

	commentID, ok := paramID(ctx, "commentId")

	if !ok {
		response.Error(ctx, apierr.NotFound("Comment not found"))
		return
	}

	var body CommentRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.Error(ctx, apierr.BadRequest("Invalid request body"))
		return
	}

	content := strings.TrimSpace(body.Content)

	if fields := validateCommentContent(content); fields != nil {
		response.Error(ctx, apierr.Validation(fields...))
		return
	}

	var comment models.Comment

	if err := h.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(ctx, apierr.NotFound("Comment not found"))
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch comment", err))
		return
	}

	if comment.AuthorID != userID {
		response.Error(ctx, apierr.NotOwner("You are not allowed to modify this comment"))
		return
	}

	comment.Content = content

	if err := h.DB.Save(&comment).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to update comment", err))
		return
	}

	response.JSON(ctx, http.StatusOK, toCommentResponse(comment), "Comment updated successfully")
}

func (h *CommentHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("You must be logged in to delete a comment"))
		return
	}

	commentID, ok := paramID(ctx, "commentId")

	if !ok {
		response.Error(ctx, apierr.NotFound("Comment not found"))
		return
	}

	var comment models.Comment

	if err := h.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(ctx, apierr.NotFound("Comment not found"))
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch comment", err))
		return
	}

	if comment.AuthorID != userID {
		response.Error(ctx, apierr.NotOwner("You are not allowed to delete this comment"))
		return
	}

	if err := h.DB.Delete(&comment).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to delete comment", err))
		return
	}

	response.JSON(ctx, http.StatusOK, toCommentResponse(comment), "Comment deleted successfully")
}
