package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bloghub-dev/bloghub/internal/apierr"
	"github.com/bloghub-dev/bloghub/internal/auth"
	"github.com/bloghub-dev/bloghub/internal/models"
	"github.com/bloghub-dev/bloghub/internal/response"
	"github.com/bloghub-dev/bloghub/internal/types"
	"github.com/bloghub-dev/bloghub/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(database *gorm.DB) *UserHandler {
	return &UserHandler{DB: database}
}

func toUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func (h *UserHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.Error(ctx, apierr.BadRequest("Invalid request body"))
		return
	}

	username := strings.ToLower(strings.TrimSpace(body.Username))
	email := strings.ToLower(strings.TrimSpace(body.Email))
	password := strings.TrimSpace(body.Password)

	var fields []apierr.FieldError

	if utf8.RuneCountInString(username) < 3 {
		fields = append(fields, apierr.FieldError{Field: "username", Message: "Enter a valid username"})
	}

	if !validEmail(email) {
		fields = append(fields, apierr.FieldError{Field: "email", Message: "Enter a valid email"})
	}

	if utf8.RuneCountInString(password) < 5 {
		fields = append(fields, apierr.FieldError{Field: "password", Message: "Enter a valid password"})
	}

	if len(fields) > 0 {
		response.Error(ctx, apierr.Validation(fields...))
		return
	}

	var existing models.User

	err := h.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error

	if err == nil {
		response.Error(ctx, apierr.Conflict("User with this email or username already exists"))
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(ctx, apierr.Internal("Failed to check existing user", err))
		return
	}

	passwordHash, err := auth.HashPassword(body.Password)

	if err != nil {
		response.Error(ctx, apierr.Internal("Failed to hash password", err))
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		response.Error(ctx, apierr.Internal("Failed to register user", err))
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Email)

	if err != nil {
		response.Error(ctx, apierr.Internal("Failed to generate access token", err))
		return
	}

	response.JSON(ctx, http.StatusCreated, gin.H{
		"user":        toUserResponse(user),
		"accessToken": token,
	}, "User registered successfully")
}

func (h *UserHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.Error(ctx, apierr.BadRequest("Invalid request body"))
		return
	}

	username := strings.ToLower(strings.TrimSpace(body.Username))
	email := strings.ToLower(strings.TrimSpace(body.Email))

	if username == "" && email == "" {
		response.Error(ctx, apierr.BadRequest("Username or email is required"))
		return
	}

	var user models.User

	query := h.DB

	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(ctx, apierr.NotFound("User does not exist"))
			return
		}
		response.Error(ctx, apierr.Internal("Failed to fetch user", err))
		return
	}

	if !auth.CheckPassword(body.Password, user.PasswordHash) {
		response.Error(ctx, apierr.Unauthenticated("Invalid user credentials"))
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Email)

	if err != nil {
		response.Error(ctx, apierr.Internal("Failed to generate access token", err))
		return
	}

	// the domain is read at request time so a DOMAIN loaded from .env
	// after package init is honored
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   os.Getenv("DOMAIN"),
		MaxAge:   60 * 60 * 24,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	response.JSON(ctx, http.StatusOK, gin.H{
		"user":        toUserResponse(user),
		"accessToken": token,
	}, "User logged in successfully")
}

// CurrentUser returns the identity the auth middleware attached, verbatim.
func (h *UserHandler) CurrentUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		response.Error(ctx, apierr.Unauthenticated("User not authenticated"))
		return
	}

	response.JSON(ctx, http.StatusOK, currentUser, "User fetched successfully")
}
