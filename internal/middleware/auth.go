package middleware

import (
	"strings"

	"github.com/bloghub-dev/bloghub/internal/apierr"
	"github.com/bloghub-dev/bloghub/internal/auth"
	"github.com/bloghub-dev/bloghub/internal/models"
	"github.com/bloghub-dev/bloghub/internal/response"
	"github.com/bloghub-dev/bloghub/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthenticatedUser is the identity attached to the request context after a
// token verifies. The password hash never enters the context.
type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// extractToken returns the session token from the accessToken cookie,
// falling back to the Authorization Bearer header. Cookie wins when both
// are present.
func extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(types.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// AuthMiddleware verifies the session token and resolves the referenced
// user. Missing token, bad signature, expiry and a deleted user all abort
// with the same unauthenticated envelope; handlers past this point can rely
// on the identity being present.
func AuthMiddleware(database *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			response.AbortError(ctx, apierr.Unauthenticated("Authentication token is required"))
			return
		}

		claims, err := auth.VerifyToken(tokenString)

		if err != nil {
			response.AbortError(ctx, apierr.Unauthenticated("Invalid or expired token"))
			return
		}

		var user models.User

		if err := database.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			response.AbortError(ctx, apierr.Unauthenticated("User not found"))
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		ctx.Next()
	}
}
