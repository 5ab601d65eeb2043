package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/entities"
	"meal-planner-be/internal/jwt"
)

const userIDKey = "user_id"

// UserLookup resolves the user a token was issued to
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*entities.User, error)
}

// AuthMiddleware requires a valid bearer token for an existing user.
// A missing header is 401; a token that fails verification or names a
// user that no longer exists is 403.
func AuthMiddleware(jwtService *jwt.JWTService, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !strings.HasPrefix(authHeader, "Bearer ") || tokenString == "" {
			abortWith(c, apperrors.New(apperrors.ErrAuth, "Unauthorized"))
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortWith(c, apperrors.Wrap(apperrors.ErrForbidden, "Invalid token", err))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, apperrors.ErrNotFound) {
			abortWith(c, apperrors.Wrap(apperrors.ErrForbidden, "Invalid token", err))
			return
		}
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{
		"error": apperrors.PublicMessage(err, http.StatusText(status)),
	})
}

// UserID returns the id AuthMiddleware stored on the context
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
