package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/authd/internal/pkg/errors"
	"github.com/xxxsen/authd/internal/pkg/jwt"
	"github.com/xxxsen/authd/internal/pkg/response"
)

const ContextUserIDKey = "user_id"

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, appErr.ErrMissingToken.Error())
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, appErr.ErrInvalidToken.Error())
			c.Abort()
			return
		}
		userID, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, appErr.ErrInvalidToken.Error())
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
