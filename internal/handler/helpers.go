package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/authd/internal/middleware"
	"github.com/xxxsen/authd/internal/model"
	appErr "github.com/xxxsen/authd/internal/pkg/errors"
	"github.com/xxxsen/authd/internal/pkg/response"
)

func getUserID(c *gin.Context) int64 {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(int64)
	return userID
}

func publicUser(user *model.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}

// handleError maps service errors to HTTP statuses at the request
// boundary. Login-specific 400 cases are handled in the login handler
// before falling through here.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int64("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErr.ErrDuplicateEmail):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErr.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErr.ErrMissingToken), errors.Is(err, appErr.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErr.ErrStore):
		response.Error(c, http.StatusInternalServerError, appErr.ErrStore.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}
