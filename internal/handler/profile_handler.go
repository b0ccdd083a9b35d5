package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/authd/internal/pkg/response"
	"github.com/xxxsen/authd/internal/service"
)

type ProfileHandler struct {
	auth *service.AuthService
}

func NewProfileHandler(auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.auth.GetProfile(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}
