package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/authd/internal/pkg/errors"
	"github.com/xxxsen/authd/internal/pkg/response"
	"github.com/xxxsen/authd/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"message": "user registered successfully",
		"user":    publicUser(user),
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// A failed lookup is a credential failure here, not a 404.
		switch {
		case appErr.IsNotFound(err):
			response.Error(c, http.StatusBadRequest, appErr.ErrUserNotFound.Error())
		case errors.Is(err, appErr.ErrInvalidCredentials):
			response.Error(c, http.StatusBadRequest, appErr.ErrInvalidCredentials.Error())
		default:
			handleError(c, err)
		}
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"message": "login successful",
		"user":    publicUser(user),
		"token":   token,
	})
}
