package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	token, person, err := h.authService.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		h.log.Error("Login failed", "login", req.Login, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"person":       person,
	})
}
