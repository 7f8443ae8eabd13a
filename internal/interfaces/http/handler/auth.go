package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pizzastock/backend/internal/infrastructure/auth"
)

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	verifier *auth.CredentialVerifier
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier *auth.CredentialVerifier, jwt *auth.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{verifier: verifier, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.verifier.Verify(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			h.logger.Warn("Login rejected",
				zap.String("username", req.Username),
				zap.String("client_ip", c.ClientIP()))
			h.Unauthorized(c, "Invalid username or password")
			return
		}
		h.HandleError(c, err)
		return
	}

	token, err := h.jwt.Generate(req.Username)
	if err != nil {
		h.logger.Error("Token generation failed", zap.Error(err))
		h.InternalError(c, "Could not issue token")
		return
	}

	h.logger.Info("Login succeeded", zap.String("username", req.Username))
	h.Success(c, token)
}
