package handler

import (
	"net/http"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/middleware"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	// 1. Parse and validate JSON request
	if !bindJSON(c, &req) {
		logger.Log.Warn("Registration request rejected", zap.String("ip", c.ClientIP()))
		return
	}

	logger.Log.Info("User registration attempt",
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	// 2. Call service
	pair, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// 3. Tokens travel in the body, clients send them back as Bearer headers
	c.JSON(http.StatusCreated, dto.NewAuthResponse(pair))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if !bindJSON(c, &req) {
		logger.Log.Warn("Login request rejected", zap.String("ip", c.ClientIP()))
		return
	}

	logger.Log.Info("User login attempt",
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(pair))
}

// Refresh reads the refresh token from the Authorization header and returns a
// new access token alongside the same refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		middleware.AbortWithError(c, http.StatusUnauthorized, "Refresh token is missing")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(pair))
}
