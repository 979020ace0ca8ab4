package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "promenu/internal/handler/dto/request"
	resdto "promenu/internal/handler/dto/response"
	"promenu/internal/handler/middleware"
	"promenu/internal/pkg/config"
	"promenu/internal/pkg/cookie"
	"promenu/internal/pkg/errs"
	"promenu/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase   usecase.AuthUseCase
	tokenDuration time.Duration
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, cfg config.JWTConfig) *AuthHandler {
	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		duration = 24 * time.Hour
	}
	return &AuthHandler{
		authUseCase:   authUseCase,
		tokenDuration: duration,
	}
}

// @Summary Owner login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	token, identity, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, errs.ErrBackendFailure):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Backend unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	cookie.SetTokenCookie(c, token, h.tokenDuration)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: token,
		Email:       identity.Email,
	})
}

// @Summary Owner registration
// @Description Register a new owner account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 "Created"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.authUseCase.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, errs.ErrBackendFailure):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Account could not be created",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusCreated)
}

// @Summary Owner logout
// @Description Clear the identity cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Stateless tokens; logout just drops the cookie.
	cookie.ClearTokenCookie(c)
	c.Status(http.StatusNoContent)
}

// @Summary Current identity
// @Description Get the signed-in identity
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	email, ok := middleware.GetIdentityEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Not authenticated",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.MeResponse{Email: email})
}
