package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh-token", h.RefreshToken)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RegistrationResponse{
			Success: false,
			Errors:  []string{"Invalid payload"},
		})
		return
	}

	_, pair, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, RegistrationResponse{
				Success: false,
				Errors:  []string{"Email is already in use"},
			})
		case IsAuthFailure(err):
			c.JSON(http.StatusBadRequest, RegistrationResponse{
				Success: false,
				Errors:  []string{err.Error()},
			})
		default:
			c.JSON(http.StatusInternalServerError, RegistrationResponse{
				Success: false,
				Errors:  []string{"Unable to create user"},
			})
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Success:      true,
		Errors:       []string{},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RegistrationResponse{
			Success: false,
			Errors:  []string{"Invalid payload"},
		})
		return
	}

	_, pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if IsAuthFailure(err) {
			c.JSON(http.StatusUnauthorized, RegistrationResponse{
				Success: false,
				Errors:  []string{"Invalid login request"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, RegistrationResponse{
			Success: false,
			Errors:  []string{"Unable to login"},
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Success:      true,
		Errors:       []string{},
	})
}

// RefreshToken reports the exact gate that rejected a bad pair, but a
// storage failure is a 500, never disguised as an authentication failure.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RegistrationResponse{
			Success: false,
			Errors:  []string{"Invalid payload"},
		})
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.Token, req.RefreshToken)
	if err != nil {
		if IsAuthFailure(err) {
			c.JSON(http.StatusUnauthorized, AuthResponse{
				Success: false,
				Errors:  []string{errorMessage(err)},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, AuthResponse{
			Success: false,
			Errors:  []string{"Unable to refresh token"},
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Success:      true,
		Errors:       []string{},
	})
}

var gateMessages = map[error]string{
	ErrTokenMalformed: "Invalid tokens",
	ErrTokenNotFound:  "Token does not exist",
	ErrTokenExpired:   "Token has expired",
	ErrTokenUsed:      "Token has been used",
	ErrTokenRevoked:   "Token has been revoked",
	ErrTokenMismatch:  "Token does not match",
}

func errorMessage(err error) string {
	if msg, ok := gateMessages[err]; ok {
		return msg
	}
	return "Invalid tokens"
}
