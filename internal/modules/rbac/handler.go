package rbac

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/modules/auth"
	"todoapp/internal/pkg/response"
	"todoapp/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the administration surface. The group is expected
// to already carry JWTAuth + AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/roles", h.ListRoles)
	admin.POST("/roles", h.CreateRole)

	admin.GET("/users", h.ListUsers)
	admin.GET("/users/roles", h.UserRoles)
	admin.POST("/users/roles", h.AssignRole)
	admin.DELETE("/users/roles", h.RemoveRole)

	admin.GET("/users/claims", h.UserClaims)
	admin.POST("/users/claims", h.AddClaim)

	admin.POST("/tokens/revoke", h.RevokeToken)
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list roles")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	role, err := h.service.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrRoleExists) {
			response.Error(c, http.StatusConflict, "ROLE_EXISTS", "Role already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create role")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"role": role})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) AssignRole(c *gin.Context) {
	var req UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), req.Email, req.Role); err != nil {
		h.lookupError(c, err, "Could not assign role")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assigned": true})
}

func (h *Handler) RemoveRole(c *gin.Context) {
	var req UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RemoveRole(c.Request.Context(), req.Email, req.Role); err != nil {
		h.lookupError(c, err, "Could not remove role")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) UserRoles(c *gin.Context) {
	email, ok := emailQuery(c)
	if !ok {
		return
	}

	roles, err := h.service.UserRoles(c.Request.Context(), email)
	if err != nil {
		h.lookupError(c, err, "Could not list user roles")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

func (h *Handler) UserClaims(c *gin.Context) {
	email, ok := emailQuery(c)
	if !ok {
		return
	}

	claims, err := h.service.UserClaims(c.Request.Context(), email)
	if err != nil {
		h.lookupError(c, err, "Could not list user claims")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"claims": claims})
}

func (h *Handler) AddClaim(c *gin.Context) {
	var req AddClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	claim, err := h.service.AddClaim(c.Request.Context(), req)
	if err != nil {
		h.lookupError(c, err, "Could not add claim")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"claim": claim})
}

func (h *Handler) RevokeToken(c *gin.Context) {
	var req RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RevokeToken(c.Request.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Token does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REVOKE_FAILED", "Could not revoke token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}

func (h *Handler) lookupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User does not exist")
	case errors.Is(err, ErrRoleNotFound):
		response.Error(c, http.StatusNotFound, "ROLE_NOT_FOUND", "Role does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "RBAC_FAILED", fallback)
	}
}

func emailQuery(c *gin.Context) (string, bool) {
	email := c.Query("email")
	if !validator.Var(email, "required,email") {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Valid email query parameter required")
		return "", false
	}
	return email, true
}
