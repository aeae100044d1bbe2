package tasks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapp/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	taskGroup := protected.Group("/tasks")
	{
		taskGroup.GET("", h.List)
		taskGroup.POST("", h.Create)
		taskGroup.GET("/:id", h.Get)
		taskGroup.PUT("/:id", h.Update)
		taskGroup.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list tasks")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tasks": items})
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	task, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create task")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "GET_FAILED", "Could not load task")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, ok := taskID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	task, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update task")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete task")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return 0, false
	}
	return id, true
}
