package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/relation"
	"github.com/taskhive-dev/taskhive/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=40"`
	Description string `json:"description" binding:"omitempty,max=100"`
	Status      string `json:"status" binding:"omitempty,oneof=to-do in-progress blocked done"`
	AssignedTo  string `json:"assignedTo"`
	ProjectID   string `json:"projectId"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=40"`
	Description *string `json:"description" binding:"omitempty,max=100"`
	Status      *string `json:"status" binding:"omitempty,oneof=to-do in-progress blocked done"`
	AssignedTo  string  `json:"assignedTo"`
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		Title:       body.Title,
		Description: body.Description,
		Status:      models.TaskStatus(body.Status),
	}

	if task.Status == "" {
		task.Status = models.TaskStatusToDo
	}

	if body.AssignedTo != "" {
		id, ok := bodyID(ctx, "AssignedTo", body.AssignedTo)
		if !ok {
			return
		}
		task.AssignedTo = &id
	}

	if body.ProjectID != "" {
		id, ok := bodyID(ctx, "ProjectId", body.ProjectID)
		if !ok {
			return
		}
		task.ProjectID = &id
	}

	created, err := h.Relations.CreateTask(ctx.Request.Context(), task)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"data":    created,
	})
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	tasks, err := h.Tasks.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	ctx.JSON(http.StatusOK, gin.H{"data": tasks})
}

func (h *Handler) GetTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	task, err := h.Tasks.FindByID(ctx.Request.Context(), id)

	if err != nil {
		respondEntityError(ctx, err, relation.KindTask)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": task})
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var body UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.TaskPatch{
		Title:       body.Title,
		Description: body.Description,
	}

	if body.Status != nil {
		status := models.TaskStatus(*body.Status)
		patch.Status = &status
	}

	if body.AssignedTo != "" {
		assignee, ok := bodyID(ctx, "AssignedTo", body.AssignedTo)
		if !ok {
			return
		}
		patch.AssignedTo = &assignee
	}

	task, err := h.Relations.UpdateTask(ctx.Request.Context(), id, patch)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": task})
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.Relations.DeleteTask(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// bodyID validates an identifier supplied in a request body.
func bodyID(ctx *gin.Context, field, value string) (primitive.ObjectID, bool) {
	if !models.IsValidID(value) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": field + " is not a valid identifier"})
		return primitive.NilObjectID, false
	}

	id, _ := primitive.ObjectIDFromHex(value)
	return id, true
}
