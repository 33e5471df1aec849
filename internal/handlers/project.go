package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/relation"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
)

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=40"`
	Description string `json:"description" binding:"omitempty,max=200"`
	Status      string `json:"status" binding:"omitempty,oneof=open closed"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=40"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	Status      *string `json:"status" binding:"omitempty,oneof=open closed"`
}

type AddProjectMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := models.Project{
		Title:       body.Title,
		Description: body.Description,
		Status:      models.ProjectStatus(body.Status),
	}

	if project.Status == "" {
		project.Status = models.ProjectStatusOpen
	}

	created, err := h.Projects.Create(ctx.Request.Context(), project)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"data":    created,
	})
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	projects, err := h.Projects.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	ctx.JSON(http.StatusOK, gin.H{"data": projects})
}

func (h *Handler) GetProject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	project, err := h.Projects.FindByID(ctx.Request.Context(), id)

	if err != nil {
		respondEntityError(ctx, err, relation.KindProject)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": project})
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.ProjectPatch{
		Title:       body.Title,
		Description: body.Description,
	}

	if body.Status != nil {
		status := models.ProjectStatus(*body.Status)
		patch.Status = &status
	}

	project, err := h.Projects.Update(ctx.Request.Context(), id, patch)

	if err != nil {
		respondEntityError(ctx, err, relation.KindProject)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": project})
}

// DeleteProject cascades: every task the project references goes with it.
func (h *Handler) DeleteProject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.Relations.DeleteProject(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *Handler) GetProjectTasks(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tasks, err := h.Relations.ProjectTasks(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	ctx.JSON(http.StatusOK, gin.H{"data": tasks})
}

func (h *Handler) GetProjectMembers(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	members, err := h.Relations.ProjectMembers(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(members))
	for _, member := range members {
		response = append(response, userResponse(member))
	}

	ctx.JSON(http.StatusOK, gin.H{"data": response})
}

func (h *Handler) AddProjectMember(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var body AddProjectMemberRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "UserId is required"})
		return
	}

	userID, ok := bodyID(ctx, "UserId", body.UserID)
	if !ok {
		return
	}

	if err := h.Relations.AddProjectMember(ctx.Request.Context(), projectID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "New member has been added"})
}
