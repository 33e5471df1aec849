package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/relation"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=4,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=4,max=30"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), h.BcryptCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := h.Users.Create(ctx.Request.Context(), models.User{
		Name:         body.Name,
		Email:        strings.ToLower(strings.TrimSpace(body.Email)),
		PasswordHash: string(passwordHash),
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    userResponse(user),
	})
}

func (h *Handler) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := h.Users.FindByID(ctx.Request.Context(), id)

	if err != nil {
		respondEntityError(ctx, err, relation.KindUser)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": userResponse(user)})
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var body UpdateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.UserPatch{Name: body.Name}

	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))
		patch.Email = &email
	}

	user, err := h.Users.Update(ctx.Request.Context(), id, patch)

	if err != nil {
		respondEntityError(ctx, err, relation.KindUser)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": userResponse(user)})
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.Relations.DeleteUser(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// pathID validates the named path parameter as a structurally valid entity
// identifier before any lookup. Malformed input is a 400, never a store error.
func pathID(ctx *gin.Context, name string) (primitive.ObjectID, bool) {
	value := ctx.Param(name)

	if !models.IsValidID(value) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Id is not a valid identifier"})
		return primitive.NilObjectID, false
	}

	id, _ := primitive.ObjectIDFromHex(value)
	return id, true
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}
