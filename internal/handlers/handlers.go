package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/relation"
	"github.com/taskhive-dev/taskhive/internal/store"
)

// Handler carries the wired dependencies for every route. Shape validation is
// done by gin's binding tags; identifier validation happens here before any
// store access; cross-entity writes go through the relation manager.
type Handler struct {
	Guard      *auth.Guard
	Users      store.UserStore
	Tasks      store.TaskStore
	Projects   store.ProjectStore
	Relations  *relation.Manager
	BcryptCost int
}

func New(guard *auth.Guard, users store.UserStore, tasks store.TaskStore, projects store.ProjectStore, bcryptCost int) *Handler {
	return &Handler{
		Guard:      guard,
		Users:      users,
		Tasks:      tasks,
		Projects:   projects,
		Relations:  relation.NewManager(users, tasks, projects),
		BcryptCost: bcryptCost,
	}
}

// respondError maps store and relation errors onto the client-facing
// taxonomy. Anything unclassified is logged for operators and surfaced as an
// opaque 500.
func respondError(ctx *gin.Context, err error) {
	var nf *relation.NotFoundError

	switch {
	case errors.As(err, &nf):
		ctx.JSON(http.StatusNotFound, gin.H{"error": capitalize(nf.Kind) + " not found"})
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrDuplicateEmail):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
	default:
		log.Printf("unhandled error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondEntityError is respondError for single-entity lookups: a bare store
// miss is tagged with the entity kind so every 404 names what was missing.
func respondEntityError(ctx *gin.Context, err error, kind string) {
	if errors.Is(err, store.ErrNotFound) {
		err = &relation.NotFoundError{Kind: kind}
	}
	respondError(ctx, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
