package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/types"
)

// GetCurrentUserID returns the user id the auth middleware stored on the
// request context.
func GetCurrentUserID(ctx *gin.Context) (string, error) {
	value, exists := ctx.Get(types.ContextUserIDKey)

	if !exists {
		return "", fmt.Errorf("user not authenticated")
	}

	userID, ok := value.(string)

	if !ok {
		return "", fmt.Errorf("invalid user id type in context")
	}

	return userID, nil
}
