// Package store defines the data-access interfaces the rest of the backend is
// written against. The document store behind them assigns identifiers, keeps a
// unique index on user email, and offers no multi-document transactions; every
// cross-entity sequence built on top of these calls is eventually, not
// atomically, consistent.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup by id or email matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by UserStore.Create when the email
	// collides with the unique index.
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TaskStore interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Task, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id primitive.ObjectID, patch TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByIDs removes every task whose id is in ids. Ids that match
	// nothing are skipped silently.
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
	// ClearAssignee nullifies assignedTo on every task assigned to userID.
	ClearAssignee(ctx context.Context, userID primitive.ObjectID) error
}

type ProjectStore interface {
	Create(ctx context.Context, project models.Project) (models.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, patch ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// PushTask appends taskID to the project's task list.
	PushTask(ctx context.Context, projectID, taskID primitive.ObjectID) error
	// PullTask removes taskID from the project's task list if present;
	// an absent entry is not an error.
	PullTask(ctx context.Context, projectID, taskID primitive.ObjectID) error
	// PushMember appends userID to the project's members. The append is
	// unconditional; callers own any dedup policy.
	PushMember(ctx context.Context, projectID, userID primitive.ObjectID) error
}

// Patches carry only the fields to change; nil means "leave as is".

type UserPatch struct {
	Name  *string
	Email *string
}

type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	AssignedTo  *primitive.ObjectID
	FinishedAt  *time.Time
}

type ProjectPatch struct {
	Title       *string
	Description *string
	Status      *models.ProjectStatus
}
