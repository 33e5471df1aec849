// Package relation keeps the bidirectional references between users, projects
// and tasks consistent. The store offers no multi-document transactions, so
// every operation here is an ordered step sequence: all referential checks run
// before the first write, and once the first write has been issued no later
// failure is rolled back. Callers get the specific error that occurred and
// must tolerate eventual, not atomic, consistency across entities.
package relation

import (
	"context"
	"errors"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Manager struct {
	users    store.UserStore
	tasks    store.TaskStore
	projects store.ProjectStore
}

func NewManager(users store.UserStore, tasks store.TaskStore, projects store.ProjectStore) *Manager {
	return &Manager{users: users, tasks: tasks, projects: projects}
}

// CreateTask inserts a task and, when it carries a project reference, appends
// the new task id to that project's task list. Steps:
//  1. resolve ProjectID and AssignedTo (safe to abort)
//  2. insert the task (safe to abort before this point)
//  3. push the task id onto the project
//
// The task is written before the project references it, so a failure at step 3
// can leave a task whose project omits it, but never a project pointing at a
// task that does not exist.
func (m *Manager) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ProjectID != nil {
		if _, err := m.projects.FindByID(ctx, *task.ProjectID); err != nil {
			return models.Task{}, kindErr(err, KindProject)
		}
	}

	if task.AssignedTo != nil {
		if _, err := m.users.FindByID(ctx, *task.AssignedTo); err != nil {
			return models.Task{}, kindErr(err, KindUser)
		}
	}

	created, err := m.tasks.Create(ctx, task)
	if err != nil {
		return models.Task{}, err
	}

	if created.ProjectID != nil {
		if err := m.projects.PushTask(ctx, *created.ProjectID, created.ID); err != nil {
			return models.Task{}, err
		}
	}

	return created, nil
}

// UpdateTask applies a field patch to a task. A changed assignee is resolved
// against the user store first, and a transition to done stamps FinishedAt.
func (m *Manager) UpdateTask(ctx context.Context, id primitive.ObjectID, patch store.TaskPatch) (models.Task, error) {
	if patch.AssignedTo != nil {
		if _, err := m.users.FindByID(ctx, *patch.AssignedTo); err != nil {
			return models.Task{}, kindErr(err, KindUser)
		}
	}

	if patch.Status != nil && *patch.Status == models.TaskStatusDone {
		now := time.Now()
		patch.FinishedAt = &now
	}

	task, err := m.tasks.Update(ctx, id, patch)
	if err != nil {
		return models.Task{}, kindErr(err, KindTask)
	}

	return task, nil
}

// DeleteTask detaches the task from its project before destroying it, so a
// concurrent reader of the project never sees a task-list entry pointing at an
// already-deleted task. The pull is remove-if-present; an entry already absent
// is not an error.
func (m *Manager) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	task, err := m.tasks.FindByID(ctx, id)
	if err != nil {
		return kindErr(err, KindTask)
	}

	if task.ProjectID != nil {
		if err := m.projects.PullTask(ctx, *task.ProjectID, task.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}

	if err := m.tasks.Delete(ctx, id); err != nil {
		return kindErr(err, KindTask)
	}

	return nil
}

// DeleteProject deletes every task the project references, then the project
// itself. There is no rollback: a failure between the two steps leaves
// surviving tasks pointing at a project about to vanish, which only external
// reconciliation would detect.
func (m *Manager) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	project, err := m.projects.FindByID(ctx, id)
	if err != nil {
		return kindErr(err, KindProject)
	}

	if err := m.tasks.DeleteByIDs(ctx, project.Tasks); err != nil {
		return err
	}

	if err := m.projects.Delete(ctx, id); err != nil {
		return kindErr(err, KindProject)
	}

	return nil
}

// DeleteUser removes the user, then nullifies assignedTo on every task that
// referenced it. Project membership is left untouched: membership is
// historical record, assignment is not.
func (m *Manager) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := m.users.Delete(ctx, id); err != nil {
		return kindErr(err, KindUser)
	}

	return m.tasks.ClearAssignee(ctx, id)
}

// AddProjectMember resolves both entities, then appends the user id to the
// project's members. The append is unconditional: adding an existing member
// appends it again (observed behavior of the system, kept as is).
func (m *Manager) AddProjectMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	if _, err := m.projects.FindByID(ctx, projectID); err != nil {
		return kindErr(err, KindProject)
	}

	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return kindErr(err, KindUser)
	}

	return m.projects.PushMember(ctx, projectID, user.ID)
}

// ProjectTasks resolves a project's task references into task records. Ids
// that no longer resolve are skipped rather than failing the read.
func (m *Manager) ProjectTasks(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	project, err := m.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, kindErr(err, KindProject)
	}

	return m.tasks.FindByIDs(ctx, project.Tasks)
}

// ProjectMembers resolves a project's member references into user records.
func (m *Manager) ProjectMembers(ctx context.Context, projectID primitive.ObjectID) ([]models.User, error) {
	project, err := m.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, kindErr(err, KindProject)
	}

	members := make([]models.User, 0, len(project.Members))
	for _, id := range project.Members {
		user, err := m.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		members = append(members, user)
	}

	return members, nil
}

func kindErr(err error, kind string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Kind: kind}
	}
	return err
}
