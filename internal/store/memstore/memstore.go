// Package memstore provides a map-backed implementation of the store
// interfaces for tests and ephemeral environments. It mirrors the document
// store's semantics: store-assigned identifiers, a unique email constraint,
// unconditional array pushes, and no cross-entity transactions.
package memstore

import (
	"context"
	"sync"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ store.UserStore    = (*Users)(nil)
	_ store.TaskStore    = (*Tasks)(nil)
	_ store.ProjectStore = (*Projects)(nil)
)

type state struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	tasks    map[primitive.ObjectID]models.Task
	projects map[primitive.ObjectID]models.Project
}

type Store struct {
	Users    *Users
	Tasks    *Tasks
	Projects *Projects
}

func New() *Store {
	s := &state{
		users:    make(map[primitive.ObjectID]models.User),
		tasks:    make(map[primitive.ObjectID]models.Task),
		projects: make(map[primitive.ObjectID]models.Project),
	}
	return &Store{
		Users:    &Users{s: s},
		Tasks:    &Tasks{s: s},
		Projects: &Projects{s: s},
	}
}

type Users struct {
	s *state
}

func (u *Users) Create(_ context.Context, user models.User) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return models.User{}, store.ErrDuplicateEmail
		}
	}

	user.ID = primitive.NewObjectID()
	u.s.users[user.ID] = user
	return user, nil
}

func (u *Users) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (u *Users) Update(_ context.Context, id primitive.ObjectID, patch store.UserPatch) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}

	if patch.Email != nil && *patch.Email != user.Email {
		for _, existing := range u.s.users {
			if existing.Email == *patch.Email {
				return models.User{}, store.ErrDuplicateEmail
			}
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}

	u.s.users[id] = user
	return user, nil
}

func (u *Users) Delete(_ context.Context, id primitive.ObjectID) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(u.s.users, id)
	return nil
}

type Tasks struct {
	s *state
}

func (t *Tasks) Create(_ context.Context, task models.Task) (models.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	task.ID = primitive.NewObjectID()
	t.s.tasks[task.ID] = task
	return task, nil
}

func (t *Tasks) FindByID(_ context.Context, id primitive.ObjectID) (models.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	task, ok := t.s.tasks[id]
	if !ok {
		return models.Task{}, store.ErrNotFound
	}
	return task, nil
}

func (t *Tasks) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var tasks []models.Task
	for _, id := range ids {
		if task, ok := t.s.tasks[id]; ok {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (t *Tasks) List(_ context.Context) ([]models.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tasks := make([]models.Task, 0, len(t.s.tasks))
	for _, task := range t.s.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (t *Tasks) Update(_ context.Context, id primitive.ObjectID, patch store.TaskPatch) (models.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	task, ok := t.s.tasks[id]
	if !ok {
		return models.Task{}, store.ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.AssignedTo != nil {
		assignee := *patch.AssignedTo
		task.AssignedTo = &assignee
	}
	if patch.FinishedAt != nil {
		finished := *patch.FinishedAt
		task.FinishedAt = &finished
	}

	t.s.tasks[id] = task
	return task, nil
}

func (t *Tasks) Delete(_ context.Context, id primitive.ObjectID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(t.s.tasks, id)
	return nil
}

func (t *Tasks) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, id := range ids {
		delete(t.s.tasks, id)
	}
	return nil
}

func (t *Tasks) ClearAssignee(_ context.Context, userID primitive.ObjectID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for id, task := range t.s.tasks {
		if task.AssignedTo != nil && *task.AssignedTo == userID {
			task.AssignedTo = nil
			t.s.tasks[id] = task
		}
	}
	return nil
}

type Projects struct {
	s *state
}

func (p *Projects) Create(_ context.Context, project models.Project) (models.Project, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if project.Members == nil {
		project.Members = []primitive.ObjectID{}
	}
	if project.Tasks == nil {
		project.Tasks = []primitive.ObjectID{}
	}

	project.ID = primitive.NewObjectID()
	p.s.projects[project.ID] = project
	return project, nil
}

func (p *Projects) FindByID(_ context.Context, id primitive.ObjectID) (models.Project, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	project, ok := p.s.projects[id]
	if !ok {
		return models.Project{}, store.ErrNotFound
	}
	return cloneProject(project), nil
}

func (p *Projects) List(_ context.Context) ([]models.Project, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	projects := make([]models.Project, 0, len(p.s.projects))
	for _, project := range p.s.projects {
		projects = append(projects, cloneProject(project))
	}
	return projects, nil
}

func (p *Projects) Update(_ context.Context, id primitive.ObjectID, patch store.ProjectPatch) (models.Project, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	project, ok := p.s.projects[id]
	if !ok {
		return models.Project{}, store.ErrNotFound
	}

	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}

	p.s.projects[id] = project
	return cloneProject(project), nil
}

func (p *Projects) Delete(_ context.Context, id primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(p.s.projects, id)
	return nil
}

func (p *Projects) PushTask(_ context.Context, projectID, taskID primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	project, ok := p.s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	project.Tasks = append(project.Tasks, taskID)
	p.s.projects[projectID] = project
	return nil
}

func (p *Projects) PullTask(_ context.Context, projectID, taskID primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	project, ok := p.s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}

	tasks := project.Tasks[:0]
	for _, id := range project.Tasks {
		if id != taskID {
			tasks = append(tasks, id)
		}
	}
	project.Tasks = tasks
	p.s.projects[projectID] = project
	return nil
}

func (p *Projects) PushMember(_ context.Context, projectID, userID primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	project, ok := p.s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	project.Members = append(project.Members, userID)
	p.s.projects[projectID] = project
	return nil
}

func cloneProject(p models.Project) models.Project {
	out := p
	out.Members = append([]primitive.ObjectID(nil), p.Members...)
	out.Tasks = append([]primitive.ObjectID(nil), p.Tasks...)
	return out
}
