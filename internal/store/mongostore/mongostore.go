// Package mongostore implements the store interfaces on top of MongoDB
// collections. Identifier generation, the unique email index, and array
// push/pull semantics all live at the database; nothing here spans more than
// one document per call.
package mongostore

import (
	"context"
	"time"

	"github.com/taskhive-dev/taskhive/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ store.UserStore    = (*UserStore)(nil)
	_ store.TaskStore    = (*TaskStore)(nil)
	_ store.ProjectStore = (*ProjectStore)(nil)
)

const (
	usersCollection    = "users"
	tasksCollection    = "tasks"
	projectsCollection = "projects"
)

type Store struct {
	Users    *UserStore
	Tasks    *TaskStore
	Projects *ProjectStore
}

func New(db *mongo.Database) *Store {
	return &Store{
		Users:    &UserStore{col: db.Collection(usersCollection)},
		Tasks:    &TaskStore{col: db.Collection(tasksCollection)},
		Projects: &ProjectStore{col: db.Collection(projectsCollection)},
	}
}

// EnsureIndexes creates the unique email index on users. Safe to call on
// every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.Users.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
