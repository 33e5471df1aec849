package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ProjectStatus string

const (
	ProjectStatusOpen   ProjectStatus = "open"
	ProjectStatusClosed ProjectStatus = "closed"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusOpen || s == ProjectStatusClosed
}

// Members and Tasks hold weak references to Users and Tasks. Tasks is the
// back-reference side of Task.ProjectID and is only ever mutated through the
// relation manager so the two stay consistent.
type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Status      ProjectStatus        `bson:"status" json:"status"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Tasks       []primitive.ObjectID `bson:"tasks" json:"tasks"`
}
