package mongostore

import (
	"context"
	"errors"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectStore struct {
	col *mongo.Collection
}

func (s *ProjectStore) Create(ctx context.Context, project models.Project) (models.Project, error) {
	if project.Members == nil {
		project.Members = []primitive.ObjectID{}
	}
	if project.Tasks == nil {
		project.Tasks = []primitive.ObjectID{}
	}

	res, err := s.col.InsertOne(ctx, project)
	if err != nil {
		return models.Project{}, err
	}

	project.ID = res.InsertedID.(primitive.ObjectID)
	return project, nil
}

func (s *ProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var project models.Project

	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, store.ErrNotFound
		}
		return models.Project{}, err
	}

	return project, nil
}

func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var projects []models.Project

	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *ProjectStore) Update(ctx context.Context, id primitive.ObjectID, patch store.ProjectPatch) (models.Project, error) {
	set := bson.M{}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	if len(set) > 0 {
		res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			return models.Project{}, err
		}
		if res.MatchedCount == 0 {
			return models.Project{}, store.ErrNotFound
		}
	}

	return s.FindByID(ctx, id)
}

func (s *ProjectStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ProjectStore) PushTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	return s.push(ctx, projectID, "tasks", taskID)
}

func (s *ProjectStore) PullTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, projectID, bson.M{"$pull": bson.M{"tasks": taskID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ProjectStore) PushMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	return s.push(ctx, projectID, "members", userID)
}

func (s *ProjectStore) push(ctx context.Context, projectID primitive.ObjectID, field string, value primitive.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, projectID, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
