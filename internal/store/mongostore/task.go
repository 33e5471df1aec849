package mongostore

import (
	"context"
	"errors"
	"sort"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskStore struct {
	col *mongo.Collection
}

func (s *TaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	res, err := s.col.InsertOne(ctx, task)
	if err != nil {
		return models.Task{}, err
	}

	task.ID = res.InsertedID.(primitive.ObjectID)
	return task, nil
}

func (s *TaskStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var task models.Task

	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, store.ErrNotFound
		}
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var tasks []models.Task

	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return orderByIDs(ids, tasks), nil
}

// orderByIDs re-sorts tasks into the order of ids. An $in query returns
// documents in storage order, but a project's task list is an ordered
// sequence and reads must preserve it.
func orderByIDs(ids []primitive.ObjectID, tasks []models.Task) []models.Task {
	pos := make(map[primitive.ObjectID]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return pos[tasks[i].ID] < pos[tasks[j].ID]
	})

	return tasks
}

func (s *TaskStore) List(ctx context.Context) ([]models.Task, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var tasks []models.Task

	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, id primitive.ObjectID, patch store.TaskPatch) (models.Task, error) {
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
	if patch.AssignedTo != nil {
		set["assignedTo"] = *patch.AssignedTo
	}
	if patch.FinishedAt != nil {
		set["finishedAt"] = *patch.FinishedAt
	}

	if len(set) > 0 {
		res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			return models.Task{}, err
		}
		if res.MatchedCount == 0 {
			return models.Task{}, store.ErrNotFound
		}
	}

	return s.FindByID(ctx, id)
}

func (s *TaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *TaskStore) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (s *TaskStore) ClearAssignee(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"assignedTo": userID},
		bson.M{"$unset": bson.M{"assignedTo": ""}},
	)
	return err
}
