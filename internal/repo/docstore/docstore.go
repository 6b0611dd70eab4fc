// Package docstore implements the task and user repositories on MongoDB.
// Documents use string UUIDs as _id so ids look the same on every backend.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
	pingTimeout     = 5 * time.Second
)

var (
	_ repo.TaskRepository = (*TaskRepo)(nil)
	_ repo.UserRepository = (*UserRepo)(nil)
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique email index and the tenant lookup index.
// It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("idx_tasks_tenant_created"),
	})
	if err != nil {
		return fmt.Errorf("create tasks index: %w", err)
	}
	return nil
}

type TaskRepo struct {
	coll *mongo.Collection
}

func NewTaskRepo(db *mongo.Database) *TaskRepo {
	return &TaskRepo{coll: db.Collection(tasksCollection)}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	t.ID = uuid.NewString()
	t.DueDate = toMillis(t.DueDate)
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return model.Task{}, mapError(err)
	}
	return t, nil
}

func (r *TaskRepo) Get(ctx context.Context, tenantID, id string) (model.Task, error) {
	var t model.Task
	err := r.coll.FindOne(ctx, scope(tenantID, id)).Decode(&t)
	if err != nil {
		return model.Task{}, mapError(err)
	}
	return t, nil
}

func (r *TaskRepo) List(ctx context.Context, tenantID string) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"tenant_id": tenantID}, opts)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	update := bson.M{"$set": bson.M{
		"title":       t.Title,
		"description": t.Description,
		"due_date":    toMillis(t.DueDate),
		"priority":    t.Priority,
		"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Task
	err := r.coll.FindOneAndUpdate(ctx, scope(t.TenantID, t.ID), update, opts).Decode(&updated)
	if err != nil {
		return model.Task{}, mapError(err)
	}
	return updated, nil
}

func (r *TaskRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.coll.DeleteOne(ctx, scope(tenantID, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrorNotFound
	}
	return nil
}

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(usersCollection)}
}

func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		return model.User{}, mapError(err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return model.User{}, mapError(err)
	}
	return u, nil
}

// toMillis приводит время к точности BSON datetime, чтобы ответ на запись
// совпадал с тем, что потом прочитается из базы.
func toMillis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func scope(tenantID, id string) bson.M {
	return bson.M{"_id": id, "tenant_id": tenantID}
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repo.ErrorNotFound
	case mongo.IsDuplicateKeyError(err):
		return repo.ErrorConflict
	default:
		return err
	}
}
