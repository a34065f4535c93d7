package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTasks struct {
	m *Mongo
}

type follow struct {
	UserID    primitive.ObjectID `bson:"user_id"`
	TaskID    primitive.ObjectID `bson:"task_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *mongoTasks) Create(ctx context.Context, t *Task) error {
	coll, err := r.m.collection("tasks")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err = coll.InsertOne(ctx, t)
	return err
}

func (r *mongoTasks) ByID(ctx context.Context, id string) (*Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.m.collection("tasks")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var t Task
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *mongoTasks) List(ctx context.Context) ([]Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoTasks) find(ctx context.Context, filter bson.M) ([]Task, error) {
	coll, err := r.m.collection("tasks")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	tasks := []Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *mongoTasks) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	coll, err := r.m.collection("tasks")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	// orphaned follows are harmless but clutter listings
	if follows, err := r.m.collection("follows"); err == nil {
		_, _ = follows.DeleteMany(ctx, bson.M{"task_id": oid})
	}
	return nil
}

// Follow is idempotent; following an unknown task is ErrNotFound.
func (r *mongoTasks) Follow(ctx context.Context, userID, taskID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	if _, err := r.ByID(ctx, taskID); err != nil {
		return err
	}
	tid, _ := primitive.ObjectIDFromHex(taskID)

	coll, err := r.m.collection("follows")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = coll.InsertOne(ctx, follow{UserID: uid, TaskID: tid, CreatedAt: time.Now().UTC()})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *mongoTasks) Unfollow(ctx context.Context, userID, taskID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	tid, err := parseID(taskID)
	if err != nil {
		return err
	}
	coll, err := r.m.collection("follows")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"user_id": uid, "task_id": tid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTasks) Followed(ctx context.Context, userID string) ([]Task, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	coll, err := r.m.collection("follows")
	if err != nil {
		return nil, err
	}
	fctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := coll.Find(fctx, bson.M{"user_id": uid})
	if err != nil {
		return nil, err
	}
	var follows []follow
	if err := cursor.All(fctx, &follows); err != nil {
		return nil, err
	}
	if len(follows) == 0 {
		return []Task{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.TaskID)
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}
