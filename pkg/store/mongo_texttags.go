package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTextTags struct {
	m *Mongo
}

func (r *mongoTextTags) Create(ctx context.Context, t *TextTag) error {
	coll, err := r.m.collection("texttags")
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

func (r *mongoTextTags) ListByUser(ctx context.Context, userID string) ([]TextTag, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	coll, err := r.m.collection("texttags")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{"user_id": uid}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	tags := []TextTag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete only removes tags owned by userID.
func (r *mongoTextTags) Delete(ctx context.Context, userID, id string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	coll, err := r.m.collection("texttags")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
