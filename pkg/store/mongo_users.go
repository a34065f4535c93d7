package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUsers struct {
	m *Mongo
}

func (r *mongoUsers) Create(ctx context.Context, u *User) error {
	coll, err := r.m.collection("users")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err = coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoUsers) ByID(ctx context.Context, id string) (*User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUsers) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *mongoUsers) findOne(ctx context.Context, filter bson.M) (*User, error) {
	coll, err := r.m.collection("users")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u User
	if err := coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *mongoUsers) List(ctx context.Context, limit int64) ([]User, error) {
	coll, err := r.m.collection("users")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUsers) UpdateName(ctx context.Context, id, name string) (*User, error) {
	return r.update(ctx, id, bson.M{"name": name})
}

func (r *mongoUsers) SetRoles(ctx context.Context, id string, roles []int) (*User, error) {
	return r.update(ctx, id, bson.M{"roles": roles})
}

func (r *mongoUsers) update(ctx context.Context, id string, set bson.M) (*User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.m.collection("users")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u User
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
