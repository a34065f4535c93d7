// Package store holds the document models and the repositories the route
// modules persist through. Mongo is the production backend; Memory backs
// tests and local runs without a database.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicate   = errors.New("already exists")
	ErrUnavailable = errors.New("database unavailable")
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Roles        []int              `bson:"roles" json:"roles"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Level       string             `bson:"level,omitempty" json:"level,omitempty"`
	Reward      int                `bson:"reward" json:"reward"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type TextTag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Text      string             `bson:"text" json:"text"`
	Tags      []string           `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Users interface {
	Create(ctx context.Context, u *User) error
	ByID(ctx context.Context, id string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit int64) ([]User, error)
	UpdateName(ctx context.Context, id, name string) (*User, error)
	SetRoles(ctx context.Context, id string, roles []int) (*User, error)
}

type Tasks interface {
	Create(ctx context.Context, t *Task) error
	ByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]Task, error)
	Delete(ctx context.Context, id string) error

	Follow(ctx context.Context, userID, taskID string) error
	Unfollow(ctx context.Context, userID, taskID string) error
	Followed(ctx context.Context, userID string) ([]Task, error)
}

type TextTags interface {
	Create(ctx context.Context, t *TextTag) error
	ListByUser(ctx context.Context, userID string) ([]TextTag, error)
	Delete(ctx context.Context, userID, id string) error
}

// parseID converts a hex id; malformed ids cannot exist, so they are
// reported as ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
