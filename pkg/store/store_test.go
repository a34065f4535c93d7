package store

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	users := NewMemory().Users()

	u := &User{Name: "Marie", Email: " Marie@Example.com ", Roles: []int{1}}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID.IsZero() {
		t.Fatal("Create should assign an id")
	}
	if err := users.Create(ctx, &User{Email: "marie@example.com"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	got, err := users.ByEmail(ctx, "MARIE@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("ByEmail = %v, %v", got, err)
	}

	updated, err := users.UpdateName(ctx, u.ID.Hex(), "Marie C.")
	if err != nil || updated.Name != "Marie C." {
		t.Fatalf("UpdateName = %v, %v", updated, err)
	}
	updated, err = users.SetRoles(ctx, u.ID.Hex(), []int{1, 2})
	if err != nil || len(updated.Roles) != 2 {
		t.Fatalf("SetRoles = %v, %v", updated, err)
	}

	if _, err := users.ByID(ctx, "not-an-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}

	_ = users.Create(ctx, &User{Email: "second@example.com"})
	list, _ := users.List(ctx, 1)
	if len(list) != 1 || list[0].ID != u.ID {
		t.Errorf("List(1) = %v, want oldest user first", list)
	}
}

func TestMemoryTasksAndFollows(t *testing.T) {
	ctx := context.Background()
	tasks := NewMemory().Tasks()
	userID := "65f1c2a9e4b0a1b2c3d4e5f6"

	first := &Task{Title: "first"}
	second := &Task{Title: "second"}
	_ = tasks.Create(ctx, first)
	_ = tasks.Create(ctx, second)

	list, _ := tasks.List(ctx)
	if len(list) != 2 || list[0].Title != "second" {
		t.Fatalf("List = %v, want newest first", list)
	}

	if err := tasks.Follow(ctx, userID, first.ID.Hex()); err != nil {
		t.Fatalf("Follow error: %v", err)
	}
	if err := tasks.Follow(ctx, userID, first.ID.Hex()); err != nil {
		t.Fatalf("Follow should be idempotent, got %v", err)
	}
	if err := tasks.Follow(ctx, userID, "65f1c2a9e4b0a1b2c3d4e5f0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound following unknown task, got %v", err)
	}

	followed, _ := tasks.Followed(ctx, userID)
	if len(followed) != 1 || followed[0].ID != first.ID {
		t.Fatalf("Followed = %v", followed)
	}

	if err := tasks.Delete(ctx, first.ID.Hex()); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	followed, _ = tasks.Followed(ctx, userID)
	if len(followed) != 0 {
		t.Errorf("deleting a task should drop its follows, got %v", followed)
	}
	if err := tasks.Unfollow(ctx, userID, first.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryTextTags_Ownership(t *testing.T) {
	ctx := context.Background()
	tags := NewMemory().TextTags()
	owner, _ := parseID("65f1c2a9e4b0a1b2c3d4e5f6")

	tag := &TextTag{UserID: owner, Text: "Le chat est noir.", Tags: []string{"animals"}}
	if err := tags.Create(ctx, tag); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := tags.Delete(ctx, "65f1c2a9e4b0a1b2c3d4e5f7", tag.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("other users must not delete the tag, got %v", err)
	}
	list, _ := tags.ListByUser(ctx, owner.Hex())
	if len(list) != 1 {
		t.Fatalf("ListByUser = %v", list)
	}
	if err := tags.Delete(ctx, owner.Hex(), tag.ID.Hex()); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestConnect_NoURI(t *testing.T) {
	m := Connect(context.Background(), "", "play2earn", zap.NewNop())
	if m.Client != nil {
		t.Fatal("no client expected without a URI")
	}
	if _, err := m.Users().ByEmail(context.Background(), "a@b.c"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if err := m.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect error: %v", err)
	}
}

func TestConnect_BadURI(t *testing.T) {
	m := Connect(context.Background(), "not-a-mongo-uri", "play2earn", zap.NewNop())
	if m.DB != nil {
		t.Fatal("no database expected for an unparsable URI")
	}
	if _, err := m.Tasks().List(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
