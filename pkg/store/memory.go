package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process implementation of every repository. It mirrors the
// Mongo implementation's ordering and error behaviour.
type Memory struct {
	mu sync.RWMutex

	now func() time.Time
	seq int64

	users    map[primitive.ObjectID]*memoryRecord[User]
	tasks    map[primitive.ObjectID]*memoryRecord[Task]
	textTags map[primitive.ObjectID]*memoryRecord[TextTag]
	follows  map[[2]primitive.ObjectID]struct{}
}

type memoryRecord[T any] struct {
	seq int64
	val T
}

func NewMemory() *Memory {
	return &Memory{
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[primitive.ObjectID]*memoryRecord[User]),
		tasks:    make(map[primitive.ObjectID]*memoryRecord[Task]),
		textTags: make(map[primitive.ObjectID]*memoryRecord[TextTag]),
		follows:  make(map[[2]primitive.ObjectID]struct{}),
	}
}

func (m *Memory) Users() Users       { return memoryUsers{m} }
func (m *Memory) Tasks() Tasks       { return memoryTasks{m} }
func (m *Memory) TextTags() TextTags { return memoryTextTags{m} }

func (m *Memory) nextSeq() int64 {
	m.seq++
	return m.seq
}

// sorted returns record values ordered by insertion, newest first when desc.
func sorted[T any](records map[primitive.ObjectID]*memoryRecord[T], keep func(T) bool, desc bool) []T {
	list := make([]*memoryRecord[T], 0, len(records))
	for _, r := range records {
		if keep == nil || keep(r.val) {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if desc {
			return list[i].seq > list[j].seq
		}
		return list[i].seq < list[j].seq
	})
	out := make([]T, 0, len(list))
	for _, r := range list {
		out = append(out, r.val)
	}
	return out
}

type memoryUsers struct{ m *Memory }

func (r memoryUsers) Create(_ context.Context, u *User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.m.users {
		if existing.val.Email == u.Email {
			return ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.m.now()
	}
	r.m.users[u.ID] = &memoryRecord[User]{seq: r.m.nextSeq(), val: *u}
	return nil
}

func (r memoryUsers) ByID(_ context.Context, id string) (*User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	rec, ok := r.m.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	u := rec.val
	return &u, nil
}

func (r memoryUsers) ByEmail(_ context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, rec := range r.m.users {
		if rec.val.Email == email {
			u := rec.val
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryUsers) List(_ context.Context, limit int64) ([]User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	users := sorted(r.m.users, nil, false)
	if limit > 0 && int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r memoryUsers) UpdateName(_ context.Context, id, name string) (*User, error) {
	return r.update(id, func(u *User) { u.Name = name })
}

func (r memoryUsers) SetRoles(_ context.Context, id string, roles []int) (*User, error) {
	return r.update(id, func(u *User) { u.Roles = append([]int(nil), roles...) })
}

func (r memoryUsers) update(id string, apply func(*User)) (*User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	rec, ok := r.m.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	apply(&rec.val)
	u := rec.val
	return &u, nil
}

type memoryTasks struct{ m *Memory }

func (r memoryTasks) Create(_ context.Context, t *Task) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.m.now()
	}
	r.m.tasks[t.ID] = &memoryRecord[Task]{seq: r.m.nextSeq(), val: *t}
	return nil
}

func (r memoryTasks) ByID(_ context.Context, id string) (*Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	rec, ok := r.m.tasks[oid]
	if !ok {
		return nil, ErrNotFound
	}
	t := rec.val
	return &t, nil
}

func (r memoryTasks) List(_ context.Context) ([]Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return sorted(r.m.tasks, nil, true), nil
}

func (r memoryTasks) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.tasks[oid]; !ok {
		return ErrNotFound
	}
	delete(r.m.tasks, oid)
	for key := range r.m.follows {
		if key[1] == oid {
			delete(r.m.follows, key)
		}
	}
	return nil
}

func (r memoryTasks) Follow(_ context.Context, userID, taskID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	tid, err := parseID(taskID)
	if err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.tasks[tid]; !ok {
		return ErrNotFound
	}
	r.m.follows[[2]primitive.ObjectID{uid, tid}] = struct{}{}
	return nil
}

func (r memoryTasks) Unfollow(_ context.Context, userID, taskID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	tid, err := parseID(taskID)
	if err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	key := [2]primitive.ObjectID{uid, tid}
	if _, ok := r.m.follows[key]; !ok {
		return ErrNotFound
	}
	delete(r.m.follows, key)
	return nil
}

func (r memoryTasks) Followed(_ context.Context, userID string) ([]Task, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return sorted(r.m.tasks, func(t Task) bool {
		_, ok := r.m.follows[[2]primitive.ObjectID{uid, t.ID}]
		return ok
	}, true), nil
}

type memoryTextTags struct{ m *Memory }

func (r memoryTextTags) Create(_ context.Context, t *TextTag) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.m.now()
	}
	r.m.textTags[t.ID] = &memoryRecord[TextTag]{seq: r.m.nextSeq(), val: *t}
	return nil
}

func (r memoryTextTags) ListByUser(_ context.Context, userID string) ([]TextTag, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return sorted(r.m.textTags, func(t TextTag) bool { return t.UserID == uid }, true), nil
}

func (r memoryTextTags) Delete(_ context.Context, userID, id string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	rec, ok := r.m.textTags[oid]
	if !ok || rec.val.UserID != uid {
		return ErrNotFound
	}
	delete(r.m.textTags, oid)
	return nil
}
