package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/taskapi/data/repository"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/security/jwt"
	"github.com/ncobase/taskapi/structs"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// fakeTasks is an in-memory TaskRepository.
type fakeTasks struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*structs.Task
	err   error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: map[string]*structs.Task{}}
}

func (f *fakeTasks) Create(_ context.Context, t *structs.Task) (*structs.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	c := *t
	c.ID = fmt.Sprintf("t%03d", f.seq)
	c.CreatedAt = time.Unix(int64(f.seq), 0).UTC()
	c.UpdatedAt = c.CreatedAt
	if c.Status == "" {
		c.Status = structs.StatusPending
	}
	if c.Priority == "" {
		c.Priority = structs.PriorityMedium
	}
	f.tasks[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeTasks) FindOwned(_ context.Context, userID, id string) (*structs.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (f *fakeTasks) List(_ context.Context, p *structs.ListTaskParams) (*structs.TaskList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var match []*structs.Task
	for _, t := range f.tasks {
		if t.UserID != p.UserID {
			continue
		}
		if p.Status != "" && string(t.Status) != p.Status {
			continue
		}
		if p.Priority != "" && string(t.Priority) != p.Priority {
			continue
		}
		if p.Search != "" && !strings.Contains(t.Title, p.Search) && (t.Description == nil || !strings.Contains(*t.Description, p.Search)) {
			continue
		}
		c := *t
		match = append(match, &c)
	}
	sort.Slice(match, func(i, j int) bool {
		if p.Sort == structs.SortOldest {
			return match[i].ID < match[j].ID
		}
		return match[i].ID > match[j].ID
	})
	total := len(match)
	start := min(p.Offset(), total)
	end := min(start+p.Limit, total)
	return &structs.TaskList{Tasks: match[start:end], Total: total}, nil
}

func (f *fakeTasks) Update(_ context.Context, userID, id string, c *structs.TaskChanges) (*structs.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.ClearDescription {
		t.Description = nil
	} else if c.Description != nil {
		d := *c.Description
		t.Description = &d
	}
	if c.Status != nil {
		t.Status = *c.Status
	}
	if c.Priority != nil {
		t.Priority = *c.Priority
	}
	out := *t
	return &out, nil
}

func (f *fakeTasks) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

// fakeUsers is an in-memory UserRepository.
type fakeUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]*structs.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*structs.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *structs.User) (*structs.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range f.users {
		if existing.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	f.seq++
	c := *u
	c.ID = fmt.Sprintf("u%03d", f.seq)
	c.Email = email
	f.users[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*structs.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*structs.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, logrus.ErrorLevel)
}

func newTestAuth(t *testing.T) (*AuthService, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	s := NewAuthService(users, jwt.NewTokenManager("test-secret", time.Hour), testLogger())
	s.cost = bcrypt.MinCost
	return s, users
}
