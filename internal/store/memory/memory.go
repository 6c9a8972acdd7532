// Package memory implementa core.UserRepository en memoria. Para desarrollo
// y tests; replica la semántica de pg, incluido ErrConflict por email o
// nickname duplicado.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/neogulmap/neogulmap/internal/store/core"
)

type Store struct {
	mu    sync.RWMutex
	byID  map[string]*core.User
	email map[string]string // lower(email) -> id
}

func New() *Store {
	return &Store{
		byID:  make(map[string]*core.User),
		email: make(map[string]string),
	}
}

func clone(u *core.User) *core.User {
	c := *u
	if u.Nickname != nil {
		v := *u.Nickname
		c.Nickname = &v
	}
	if u.ProfileImage != nil {
		v := *u.ProfileImage
		c.ProfileImage = &v
	}
	return &c
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.email[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return clone(u), nil
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := s.email[key]; exists {
		return nil, core.ErrConflict
	}
	if s.nicknameTaken(u.Nickname, u.ID) {
		return nil, core.ErrConflict
	}
	c := clone(u)
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.byID[c.ID] = c
	s.email[key] = c.ID
	return clone(c), nil
}

func (s *Store) UpdateUser(ctx context.Context, u *core.User) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.byID[u.ID]
	if !ok {
		return nil, core.ErrNotFound
	}
	if s.nicknameTaken(u.Nickname, u.ID) {
		return nil, core.ErrConflict
	}
	c := clone(u)
	c.Email = prev.Email // el email no se edita por esta vía
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.byID[c.ID] = c
	return clone(c), nil
}

func (s *Store) nicknameTaken(nick *string, selfID string) bool {
	if nick == nil || *nick == "" {
		return false
	}
	for id, u := range s.byID {
		if id != selfID && u.Nickname != nil && strings.EqualFold(*u.Nickname, *nick) {
			return true
		}
	}
	return false
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() {}
