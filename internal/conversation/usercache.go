package conversation

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuure-health/booking-bot/internal/storage"
)

// Profile is the registered identity cached per phone number.
type Profile struct {
	Name string
	Age  int
}

// RegisteredSource lists registered users from the durable store.
type RegisteredSource interface {
	All(ctx context.Context) ([]storage.User, error)
}

// UserCache is the in-memory registration lookup consulted on every inbound
// event. Hydrated from the users table at startup and appended to when a
// registration completes.
type UserCache struct {
	mu    sync.RWMutex
	users map[string]Profile
}

// NewUserCache creates an empty cache.
func NewUserCache() *UserCache {
	return &UserCache{users: make(map[string]Profile)}
}

// Hydrate loads every registered user. Call once at startup.
func (c *UserCache) Hydrate(ctx context.Context, src RegisteredSource) error {
	users, err := src.All(ctx)
	if err != nil {
		return fmt.Errorf("conversation: hydrate user cache: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range users {
		c.users[u.Phone] = Profile{Name: u.Name, Age: u.Age}
	}
	return nil
}

// Get returns the cached profile for the phone, if registered.
func (c *UserCache) Get(phone string) (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.users[phone]
	return p, ok
}

// Put records a completed registration. Later registrations overwrite.
func (c *UserCache) Put(phone string, p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[phone] = p
}
