package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the item collection the handlers work against.
type Store interface {
	// Insert adds a new item. The ID must not already be present.
	Insert(item Item)
	// Get returns a copy of the item or ErrNotFound.
	Get(id uuid.UUID) (Item, error)
	// Update applies the non-nil fields of patch, refreshes UpdatedAt and
	// returns the updated copy, or ErrNotFound.
	Update(id uuid.UUID, patch ItemPatch) (Item, error)
	// Remove deletes the item and reports whether it existed.
	Remove(id uuid.UUID) bool
	// List returns a snapshot of all items in no particular order.
	List() []Item
	// Len returns the number of items.
	Len() int
}

// MemoryStore keeps items in a process-local map guarded by a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Item
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[uuid.UUID]Item),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Insert stores a new item.
func (s *MemoryStore) Insert(item Item) {
	item = item.clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// Get retrieves an item by ID.
func (s *MemoryStore) Get(id uuid.UUID) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item.clone(), nil
}

// Update modifies an existing item in place.
func (s *MemoryStore) Update(id uuid.UUID, patch ItemPatch) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		d := *patch.Description
		item.Description = &d
	}
	// UpdatedAt must move forward even when the clock does not.
	now := s.now()
	if !now.After(item.UpdatedAt) {
		now = item.UpdatedAt.Add(time.Nanosecond)
	}
	item.UpdatedAt = now
	s.items[id] = item
	return item.clone(), nil
}

// Remove deletes an item by ID.
func (s *MemoryStore) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// List returns all items in the store.
func (s *MemoryStore) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item.clone())
	}
	return items
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
