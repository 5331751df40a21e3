// Package store provides in-memory item storage for the vending machine.
package store

import (
	"sort"
	"sync"

	"vending-sim/internal/domain"
)

// Inventory defines the interface for item storage.
type Inventory interface {
	// Load replaces the whole catalog with items.
	Load(items []domain.Item) error
	Get(id int) (domain.Item, error)
	List() ([]domain.Item, error)
	// Decrement removes one unit of stock from item id.
	Decrement(id int) error
}

// MemoryStore is an in-memory implementation of Inventory.
type MemoryStore struct {
	items map[int]domain.Item
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[int]domain.Item),
	}
}

// Load replaces the stored items. Items are copied by value.
func (s *MemoryStore) Load(items []domain.Item) error {
	next := make(map[int]domain.Item, len(items))
	for _, item := range items {
		next[item.ID] = item
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	return nil
}

// Get retrieves an item by ID.
func (s *MemoryStore) Get(id int) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.items[id]
	if !exists {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

// List returns all items sorted by ID.
func (s *MemoryStore) List() ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]domain.Item, 0, len(s.items))
	for _, id := range ids {
		result = append(result, s.items[id])
	}
	return result, nil
}

// Decrement takes one unit out of stock. Stock never goes below zero.
func (s *MemoryStore) Decrement(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, exists := s.items[id]
	if !exists {
		return domain.ErrItemNotFound
	}
	if item.Stock <= 0 {
		return domain.ErrOutOfStock
	}
	item.Stock--
	s.items[id] = item
	return nil
}
