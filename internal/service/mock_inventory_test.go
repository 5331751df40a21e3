package service

import (
	"vending-sim/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockInventory is a mock implementation of store.Inventory for testing.
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) Load(items []domain.Item) error {
	args := m.Called(items)
	return args.Error(0)
}

func (m *MockInventory) Get(id int) (domain.Item, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockInventory) List() ([]domain.Item, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockInventory) Decrement(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
