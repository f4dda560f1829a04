package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Load(ctx context.Context, clientID string) (map[string]string, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockStorage) Save(ctx context.Context, clientID string, values map[string]string) error {
	args := m.Called(ctx, clientID, values)
	return args.Error(0)
}

func (m *MockStorage) Remove(ctx context.Context, clientID string, keys ...string) error {
	args := m.Called(ctx, clientID, keys)
	return args.Error(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
