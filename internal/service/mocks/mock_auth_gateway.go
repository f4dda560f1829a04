package mocks

import (
	"context"

	"docportal/internal/model"
	"docportal/internal/service"
	"docportal/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, store *session.Store, w service.Responder, req model.LoginRequest) error {
	args := m.Called(ctx, store, w, req)
	return args.Error(0)
}

func (m *MockAuthGateway) Register(ctx context.Context, store *session.Store, w service.Responder, req model.RegisterRequest) error {
	args := m.Called(ctx, store, w, req)
	return args.Error(0)
}

func (m *MockAuthGateway) Logout(ctx context.Context, store *session.Store, w service.Responder) error {
	args := m.Called(ctx, store, w)
	return args.Error(0)
}
