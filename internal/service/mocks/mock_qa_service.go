package mocks

import (
	"context"

	"docportal/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockQAService struct {
	mock.Mock
}

func (m *MockQAService) Ask(ctx context.Context, question, token string) (*model.QuestionResponse, error) {
	args := m.Called(ctx, question, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionResponse), args.Error(1)
}

func (m *MockQAService) SearchKeyword(ctx context.Context, keyword string, page, size int, token string) (*model.Page[model.Document], error) {
	args := m.Called(ctx, keyword, page, size, token)
	return pageResult(args)
}

func (m *MockQAService) Snippets(ctx context.Context, documentID int64, keyword, token string) (*model.QuestionResponse, error) {
	args := m.Called(ctx, documentID, keyword, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionResponse), args.Error(1)
}
