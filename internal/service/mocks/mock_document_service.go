package mocks

import (
	"context"
	"time"

	"docportal/internal/model"
	"docportal/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, in service.UploadInput, token string) (*model.Document, error) {
	args := m.Called(ctx, in, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, id int64, token string) (*model.Document, error) {
	args := m.Called(ctx, id, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id int64, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockDocumentService) Search(ctx context.Context, params model.SearchParams, token string) (*model.Page[model.Document], error) {
	args := m.Called(ctx, params, token)
	return pageResult(args)
}

func (m *MockDocumentService) ByAuthor(ctx context.Context, author string, page, size int, token string) (*model.Page[model.Document], error) {
	args := m.Called(ctx, author, page, size, token)
	return pageResult(args)
}

func (m *MockDocumentService) ByTitle(ctx context.Context, title string, page, size int, token string) (*model.Page[model.Document], error) {
	args := m.Called(ctx, title, page, size, token)
	return pageResult(args)
}

func (m *MockDocumentService) ByType(ctx context.Context, docType model.DocumentType, page, size int, token string) (*model.Page[model.Document], error) {
	args := m.Called(ctx, docType, page, size, token)
	return pageResult(args)
}

func (m *MockDocumentService) ByDateRange(ctx context.Context, start, end time.Time, page, size int, token string) (*model.Page[model.Document], error) {
	args := m.Called(ctx, start, end, page, size, token)
	return pageResult(args)
}

func pageResult(args mock.Arguments) (*model.Page[model.Document], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Document]), args.Error(1)
}
