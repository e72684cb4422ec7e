package transport

import (
	"context"

	"storefront/internal/search"
	"storefront/internal/service"
)

// stubUserService returns canned results and records what it was called with
type stubUserService struct {
	createResult service.Result
	listResult   service.Result
	getResult    service.Result
	updateResult service.Result
	deleteResult service.Result

	lastCreateInput service.CreateUserInput
	lastUpdateInput service.UpdateUserInput
	lastID          string
	createCalls     int
}

func (s *stubUserService) CreateUser(ctx context.Context, input service.CreateUserInput) service.Result {
	s.createCalls++
	s.lastCreateInput = input
	return s.createResult
}

func (s *stubUserService) ListUsers(ctx context.Context) service.Result {
	return s.listResult
}

func (s *stubUserService) GetUser(ctx context.Context, id string) service.Result {
	s.lastID = id
	return s.getResult
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, input service.UpdateUserInput) service.Result {
	s.lastID = id
	s.lastUpdateInput = input
	return s.updateResult
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) service.Result {
	s.lastID = id
	return s.deleteResult
}

type stubProductService struct {
	createResult service.Result
	getResult    service.Result
	listResult   service.Result
	updateResult service.Result
	deleteResult service.Result

	lastCreateInput service.CreateProductInput
	lastListParams  service.ListParams
	lastID          int64
}

func (s *stubProductService) CreateProduct(ctx context.Context, input service.CreateProductInput) service.Result {
	s.lastCreateInput = input
	return s.createResult
}

func (s *stubProductService) GetProduct(ctx context.Context, id int64) service.Result {
	s.lastID = id
	return s.getResult
}

func (s *stubProductService) ListProducts(ctx context.Context, params service.ListParams) service.Result {
	s.lastListParams = params
	return s.listResult
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id int64, input service.UpdateProductInput) service.Result {
	s.lastID = id
	return s.updateResult
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id int64) service.Result {
	s.lastID = id
	return s.deleteResult
}

type stubSearcher struct {
	result    *search.SearchResult
	err       error
	lastQuery string
	lastPage  int
	lastSize  int
}

func (s *stubSearcher) SearchProducts(ctx context.Context, query string, page, pageSize int) (*search.SearchResult, error) {
	s.lastQuery = query
	s.lastPage = page
	s.lastSize = pageSize
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}
