package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/search"
)

// Map-backed repository fakes shared by the service tests

type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by ID
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, u := range m.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context, roleID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, u := range m.users {
		if u.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

type mockRoleRepository struct {
	mu     sync.Mutex
	nextID int64
	roles  map[int64]*domain.Role
}

func newMockRoleRepository() *mockRoleRepository {
	m := &mockRoleRepository{nextID: 1, roles: make(map[int64]*domain.Role)}
	m.roles[1] = &domain.Role{ID: 1, Name: "admin"}
	m.roles[2] = &domain.Role{ID: 2, Name: "customer"}
	m.nextID = 3
	return m
}

func (m *mockRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Name == role.Name {
			return repository.ErrDuplicateRole
		}
	}
	role.ID = m.nextID
	m.nextID++
	cp := *role
	m.roles[role.ID] = &cp
	return nil
}

func (m *mockRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Role, 0, len(m.roles))
	for _, r := range m.roles {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrRoleNotFound
}

func (m *mockRoleRepository) Update(ctx context.Context, role *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[role.ID]; !ok {
		return repository.ErrRoleNotFound
	}
	cp := *role
	m.roles[role.ID] = &cp
	return nil
}

func (m *mockRoleRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return repository.ErrRoleNotFound
	}
	delete(m.roles, id)
	return nil
}

type mockProductRepository struct {
	mu         sync.Mutex
	nextID     int64
	products   map[int64]*domain.Product
	categories *mockCategoryRepository
}

func newMockProductRepository(categories *mockCategoryRepository) *mockProductRepository {
	return &mockProductRepository{nextID: 1, products: make(map[int64]*domain.Product), categories: categories}
}

func (m *mockProductRepository) categoryExists(id int64) bool {
	if m.categories == nil {
		return true
	}
	_, err := m.categories.FindByID(context.Background(), id)
	return err == nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.categoryExists(product.CategoryID) {
		return repository.ErrCategoryMissing
	}
	product.ID = m.nextID
	m.nextID++
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	if !m.categoryExists(product.CategoryID) {
		return repository.ErrCategoryMissing
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, p := range m.products {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (m *mockProductRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	q := strings.ToLower(query)
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *mockProductRepository) IncrementViewCount(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.ViewCount++
	return nil
}

type mockCategoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{nextID: 1, categories: make(map[int64]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category.ParentID != nil {
		if _, ok := m.categories[*category.ParentID]; !ok {
			return repository.ErrCategoryNotFound
		}
	}
	category.ID = m.nextID
	m.nextID++
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type mockReviewRepository struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]*domain.Review
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{nextID: 1, reviews: make(map[int64]*domain.Review)}
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review.ID = m.nextID
	m.nextID++
	cp := *review
	m.reviews[review.ID] = &cp
	return nil
}

func (m *mockReviewRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID int64, page, pageSize int) ([]*domain.Review, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

func (m *mockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	cp := *review
	m.reviews[review.ID] = &cp
	return nil
}

func (m *mockReviewRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewRepository) AverageRating(ctx context.Context, productID int64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum, count := 0, 0
	for _, r := range m.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

type mockRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

// mockIndexer records indexing activity so tests can assert on it
type mockIndexer struct {
	mu      sync.Mutex
	indexed map[int64]search.ProductDocument
	deleted []int64
	failing bool
}

func newMockIndexer() *mockIndexer {
	return &mockIndexer{indexed: make(map[int64]search.ProductDocument)}
}

func (m *mockIndexer) IndexProduct(ctx context.Context, doc search.ProductDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return context.DeadlineExceeded
	}
	m.indexed[doc.ID] = doc
	return nil
}

func (m *mockIndexer) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return context.DeadlineExceeded
	}
	m.deleted = append(m.deleted, id)
	return nil
}
