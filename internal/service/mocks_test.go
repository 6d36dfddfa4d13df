package service

import (
	"context"
	"errors"

	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
)

// Map-backed mock repositories shared by the service tests.

type mockProductRepository struct {
	products  []*domain.Product
	createErr error
	searchErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: []*domain.Product{}}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = product
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	matched := []*domain.Product{}
	for _, p := range m.products {
		if filter.Matches(*p) {
			clone := *p
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

type mockBadgeRepository struct {
	badges    map[uuid.UUID][]domain.BadgeType
	attachErr error
	listErr   error
	attaches  int
}

func newMockBadgeRepository() *mockBadgeRepository {
	return &mockBadgeRepository{badges: make(map[uuid.UUID][]domain.BadgeType)}
}

func (m *mockBadgeRepository) Attach(ctx context.Context, productID uuid.UUID, badge domain.BadgeType) error {
	if m.attachErr != nil {
		return m.attachErr
	}
	m.attaches++
	for _, b := range m.badges[productID] {
		if b == badge {
			return nil
		}
	}
	m.badges[productID] = append(m.badges[productID], badge)
	return nil
}

func (m *mockBadgeRepository) Exists(ctx context.Context, productID uuid.UUID, badge domain.BadgeType) (bool, error) {
	for _, b := range m.badges[productID] {
		if b == badge {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBadgeRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.BadgeType, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.badges[productID], nil
}

func (m *mockBadgeRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	delete(m.badges, productID)
	return nil
}

func (m *mockBadgeRepository) has(productID uuid.UUID, badge domain.BadgeType) bool {
	for _, b := range m.badges[productID] {
		if b == badge {
			return true
		}
	}
	return false
}

type mockReviewRepository struct {
	reviews   map[uuid.UUID][]*domain.Review
	createErr error
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{reviews: make(map[uuid.UUID][]*domain.Review)}
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.reviews[review.ProductID] = append(m.reviews[review.ProductID], review)
	return nil
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	return m.reviews[productID], nil
}

func (m *mockReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	reviews := m.reviews[productID]
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews), nil
}

type mockSellerRepository struct {
	sellers map[uuid.UUID]*domain.Seller
}

func newMockSellerRepository() *mockSellerRepository {
	return &mockSellerRepository{sellers: make(map[uuid.UUID]*domain.Seller)}
}

func (m *mockSellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	for _, s := range m.sellers {
		if s.UserID == seller.UserID {
			return repository.ErrSellerAlreadyExists
		}
	}
	m.sellers[seller.ID] = seller
	return nil
}

func (m *mockSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	seller, exists := m.sellers[id]
	if !exists {
		return nil, repository.ErrSellerNotFound
	}
	return seller, nil
}

func (m *mockSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	for _, s := range m.sellers {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, repository.ErrSellerNotFound
}

func (m *mockSellerRepository) ListTop(ctx context.Context, limit int) ([]*domain.Seller, error) {
	top := []*domain.Seller{}
	for _, s := range m.sellers {
		top = append(top, s)
		if len(top) == limit {
			break
		}
	}
	return top, nil
}

type mockSearchHistoryRepository struct {
	entries   []*domain.SearchHistoryEntry
	createErr error
	listErr   error
}

func newMockSearchHistoryRepository() *mockSearchHistoryRepository {
	return &mockSearchHistoryRepository{entries: []*domain.SearchHistoryEntry{}}
}

func (m *mockSearchHistoryRepository) Create(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	// newest first, matching the SQL ORDER BY
	m.entries = append([]*domain.SearchHistoryEntry{entry}, m.entries...)
	return nil
}

func (m *mockSearchHistoryRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.SearchHistoryEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	recent := []*domain.SearchHistoryEntry{}
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		recent = append(recent, e)
		if len(recent) == limit {
			break
		}
	}
	return recent, nil
}

type mockTaxonomyRepository struct {
	categories []string
	locations  []string
}

func (m *mockTaxonomyRepository) ListCategories(ctx context.Context) ([]string, error) {
	return m.categories, nil
}

func (m *mockTaxonomyRepository) ListLocations(ctx context.Context) ([]string, error) {
	return m.locations, nil
}

type mockFavoriteRepository struct {
	favorites map[uuid.UUID]map[uuid.UUID]bool // userID -> productID set
	products  map[uuid.UUID]*domain.Product
}

func newMockFavoriteRepository() *mockFavoriteRepository {
	return &mockFavoriteRepository{
		favorites: make(map[uuid.UUID]map[uuid.UUID]bool),
		products:  make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockFavoriteRepository) Add(ctx context.Context, productID, userID uuid.UUID) error {
	if m.favorites[userID] == nil {
		m.favorites[userID] = make(map[uuid.UUID]bool)
	}
	m.favorites[userID][productID] = true
	return nil
}

func (m *mockFavoriteRepository) Remove(ctx context.Context, productID, userID uuid.UUID) error {
	delete(m.favorites[userID], productID)
	return nil
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	return m.favorites[userID][productID], nil
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	listed := []*domain.Product{}
	for productID := range m.favorites[userID] {
		if p, ok := m.products[productID]; ok {
			clone := *p
			listed = append(listed, &clone)
		}
	}
	return listed, nil
}

type mockOrderRepository struct {
	orders    map[uuid.UUID]*domain.Order
	createErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	listed := []*domain.Order{}
	for _, o := range m.orders {
		if o.BuyerID == buyerID {
			listed = append(listed, o)
		}
	}
	return listed, nil
}

func (m *mockOrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error) {
	listed := []*domain.Order{}
	for _, o := range m.orders {
		if o.SellerID == sellerID {
			listed = append(listed, o)
		}
	}
	return listed, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, exists := m.orders[id]
	if !exists {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

type mockMessageRepository struct {
	messages []*domain.Message
}

func newMockMessageRepository() *mockMessageRepository {
	return &mockMessageRepository{messages: []*domain.Message{}}
}

func (m *mockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	listed := []*domain.Message{}
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.RecipientID == userID {
			listed = append(listed, msg)
		}
	}
	return listed, nil
}

// mockCatalog records the filter it was last searched with and serves a
// canned result, so recommendation tests can assert on facet selection.
type mockCatalog struct {
	lastFilter domain.SearchFilter
	searches   int
	results    []*domain.Product
}

func (m *mockCatalog) Search(ctx context.Context, filter domain.SearchFilter) []*domain.Product {
	m.lastFilter = filter
	m.searches++
	// The real service never returns nil, even on a failed backend.
	if m.results == nil {
		return []*domain.Product{}
	}
	return m.results
}

func (m *mockCatalog) RecordSearch(ctx context.Context, userID uuid.UUID, query string, category, location *string) {
}

func (m *mockCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalog) AddProduct(ctx context.Context, sellerID uuid.UUID, input NewProductInput) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalog) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductUpdateInput) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (m *mockCatalog) Categories(ctx context.Context) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalog) Locations(ctx context.Context) ([]string, error) {
	return nil, errors.New("not implemented")
}
