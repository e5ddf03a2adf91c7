package repositories

import (
	"fmt"
	"sort"
	"sync"

	"gudang/internal/models"
)

// MemoryStore is a volatile, in-process store shared by the Memory*
// repositories. A single mutex guards every table so that a sale's stock
// check and decrement cannot interleave with another mutation.
type MemoryStore struct {
	mu       sync.RWMutex
	products []models.Product // index is ID-1
	sales    []models.Sale    // index is ID-1
	users    map[string]models.User
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
	}
}

// Products returns a ProductRepository backed by the store.
func (s *MemoryStore) Products() *MemoryProductRepository {
	return &MemoryProductRepository{store: s}
}

// Sales returns a SaleRepository backed by the store.
func (s *MemoryStore) Sales() *MemorySaleRepository {
	return &MemorySaleRepository{store: s}
}

// Users returns a UserRepository backed by the store.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

// Reports returns a ReportRepository backed by the store.
func (s *MemoryStore) Reports() *MemoryReportRepository {
	return &MemoryReportRepository{store: s}
}

// product must be called with mu held.
func (s *MemoryStore) product(id int64) (*models.Product, error) {
	if id < 1 || id > int64(len(s.products)) {
		return nil, fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
	}
	return &s.products[id-1], nil
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	store *MemoryStore
}

// GetAll returns all products in id order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	productList := make([]models.Product, len(r.store.products))
	copy(productList, r.store.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id int64) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, err := r.store.product(id)
	if err != nil {
		return nil, err
	}
	found := *product
	return &found, nil
}

// Create adds a new product and assigns the next ID.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product.ID = int64(len(r.store.products)) + 1
	r.store.products = append(r.store.products, *product)
	return nil
}

// UpdateStock overwrites the stock of product id.
func (r *MemoryProductRepository) UpdateStock(id int64, stock int) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, err := r.store.product(id)
	if err != nil {
		return nil, err
	}
	product.Stock = stock
	updated := *product
	return &updated, nil
}

// MemorySaleRepository is an in-memory implementation of SaleRepository.
type MemorySaleRepository struct {
	store *MemoryStore
}

// GetAll returns every sale, newest first.
func (r *MemorySaleRepository) GetAll() ([]models.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	saleList := make([]models.Sale, 0, len(r.store.sales))
	for i := len(r.store.sales) - 1; i >= 0; i-- {
		saleList = append(saleList, r.store.sales[i])
	}
	return saleList, nil
}

// Record checks stock, decrements it and appends the sale under the store lock.
func (r *MemorySaleRepository) Record(sale *models.Sale) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, err := r.store.product(sale.ProductID)
	if err != nil {
		return nil, err
	}
	if sale.QuantitySold > product.Stock {
		return nil, insufficientStock(product, sale.QuantitySold)
	}

	product.Stock -= sale.QuantitySold
	sale.ID = int64(len(r.store.sales)) + 1
	r.store.sales = append(r.store.sales, *sale)
	updated := *product
	return &updated, nil
}

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	store *MemoryStore
}

// Create adds user unless the username is taken.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.Username]; ok {
		return fmt.Errorf("%w: %s", models.ErrDuplicateUsername, user.Username)
	}
	r.store.users[user.Username] = *user
	return nil
}

// GetByUsername returns the user with the given username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[username]
	if !ok {
		return nil, fmt.Errorf("user with username %s: %w", username, models.ErrNotFound)
	}
	return &user, nil
}

// MemoryReportRepository is an in-memory implementation of ReportRepository.
type MemoryReportRepository struct {
	store *MemoryStore
}

// CountProducts returns the number of products.
func (r *MemoryReportRepository) CountProducts() (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.products)), nil
}

// SaleValueLines pairs each sale's quantity with its product's current price.
func (r *MemoryReportRepository) SaleValueLines() ([]models.ValueLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := make([]models.ValueLine, 0, len(r.store.sales))
	for _, sale := range r.store.sales {
		product, err := r.store.product(sale.ProductID)
		if err != nil {
			continue // inner join semantics
		}
		lines = append(lines, models.ValueLine{Price: product.Price, Quantity: sale.QuantitySold})
	}
	return lines, nil
}

// StockValueLines returns price and stock for every product.
func (r *MemoryReportRepository) StockValueLines() ([]models.ValueLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := make([]models.ValueLine, 0, len(r.store.products))
	for _, product := range r.store.products {
		lines = append(lines, models.ValueLine{Price: product.Price, Quantity: product.Stock})
	}
	return lines, nil
}

// SalesBetween returns sales dated within [start, end], newest first.
func (r *MemoryReportRepository) SalesBetween(start, end string) ([]models.SalesReportRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := []models.SalesReportRow{}
	for _, sale := range r.store.sales {
		if sale.Date < start || sale.Date > end {
			continue
		}
		product, err := r.store.product(sale.ProductID)
		if err != nil {
			continue
		}
		rows = append(rows, models.SalesReportRow{
			SaleID:       sale.ID,
			ProductName:  product.Name,
			QuantitySold: sale.QuantitySold,
			Date:         sale.Date,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].SaleID > rows[j].SaleID
	})
	return rows, nil
}
