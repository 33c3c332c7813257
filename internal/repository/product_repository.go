package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Lixing-Zhang/product-service/internal/models"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) error
	Delete(ctx context.Context, id int64) error
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// It backs handler and router tests; the server always uses SQL Server.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products map[int64]models.Product
	nextID   int64
	err      error
}

// NewInMemoryProductRepository creates a repository holding the given products
func NewInMemoryProductRepository(seed ...models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[int64]models.Product, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		r.products[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

// FailWith makes every subsequent call return err, simulating an unreachable database
func (r *InMemoryProductRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// GetAll returns all products ordered by ID
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}

	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// Create stores a new product, rejecting NULL columns the way a NOT NULL table does
func (r *InMemoryProductRepository) Create(ctx context.Context, req models.CreateProductRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	if req.Name == nil {
		return errNullColumn("Name")
	}
	if req.Price == nil {
		return errNullColumn("Price")
	}

	id := r.nextID
	r.nextID++
	r.products[id] = models.NewProduct(id, *req.Name, *req.Price)
	return nil
}

// Delete removes the product if present
func (r *InMemoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	delete(r.products, id)
	return nil
}

type nullColumnError string

func errNullColumn(column string) error { return nullColumnError(column) }

func (e nullColumnError) Error() string {
	return "Cannot insert the value NULL into column '" + string(e) + "', table 'Products'; column does not allow nulls. INSERT fails."
}
