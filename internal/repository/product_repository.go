package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrStoreUnavailable = errors.New("product store not initialised")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Find(ctx context.Context, q models.ProductQuery) ([]models.Document, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Iteration follows insertion order, like a collection's natural order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
	order    []primitive.ObjectID
}

// NewInMemoryProductRepository creates a new in-memory product repository holding the given products.
// Each seed product is assigned a fresh ID.
func NewInMemoryProductRepository(seed ...models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[primitive.ObjectID]models.Product, len(seed)),
	}
	for _, p := range seed {
		r.insert(p)
	}
	return r
}

// DefaultCatalog is the sample data loaded when running without a database
func DefaultCatalog() []models.Product {
	return []models.Product{
		{Name: "Chicken Waffle", Price: 12.99, Category: "Waffle"},
		{Name: "Belgian Waffle", Price: 10.99, Category: "Waffle"},
		{Name: "Chocolate Waffle", Price: 11.99, Category: "Waffle"},
		{Name: "Caesar Salad", Price: 8.99, Category: "Salad"},
		{Name: "Greek Salad", Price: 9.49, Category: "Salad"},
		{Name: "Garden Salad", Price: 7.99, Category: "Salad"},
		{Name: "Margherita Pizza", Price: 14.99, Category: "Pizza"},
		{Name: "Pepperoni Pizza", Price: 16.99, Category: "Pizza"},
		{Name: "Veggie Pizza", Price: 15.49, Category: "Pizza"},
		{Name: "Classic Burger", Price: 13.99, Category: "Burger"},
	}
}

func (r *InMemoryProductRepository) insert(p models.Product) primitive.ObjectID {
	p.ID = primitive.NewObjectID()
	r.products[p.ID] = p
	r.order = append(r.order, p.ID)
	return p.ID
}

// Find returns the products matching the query's filter, in the requested order and projection
func (r *InMemoryProductRepository) Find(ctx context.Context, q models.ProductQuery) ([]models.Document, error) {
	r.mu.RLock()
	matched := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if q.Category != nil && p.Category != *q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		matched = append(matched, p)
	}
	r.mu.RUnlock()

	switch q.Sort {
	case models.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}

	docs := make([]models.Document, 0, len(matched))
	for _, p := range matched {
		docs = append(docs, project(p, q.Fields))
	}
	return docs, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create stores a product under a newly assigned ID
func (r *InMemoryProductRepository) Create(ctx context.Context, product models.Product) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(product), nil
}

// Update applies the non-nil fields of upd and returns the stored result
func (r *InMemoryProductRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Category != nil {
		product.Category = *upd.Category
	}
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID
func (r *InMemoryProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return ErrProductNotFound
	}
	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// project converts a product into a list document holding only the requested fields.
// A nil field list keeps every field.
func project(p models.Product, fields []string) models.Document {
	full := models.Document{
		"id":       p.ID,
		"name":     p.Name,
		"price":    p.Price,
		"category": p.Category,
	}
	if fields == nil {
		return full
	}

	doc := make(models.Document, len(fields))
	for _, f := range fields {
		if f == "_id" {
			f = "id"
		}
		if v, ok := full[f]; ok {
			doc[f] = v
		}
	}
	return doc
}
