package service

import (
	"context"
	"net/url"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService validates product requests and passes them to the repository.
// Every input check happens before the repository is called.
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the products matching the query string
func (s *ProductService) ListProducts(ctx context.Context, values url.Values) ([]models.Document, error) {
	q, err := ParseProductQuery(values)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, q)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

// CreateProduct validates and stores a new product, returning the assigned ID
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (primitive.ObjectID, error) {
	product, err := ValidateCreate(in)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct applies a partial update and returns the updated product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	upd, err := ValidateUpdate(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, oid, upd)
}

// DeleteProduct removes a product by ID
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}
