package repository

import (
	"context"
	"sync/atomic"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deferred is the process-wide product store handle. It starts empty while the
// database connection is being established and is set exactly once afterwards.
// Until then every call fails with ErrStoreUnavailable.
type Deferred struct {
	repo atomic.Pointer[ProductRepository]
}

// NewDeferred creates an empty handle
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Set installs the connected repository. Calls after the first are ignored.
func (d *Deferred) Set(repo ProductRepository) bool {
	return d.repo.CompareAndSwap(nil, &repo)
}

// Ready reports whether a repository has been installed
func (d *Deferred) Ready() bool {
	return d.repo.Load() != nil
}

func (d *Deferred) get() (ProductRepository, error) {
	p := d.repo.Load()
	if p == nil {
		return nil, ErrStoreUnavailable
	}
	return *p, nil
}

func (d *Deferred) Find(ctx context.Context, q models.ProductQuery) ([]models.Document, error) {
	repo, err := d.get()
	if err != nil {
		return nil, err
	}
	return repo.Find(ctx, q)
}

func (d *Deferred) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	repo, err := d.get()
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (d *Deferred) Create(ctx context.Context, product models.Product) (primitive.ObjectID, error) {
	repo, err := d.get()
	if err != nil {
		return primitive.NilObjectID, err
	}
	return repo.Create(ctx, product)
}

func (d *Deferred) Update(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	repo, err := d.get()
	if err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (d *Deferred) Delete(ctx context.Context, id primitive.ObjectID) error {
	repo, err := d.get()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}
