// backend-go/internal/repository/product_repository.go
package repository

import (
	"context"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// ProductRepository reads the product catalog. Implementations never write.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

// StaticProductRepository serves a fixed catalog held in memory.
type StaticProductRepository struct {
	products []*domain.Product
}

func NewStaticProductRepository(products []*domain.Product) *StaticProductRepository {
	return &StaticProductRepository{products: products}
}

func (r *StaticProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
