package postgres

import (
	"context"
	"fmt"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/internal/repository"
)

const listProductsQuery = `
	SELECT
		id_producto,
		COALESCE(title, '') AS title,
		NULLIF(TRIM(brand), '') AS brand,
		normal_price,
		low_price,
		high_price,
		COALESCE(oferta, FALSE) AS oferta,
		COALESCE(sin_stock, FALSE) AS sin_stock,
		ahorro,
		ahorro_percent
	FROM productos
	ORDER BY id_producto
`

type productRepository struct {
	db *DB
}

// NewProductRepository reads the catalog from the productos table.
func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.withReadSlot(ctx, func() error {
		return r.db.SelectContext(ctx, &products, listProductsQuery)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}
