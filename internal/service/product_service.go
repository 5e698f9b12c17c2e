package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/catalog-api/internal/domain"
	apperrors "github.com/spec-kit/catalog-api/pkg/util/errorutil"
)

const (
	DisconnectedProductID = 999
	UncataloguedProductID = 998
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// errCatalogOffline is the simulated transport failure behind connectivity errors.
var errCatalogOffline = errors.New("catalog store unreachable")

// ProductService serves product lookups from a fixed in-memory catalog.
type ProductService struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// NewProductService constructs the service. A nil slice uses DefaultProducts.
func NewProductService(products []domain.Product) *ProductService {
	if products == nil {
		products = DefaultProducts()
	}
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &ProductService{products: products, byID: byID}
}

func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Laptop", Price: 99999, Stock: 12},
		{ID: 2, Name: "Mouse", Price: 2999, Stock: 140},
		{ID: 3, Name: "Keyboard", Price: 7999, Stock: 56},
	}
}

func (s *ProductService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// SimulateFailure processes id, failing for the reserved IDs.
func (s *ProductService) SimulateFailure(ctx context.Context, id int) (string, error) {
	switch id {
	case DisconnectedProductID:
		return "", apperrors.NewConnectivityFailure("Database connection failed", errCatalogOffline)
	case UncataloguedProductID:
		return "", apperrors.NewMissingKey("Product not found in catalog", map[string]any{"product_id": id})
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Product %d processed successfully", id), nil
}
