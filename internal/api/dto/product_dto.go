package dto

import "github.com/spec-kit/catalog-api/internal/domain"

// ProductResponse is the public shape of a product. Price is a decimal amount.
type ProductResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: float64(p.Price) / 100, Stock: p.Stock}
}

func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
