package domain

// Product is a catalog entry. Price is in cents.
type Product struct {
	ID    int
	Name  string
	Price int64
	Stock int
}
