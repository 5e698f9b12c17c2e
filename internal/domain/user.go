package domain

// User is a read-only account record served by the catalog API.
type User struct {
	ID    int
	Name  string
	Email string
}
