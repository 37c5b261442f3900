package repository

import "gorm.io/gorm"

// Repositories struct holds all repository instances
type Repositories struct {
	User  UserRepository
	Order OrderRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Order: NewOrderRepository(db),
	}
}
