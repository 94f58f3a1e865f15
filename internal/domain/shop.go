package domain

import (
	"fmt"
	"time"
)

// Shop is a tenant: one barbershop business with its own staff and keys.
type Shop struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewShop creates a new Shop instance
func NewShop(id, name string, createdAt time.Time) *Shop {
	return &Shop{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
	}
}

// ValidateShop validates a Shop instance
func ValidateShop(s *Shop) error {
	if s == nil {
		return fmt.Errorf("shop cannot be nil")
	}

	if s.ID == "" {
		return fmt.Errorf("shop ID is required")
	}

	if s.Name == "" {
		return fmt.Errorf("shop Name is required")
	}

	return nil
}
