package domain

import (
	"fmt"
	"time"
)

// APIKey authenticates one staff member of a shop. The key carries the
// member's role so the palette can be filtered without another lookup.
type APIKey struct {
	ID        string
	ShopID    string
	UserRef   string
	Role      Role
	Name      string
	KeyHash   string // Never store plaintext keys
	CreatedAt time.Time
	RevokedAt *time.Time
}

// NewAPIKey creates a new APIKey instance
func NewAPIKey(id, shopID, userRef string, role Role, name, keyHash string, createdAt time.Time, revokedAt *time.Time) *APIKey {
	return &APIKey{
		ID:        id,
		ShopID:    shopID,
		UserRef:   userRef,
		Role:      role,
		Name:      name,
		KeyHash:   keyHash,
		CreatedAt: createdAt,
		RevokedAt: revokedAt,
	}
}

// IsRevoked returns true if the API key has been revoked
func (a *APIKey) IsRevoked() bool {
	return a.RevokedAt != nil
}

// Principal returns the identity the key authenticates.
func (a *APIKey) Principal() *Principal {
	return &Principal{
		KeyID:   a.ID,
		ShopID:  a.ShopID,
		UserRef: a.UserRef,
		Role:    a.Role,
	}
}

// ValidateAPIKey validates an APIKey instance
func ValidateAPIKey(a *APIKey) error {
	if a == nil {
		return fmt.Errorf("api key cannot be nil")
	}

	if a.ID == "" {
		return fmt.Errorf("api key ID is required")
	}

	if a.ShopID == "" {
		return fmt.Errorf("api key ShopID is required")
	}

	if a.UserRef == "" {
		return fmt.Errorf("api key UserRef is required")
	}

	if !a.Role.IsValid() {
		return fmt.Errorf("api key Role %q is invalid", a.Role)
	}

	if a.Name == "" {
		return fmt.Errorf("api key Name is required")
	}

	if a.KeyHash == "" {
		return fmt.Errorf("api key KeyHash is required")
	}

	return nil
}

// Principal is the authenticated caller of a request.
type Principal struct {
	KeyID   string
	ShopID  string
	UserRef string
	Role    Role
}
