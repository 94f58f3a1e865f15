package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxFavorites is how many favorites one user may pin.
	MaxFavorites = 50

	maxHrefLength = 512
	maxNameLength = 200
)

// Favorite is a page a user pinned to the top of the palette.
type Favorite struct {
	ShopID      string
	UserRef     string
	Href        string
	Name        string
	Description string
	Position    int
	CreatedAt   time.Time
}

// RecentVisit is a page a user opened from the palette or navigation.
type RecentVisit struct {
	ShopID      string
	UserRef     string
	Href        string
	Name        string
	Description string
	VisitedAt   time.Time
}

// ValidateHref checks that href is an in-app path like "/calendar".
func ValidateHref(href string) error {
	if href == "" {
		return ErrInvalidHref
	}
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return ErrInvalidHref
	}
	if len(href) > maxHrefLength {
		return ErrInvalidHref
	}
	return nil
}

// ValidateFavorite validates a Favorite instance
func ValidateFavorite(f *Favorite) error {
	if f == nil {
		return fmt.Errorf("favorite cannot be nil")
	}
	if f.ShopID == "" || f.UserRef == "" {
		return ErrMissingRequiredField
	}
	if err := ValidateHref(f.Href); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" {
		return NewDomainError(ErrCodeValidation, "favorite name is required")
	}
	if len(f.Name) > maxNameLength {
		return NewDomainError(ErrCodeValidation, "favorite name is too long")
	}
	return nil
}

// ValidateRecentVisit validates a RecentVisit instance
func ValidateRecentVisit(v *RecentVisit) error {
	if v == nil {
		return fmt.Errorf("recent visit cannot be nil")
	}
	if v.ShopID == "" || v.UserRef == "" {
		return ErrMissingRequiredField
	}
	if err := ValidateHref(v.Href); err != nil {
		return err
	}
	if strings.TrimSpace(v.Name) == "" {
		return NewDomainError(ErrCodeValidation, "recent visit name is required")
	}
	if len(v.Name) > maxNameLength {
		return NewDomainError(ErrCodeValidation, "recent visit name is too long")
	}
	return nil
}
