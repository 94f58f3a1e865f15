package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShop(t *testing.T) {
	now := time.Now()
	shop := NewShop("shop1", "Fade Factory", now)

	assert.Equal(t, "shop1", shop.ID)
	assert.Equal(t, "Fade Factory", shop.Name)
	assert.Equal(t, now, shop.CreatedAt)
}

func TestValidateShop(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		shop    *Shop
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid shop",
			shop:    &Shop{ID: "shop1", Name: "Fade Factory", CreatedAt: now},
			wantErr: false,
		},
		{
			name:    "nil shop",
			shop:    nil,
			wantErr: true,
			errMsg:  "nil",
		},
		{
			name:    "missing ID",
			shop:    &Shop{Name: "Fade Factory", CreatedAt: now},
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name:    "missing Name",
			shop:    &Shop{ID: "shop1", CreatedAt: now},
			wantErr: true,
			errMsg:  "Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShop(tt.shop)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
