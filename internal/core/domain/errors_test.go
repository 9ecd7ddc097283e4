package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrAccessDenied", ErrAccessDenied},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrAuthInvalid", ErrAuthInvalid},
		{"ErrTokenRefreshFailed", ErrTokenRefreshFailed},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrStoreClosed", ErrStoreClosed},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("query contacts: %w", ErrStoreUnavailable)

	assert.True(t, errors.Is(wrapped, ErrStoreUnavailable))
	assert.False(t, errors.Is(wrapped, ErrAccessDenied))
}
