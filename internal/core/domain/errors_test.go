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
		{"ErrEmptySubject", ErrEmptySubject},
		{"ErrNotConfigured", ErrNotConfigured},
		{"ErrProviderFailed", ErrProviderFailed},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrUnauthorized", ErrUnauthorized},
		{"ErrSearchSuperseded", ErrSearchSuperseded},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that no sentinel matches another
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrEmptySubject, ErrNotConfigured,
		ErrProviderFailed, ErrRateLimited, ErrUnauthorized,
		ErrSearchSuperseded, ErrStoreUnavailable,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors can be unwrapped
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", ErrProviderFailed, ErrRateLimited)

	assert.True(t, errors.Is(wrapped, ErrProviderFailed))
	assert.True(t, errors.Is(wrapped, ErrRateLimited))
	assert.False(t, errors.Is(wrapped, ErrUnauthorized))
}

// TestErrNotConfigured tests the configuration error message
func TestErrNotConfigured(t *testing.T) {
	assert.Equal(t, "search provider not configured", ErrNotConfigured.Error())
}
