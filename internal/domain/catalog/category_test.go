package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid name", func(t *testing.T) {
		category, err := NewCategory("Textiles", "Woven goods")
		require.NoError(t, err)
		assert.Equal(t, "Textiles", category.Name)
		assert.Equal(t, "Woven goods", category.Description)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("trims whitespace from name", func(t *testing.T) {
		category, err := NewCategory("  Spices  ", "")
		require.NoError(t, err)
		assert.Equal(t, "Spices", category.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("   ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}
