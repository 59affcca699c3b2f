package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatic_ListProcesses(t *testing.T) {
	t.Run("returns all names", func(t *testing.T) {
		src := NewStatic("web-1", "web-2", "indexer")

		result, err := src.ListProcesses(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 3)
		require.Equal(t, []string{"web-1", "web-2", "indexer"}, result)
	})

	t.Run("returns empty list when no names", func(t *testing.T) {
		src := NewStatic()

		result, err := src.ListProcesses(context.Background())

		require.NoError(t, err)
		require.Empty(t, result)
	})

	t.Run("does not share backing storage with caller", func(t *testing.T) {
		src := NewStatic("web-1")

		result, err := src.ListProcesses(context.Background())
		require.NoError(t, err)

		// Modify returned slice
		result[0] = "mutated"

		// Original should be unchanged
		result2, _ := src.ListProcesses(context.Background())
		require.Equal(t, "web-1", result2[0])
	})
}

func TestStatic_Update(t *testing.T) {
	t.Run("replaces the name list", func(t *testing.T) {
		src := NewStatic("web-1")

		src.Update("web-1", "web-2")

		result, err := src.ListProcesses(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"web-1", "web-2"}, result)
	})
}
