package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	candidates := []string{"fetch", "serve", "status", "stop"}

	t.Run("close match", func(t *testing.T) {
		t.Parallel()
		got := Suggest("fetc", candidates, 3)
		assert.Equal(t, []string{"fetch"}, got)
	})
	t.Run("prefix beats edits", func(t *testing.T) {
		t.Parallel()
		got := Suggest("st", candidates, 3)
		assert.Equal(t, []string{"status", "stop"}, got)
	})
	t.Run("exact match ranks first", func(t *testing.T) {
		t.Parallel()
		got := Suggest("serve", candidates, 1)
		assert.Equal(t, []string{"serve"}, got)
	})
	t.Run("nothing close", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Suggest("xylophone", candidates, 3))
	})
	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Suggest("", candidates, 3))
		assert.Empty(t, Suggest("fetch", candidates, 0))
	})
	t.Run("max caps results", func(t *testing.T) {
		t.Parallel()
		got := Suggest("st", candidates, 1)
		assert.Len(t, got, 1)
	})
}

func TestEditDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, editDistance(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}
