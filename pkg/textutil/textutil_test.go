package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("fits on one line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"hello world"}, Wrap("hello world", 20))
	})
	t.Run("wraps at width", func(t *testing.T) {
		t.Parallel()
		got := Wrap("one two three four five", 9)
		assert.Equal(t, []string{"one two", "three", "four five"}, got)
	})
	t.Run("long word on its own line", func(t *testing.T) {
		t.Parallel()
		got := Wrap("a veryverylongword b", 5)
		assert.Equal(t, []string{"a", "veryverylongword", "b"}, got)
	})
	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, Wrap("", 10))
		assert.Nil(t, Wrap("   ", 10))
	})
	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"a b"}, Wrap("a \n\t b", 10))
	})
}
