package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediadeck/backend/internal/media"
)

func TestPromptCache_DistinguishesMissFromNegativeEntry(t *testing.T) {
	cache := media.NewPromptCache()

	_, ok := cache.Get("f1")
	assert.False(t, ok)

	// A nil entry means "searched and found nothing" and must be served as a
	// hit, or every miss would trigger a fresh history scan.
	cache.Put("f1", nil)
	value, ok := cache.Get("f1")
	assert.True(t, ok)
	assert.Nil(t, value)
}

func TestPromptCache_PutAndDelete(t *testing.T) {
	cache := media.NewPromptCache()

	cache.Put("f1", strPtr("a prompt"))
	value, ok := cache.Get("f1")
	require.True(t, ok)
	assert.Equal(t, "a prompt", *value)
	assert.Equal(t, 1, cache.Len())

	cache.Delete("f1")
	_, ok = cache.Get("f1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
