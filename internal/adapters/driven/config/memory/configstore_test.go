package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	store.Set("catalog.org_id", "og_1")
	store.Set("catalog.requests_per_second", 3)
	store.Set("log.verbose", true)
	store.Set("extractor.tags", []string{"a"})

	val, ok := store.Get("catalog.org_id")
	assert.True(t, ok)
	assert.Equal(t, "og_1", val)
	assert.Equal(t, "og_1", store.GetString("catalog.org_id"))
	assert.Equal(t, 3.0, store.GetFloat("catalog.requests_per_second"))
	assert.True(t, store.GetBool("log.verbose"))
	assert.Equal(t, []string{"a"}, store.GetStringSlice("extractor.tags"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore()
	store.Set("k", 42)

	assert.Equal(t, "", store.GetString("k"))
	assert.False(t, store.GetBool("k"))
	assert.Nil(t, store.GetStringSlice("k"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
