package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore(nil)
}

func TestConfigStore_CopiesInitialValues(t *testing.T) {
	values := map[string]any{"store.type": "vcard"}
	s := NewConfigStore(values)

	values["store.type"] = "google"

	assert.Equal(t, "vcard", s.GetString("store.type"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	s := NewConfigStore(map[string]any{
		"text":  "hello",
		"int":   7,
		"int64": int64(500),
		"bool":  true,
	})

	assert.Equal(t, "hello", s.GetString("text"))
	assert.Equal(t, 7, s.GetInt("int"))
	assert.Equal(t, 500, s.GetInt("int64"))
	assert.True(t, s.GetBool("bool"))

	assert.Empty(t, s.GetString("int"))
	assert.Zero(t, s.GetInt("text"))
	assert.False(t, s.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"string slice", []string{"givenName", "note"}, []string{"givenName", "note"}},
		{"toml array", []any{"givenName", 3, "note"}, []string{"givenName", "note"}},
		{"comma separated", "givenName, note,", []string{"givenName", "note"}},
		{"wrong type", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewConfigStore(map[string]any{"store.fields": tt.value})
			assert.Equal(t, tt.want, s.GetStringSlice("store.fields"))
		})
	}

	assert.Nil(t, NewConfigStore(nil).GetStringSlice("store.fields"))
}

func TestConfigStore_SetAndKeys(t *testing.T) {
	s := NewConfigStore(nil)

	require.NoError(t, s.Set("vcard.path", "/cards"))
	require.NoError(t, s.Set("store.type", "vcard"))
	require.NoError(t, s.Save())
	require.NoError(t, s.Load())

	assert.Equal(t, []string{"store.type", "vcard.path"}, s.Keys())
	assert.Equal(t, ":memory:", s.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	s := NewConfigStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set("key", i)
			_ = s.GetInt("key")
			_ = s.Keys()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"key"}, s.Keys())
}
