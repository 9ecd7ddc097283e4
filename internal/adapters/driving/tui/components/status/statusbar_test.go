package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateLoading, bar.State())
	assert.Contains(t, bar.View(), "Fetching contacts")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		shown  int
		total  int
		expect string
	}{
		{"loaded", StateLoaded, 3, 3, "3 contacts"},
		{"filtered", StateLoaded, 1, 3, "1 of 3 contacts"},
		{"failed", StateFailed, 0, 0, "Cannot access contacts"},
		{"filtering", StateFiltering, 2, 5, "2 of 5 contacts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetCounts(tt.shown, tt.total)

			assert.Contains(t, bar.View(), tt.expect)
		})
	}
}

func TestBar_StorePrefix(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetStore("vcard")
	bar.SetState(StateLoaded)
	bar.SetCounts(2, 2)

	assert.Contains(t, bar.View(), "vcard: 2 contacts")
}

func TestBar_Hints(t *testing.T) {
	bar := NewBar(nil, nil)
	assert.Len(t, bar.Hints(), 4)

	bar.SetState(StateFiltering)
	assert.Len(t, bar.Hints(), 1)
}
