package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			"givenName":  domain.NormalizedText("Ada"),
			"familyName": domain.NormalizedText("Lovelace"),
			"postalAddresses": domain.NormalizedList{
				domain.NormalizedMap{"city": "London"},
			},
		},
		{
			"givenName":      domain.NormalizedText("Alan"),
			"familyName":     domain.NormalizedText("Turing"),
			"emailAddresses": domain.NormalizedList{domain.NormalizedText("alan@bletchley.example")},
		},
		{
			"emailAddresses": domain.NormalizedList{domain.NormalizedText("grace@navy.example")},
		},
	}
}

func TestNewContactList(t *testing.T) {
	l := NewContactList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.Equal(t, 0, l.Count())
	assert.Nil(t, l.Init())
	assert.Nil(t, l.SelectedRecord())
}

func TestContactList_Navigation(t *testing.T) {
	l := NewContactList(nil)
	l.SetRecords(sampleRecords())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l.MoveDown()
	assert.Equal(t, 2, l.Selected(), "stays on the last row")

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())
	assert.Equal(t, domain.NormalizedText("Alan"), l.SelectedRecord()["givenName"])
}

func TestContactList_Filter(t *testing.T) {
	l := NewContactList(nil)
	l.SetRecords(sampleRecords())

	tests := []struct {
		filter string
		want   int
	}{
		{"", 3},
		{"ada", 1},
		{"LONDON", 1},
		{"example", 2},
		{"nobody", 0},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			l.SetFilter(tt.filter)
			assert.Equal(t, tt.want, l.Count())
			assert.Equal(t, 3, l.Total())
			assert.Equal(t, 0, l.Selected())
		})
	}
}

func TestContactList_FilterIgnoresImageData(t *testing.T) {
	l := NewContactList(nil)
	l.SetRecords([]domain.Record{{
		"givenName": domain.NormalizedText("Ada"),
		"imageData": domain.NormalizedText("QUJDREVG"),
	}})

	l.SetFilter("qujd")

	assert.Equal(t, 0, l.Count())
}

func TestContactList_View(t *testing.T) {
	l := NewContactList(nil)
	assert.Contains(t, l.View(), "No contacts")

	l.SetRecords(sampleRecords())
	view := l.View()
	assert.Contains(t, view, "Contacts (3/3)")
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "grace@navy.example")

	l.SetFilter("nobody")
	assert.Contains(t, l.View(), "No contacts match the filter")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		record domain.Record
		want   string
	}{
		{
			name:   "given and family",
			record: domain.Record{"givenName": domain.NormalizedText("Ada"), "familyName": domain.NormalizedText("Lovelace")},
			want:   "Ada Lovelace",
		},
		{
			name:   "email fallback",
			record: domain.Record{"emailAddresses": domain.NormalizedList{domain.NormalizedText("a@b.example")}},
			want:   "a@b.example",
		},
		{
			name:   "organisation fallback",
			record: domain.Record{"organizationName": domain.NormalizedText("Babbage & Co")},
			want:   "Babbage & Co",
		},
		{
			name:   "empty record",
			record: domain.Record{},
			want:   "(no name)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.record))
		})
	}
}
