// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// ContactList displays fetched records in a navigable, filterable list.
type ContactList struct {
	records  []domain.Record
	visible  []int
	filter   string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewContactList creates a new contact list component.
func NewContactList(s *styles.Styles) *ContactList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ContactList{
		styles: s,
		width:  40,
		height: 10,
	}
}

// Init initialises the contact list.
func (l *ContactList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ContactList) Update(msg tea.Msg) (*ContactList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible contacts.
func (l *ContactList) View() string {
	if len(l.visible) == 0 {
		if len(l.records) == 0 {
			return l.styles.Muted.Render("No contacts")
		}
		return l.styles.Muted.Render("No contacts match the filter")
	}

	header := l.styles.Title.Render(fmt.Sprintf("Contacts (%d/%d)", len(l.visible), len(l.records)))
	lines := []string{header, ""}

	rows := l.height - 2
	if rows < 1 {
		rows = 1
	}
	start := 0
	if l.selected >= rows {
		start = l.selected - rows + 1
	}
	end := start + rows
	if end > len(l.visible) {
		end = len(l.visible)
	}

	for i := start; i < end; i++ {
		name := truncate(DisplayName(l.records[l.visible[i]]), l.width-2)
		if i == l.selected {
			lines = append(lines, l.styles.Selected.Render("> "+name))
		} else {
			lines = append(lines, l.styles.Normal.Render("  "+name))
		}
	}

	return strings.Join(lines, "\n")
}

// SetRecords replaces the list contents and reapplies the filter.
func (l *ContactList) SetRecords(records []domain.Record) {
	l.records = records
	l.apply()
}

// SetFilter restricts the list to records whose values contain filter,
// case-insensitively.
func (l *ContactList) SetFilter(filter string) {
	l.filter = strings.ToLower(strings.TrimSpace(filter))
	l.apply()
}

// Filter returns the active filter.
func (l *ContactList) Filter() string {
	return l.filter
}

func (l *ContactList) apply() {
	l.visible = l.visible[:0]
	for i, r := range l.records {
		if l.filter == "" || strings.Contains(searchText(r), l.filter) {
			l.visible = append(l.visible, i)
		}
	}
	l.selected = 0
}

// Selected returns the index of the highlighted row among visible rows.
func (l *ContactList) Selected() int {
	return l.selected
}

// SelectedRecord returns the highlighted record, or nil if none.
func (l *ContactList) SelectedRecord() domain.Record {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return nil
	}
	return l.records[l.visible[l.selected]]
}

// MoveUp moves selection up.
func (l *ContactList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ContactList) MoveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ContactList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of visible records.
func (l *ContactList) Count() int {
	return len(l.visible)
}

// Total returns the number of records, filtered or not.
func (l *ContactList) Total() int {
	return len(l.records)
}

// DisplayName picks a label for a record: the given and family names,
// then the first email address, then the organisation.
func DisplayName(r domain.Record) string {
	var parts []string
	for _, k := range []string{"givenName", "middleName", "familyName"} {
		if t, ok := r[k].(domain.NormalizedText); ok && t != "" {
			parts = append(parts, string(t))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	if emails, ok := r["emailAddresses"].(domain.NormalizedList); ok {
		for _, e := range emails {
			if t, ok := e.(domain.NormalizedText); ok && t != "" {
				return string(t)
			}
		}
	}
	if t, ok := r["organizationName"].(domain.NormalizedText); ok && t != "" {
		return string(t)
	}
	return "(no name)"
}

// searchText flattens the textual values of a record for filtering.
// imageData is skipped; base64 noise would match almost anything.
func searchText(r domain.Record) string {
	keys := make([]string, 0, len(r))
	for k := range r {
		if k != "imageData" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		appendText(&b, r[k])
	}
	return strings.ToLower(b.String())
}

func appendText(b *strings.Builder, v domain.NormalizedValue) {
	switch val := v.(type) {
	case domain.NormalizedText:
		b.WriteString(string(val))
		b.WriteByte('\n')
	case domain.NormalizedList:
		for _, item := range val {
			appendText(b, item)
		}
	case domain.NormalizedMap:
		for _, s := range val {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
