package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// App is the contact browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	fields []domain.FieldKey

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	list   *list.ContactList
	filter *input.FilterInput
	detail viewport.Model
	bar    *status.Bar

	// result is the last completed fetch.
	result   domain.FetchResult
	loading  bool
	showHelp bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the browser over the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	fields := ports.Fields
	if len(fields) == 0 {
		fields = domain.DefaultFieldKeys()
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetStore(ports.StoreName)

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		fields:  fields,
		styles:  s,
		keymap:  km,
		help:    help.New(),
		list:    list.NewContactList(s),
		filter:  input.NewFilterInput(s),
		detail:  viewport.New(40, 10),
		bar:     bar,
		result:  domain.FailedFetch(),
		loading: true,
	}, nil
}

// WithContext sets the context fetches run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the first fetch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("addrbook"),
		a.fetch(),
	)
}

// fetch runs a background fetch and delivers its result as a message.
func (a *App) fetch() tea.Cmd {
	ctx, svc, fields := a.ctx, a.ports.Contacts, a.fields
	return func() tea.Msg {
		return messages.ContactsLoaded{Result: <-svc.FetchAsync(ctx, fields)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.ContactsRequested:
		a.loading = true
		a.bar.SetState(status.StateLoading)
		return a, a.fetch()

	case messages.ContactsLoaded:
		a.loading = false
		a.result = msg.Result
		a.list.SetRecords(msg.Result.Records)
		a.list.SetFilter(a.filter.Value())
		a.syncStatus()
		a.refreshDetail()
		return a, nil

	case messages.FilterChanged:
		a.list.SetFilter(msg.Filter)
		a.syncStatus()
		a.refreshDetail()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.filter.Focused() {
			return a.updateFilter(msg)
		}
		return a.updateBrowse(msg)
	}

	return a, nil
}

func (a *App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only keys that leave the filter
	case tea.KeyEsc:
		a.filter.Reset()
		a.filter.Blur()
		return a, func() tea.Msg { return messages.FilterChanged{} }
	case tea.KeyEnter:
		a.filter.Blur()
		a.syncStatus()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	value := a.filter.Value()
	return a, tea.Batch(cmd, func() tea.Msg { return messages.FilterChanged{Filter: value} })
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Filter):
		a.bar.SetState(status.StateFiltering)
		return a, a.filter.Focus()

	case key.Matches(msg, a.keymap.Clear):
		if a.filter.Value() == "" {
			return a, nil
		}
		a.filter.Reset()
		return a, func() tea.Msg { return messages.FilterChanged{} }

	case key.Matches(msg, a.keymap.Refresh):
		if a.loading {
			return a, nil
		}
		return a, func() tea.Msg { return messages.ContactsRequested{} }

	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil

	case key.Matches(msg, a.keymap.ScrollDetail):
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case key.Matches(msg, a.keymap.Up), key.Matches(msg, a.keymap.Down):
		a.list, _ = a.list.Update(msg)
		a.refreshDetail()
		return a, nil
	}

	return a, nil
}

// syncStatus mirrors fetch and filter state into the status bar.
func (a *App) syncStatus() {
	switch {
	case a.loading:
		a.bar.SetState(status.StateLoading)
	case !a.result.Success:
		a.bar.SetState(status.StateFailed)
	case a.filter.Focused():
		a.bar.SetState(status.StateFiltering)
	default:
		a.bar.SetState(status.StateLoaded)
	}
	a.bar.SetCounts(a.list.Count(), a.list.Total())
}

// refreshDetail renders the highlighted record into the detail pane.
func (a *App) refreshDetail() {
	a.detail.SetContent(RenderRecord(a.styles, a.list.SelectedRecord()))
	a.detail.GotoTop()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.styles.Title.Render("addrbook")

	listWidth := a.width / 3
	paneHeight := a.paneHeight()
	listPane := a.styles.Pane.Width(listWidth).Height(paneHeight).Render(a.list.View())
	detailPane := a.styles.Pane.Width(a.width - listWidth - 4).Height(paneHeight).Render(a.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	sections := []string{header, a.filter.View(), body, a.bar.View()}
	if a.showHelp {
		sections = append(sections, a.help.FullHelpView(a.keymap.FullHelp()))
	}
	return strings.Join(sections, "\n")
}

func (a *App) paneHeight() int {
	// header, filter box (3 rows), status bar and pane borders
	h := a.height - 8
	if a.showHelp {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

// SetDimensions lays the components out for a terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	listWidth := width / 3
	a.list.SetDimensions(listWidth, a.paneHeight())
	a.filter.SetWidth(width)
	a.detail.Width = width - listWidth - 6
	a.detail.Height = a.paneHeight()
	a.bar.SetWidth(width)
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// Loading reports whether a fetch is in flight.
func (a *App) Loading() bool {
	return a.loading
}

// Result returns the last completed fetch.
func (a *App) Result() domain.FetchResult {
	return a.result
}

// SelectedRecord returns the highlighted record, or nil.
func (a *App) SelectedRecord() domain.Record {
	return a.list.SelectedRecord()
}

// VisibleCount returns how many records pass the filter.
func (a *App) VisibleCount() int {
	return a.list.Count()
}

// FilterFocused reports whether the filter input has the keyboard.
func (a *App) FilterFocused() bool {
	return a.filter.Focused()
}

// StatusState returns the status bar state.
func (a *App) StatusState() status.State {
	return a.bar.State()
}

// RenderRecord renders a record as indented JSON with sorted keys.
// Photos are summarised by size.
func RenderRecord(s *styles.Styles, r domain.Record) string {
	if r == nil {
		return s.Muted.Render("No contact selected")
	}

	shown := make(map[string]any, len(r))
	for k, v := range r {
		if t, ok := v.(domain.NormalizedText); ok && k == string(domain.FieldImageData) {
			shown[k] = fmt.Sprintf("<photo, %d base64 chars>", len(t))
			continue
		}
		shown[k] = domain.Plain(v)
	}

	data, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		return s.Error.Render(err.Error())
	}
	return string(data)
}
