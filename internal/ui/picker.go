package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hubscout/hubscout/internal/apperr"
	"github.com/hubscout/hubscout/internal/fetcher"
)

// The list widget paginates client side, so each search fetches one large
// page instead of the default.
const pickerSearchLimit = 1000

// PickerConfig configures the interactive model picker.
type PickerConfig struct {
	Token   string
	Timeout time.Duration

	// Base carries the non-query filters (task, organization, floors) that
	// stay fixed while the user types.
	Base fetcher.Filters
}

// recordItem represents one search record in the list
type recordItem struct {
	rec      fetcher.Record
	selected bool
}

func (i recordItem) Title() string {
	var checkbox string
	if i.selected {
		checkbox = Success.Render("[✓] ")
	} else {
		checkbox = Dim.Render("[ ] ")
	}
	return checkbox + i.rec.FullModelID
}

func (i recordItem) Description() string {
	return fmt.Sprintf("%s Downloads: %s · Likes: %d",
		Dim.Render(fmt.Sprintf("%s ·", i.rec.Task)),
		Dim.Render(FormatCount(i.rec.Downloads)),
		i.rec.Likes,
	)
}

func (i recordItem) FilterValue() string { return i.rec.FullModelID }

// pickerModel is the Bubble Tea model for the interactive picker
type pickerModel struct {
	textInput textinput.Model
	list      list.Model
	searcher  *fetcher.ModelSearcher
	base      fetcher.Filters

	items       []list.Item
	chosen      map[string]fetcher.Record
	searching   bool
	searchQuery string
	quitting    bool
	confirmed   bool
	width       int
	height      int
}

type searchResultMsg struct {
	records []fetcher.Record
}

type searchDebounceMsg struct{}

// NewPicker creates a new interactive model picker
func NewPicker(config PickerConfig) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Search Hugging Face models..."
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	searcher := &fetcher.ModelSearcher{
		Client: fetcher.NewHubClient(config.Timeout, config.Token),
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(3)
	delegate.SetSpacing(0)

	// Customize delegate styles
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorHighlight).
		BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextDim).
		BorderForeground(ColorPrimary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Pick Models"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // We handle our own filtering
	l.SetShowHelp(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)

	return &pickerModel{
		textInput: ti,
		list:      l,
		searcher:  searcher,
		base:      config.Base,
		chosen:    make(map[string]fetcher.Record),
		width:     80,
		height:    24,
	}
}

// Init initializes the model
func (m *pickerModel) Init() tea.Cmd {
	// Perform initial search with empty query to get popular models
	return tea.Batch(
		textinput.Blink,
		m.performSearch(""),
	)
}

// Update handles messages
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't match space when typing in text input
		if m.textInput.Focused() {
			switch msg.String() {
			case "ctrl+c", "esc":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				if m.textInput.Value() != "" {
					// Unfocus text input and focus list
					m.textInput.Blur()
					return m, nil
				}
			case "down", "up":
				// If we have items, switch to list navigation
				if len(m.items) > 0 {
					m.textInput.Blur()
					var cmd tea.Cmd
					m.list, cmd = m.list.Update(msg)
					return m, cmd
				}
			default:
				// Update text input and trigger debounced search
				var cmd tea.Cmd
				m.textInput, cmd = m.textInput.Update(msg)

				query := m.textInput.Value()
				if query != m.searchQuery {
					m.searchQuery = query
					// Debounce search: wait 300ms after last keystroke
					cmds = append(cmds, m.debounceSearch())
				}
				cmds = append(cmds, cmd)
				return m, tea.Batch(cmds...)
			}
		} else {
			// List is focused
			switch msg.String() {
			case "ctrl+c", "esc":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				m.confirmed = true
				m.quitting = true
				return m, tea.Quit
			case "s":
				// Toggle selection
				if i, ok := m.list.SelectedItem().(recordItem); ok {
					id := i.rec.FullModelID
					if _, picked := m.chosen[id]; picked {
						delete(m.chosen, id)
					} else {
						m.chosen[id] = i.rec
					}
					m.updateItemSelection(id)
				}
				return m, nil
			case "/", "i":
				// Focus back on search input
				m.textInput.Focus()
				return m, textinput.Blink
			default:
				// Let list handle other keys (arrow keys, etc.)
				var cmd tea.Cmd
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case searchDebounceMsg:
		// Perform the search
		return m, m.performSearch(m.searchQuery)

	case searchResultMsg:
		m.searching = false

		// Convert records to list items
		items := make([]list.Item, len(msg.records))
		for i, rec := range msg.records {
			_, picked := m.chosen[rec.FullModelID]
			items[i] = recordItem{rec: rec, selected: picked}
		}
		m.items = items
		m.list.SetItems(items)
		return m, nil
	}

	// Update list
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model
func (m *pickerModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(1, 0)
	b.WriteString(titleStyle.Render("🤗 Hugging Face Model Picker"))
	b.WriteString("\n\n")

	// Search input
	searchLabel := Dim.Render("Search: ")
	b.WriteString(searchLabel)
	b.WriteString(m.textInput.View())

	if m.searching {
		b.WriteString(Dim.Render(" (searching...)"))
	}
	b.WriteString("\n\n")

	// List of models
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	// Selected models
	if len(m.chosen) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n",
			Success.Render("Selected:"),
			Highlight.Render(fmt.Sprintf("%d model(s)", len(m.chosen)))))
	}

	// Help text
	helpStyle := lipgloss.NewStyle().Foreground(ColorTextDim)
	if m.textInput.Focused() {
		b.WriteString(helpStyle.Render("↑/↓: move to list · enter: finish search · esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("s: select · ↑/↓: navigate · enter: confirm · /: search · esc: cancel"))
	}

	return tea.NewView(b.String())
}

// debounceSearch returns a command that triggers search after a delay
func (m *pickerModel) debounceSearch() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(300 * time.Millisecond)
		return searchDebounceMsg{}
	}
}

// performSearch executes the search with the picker's base filters plus the
// typed query. Upstream failures surface as an empty list, same as the
// non-interactive path.
func (m *pickerModel) performSearch(query string) tea.Cmd {
	m.searching = true
	f := m.base
	f.Query = query
	f.Limit = pickerSearchLimit
	return func() tea.Msg {
		records := m.searcher.Search(context.Background(), f)
		return searchResultMsg{records: records}
	}
}

// updateItemSelection updates the selected state of an item
func (m *pickerModel) updateItemSelection(id string) {
	_, picked := m.chosen[id]
	for i, item := range m.items {
		if ri, ok := item.(recordItem); ok && ri.rec.FullModelID == id {
			m.items[i] = recordItem{rec: ri.rec, selected: picked}
			break
		}
	}
	m.list.SetItems(m.items)
}

// PickedRecords returns the chosen records in a stable order
func (m *pickerModel) PickedRecords() []fetcher.Record {
	records := make([]fetcher.Record, 0, len(m.chosen))
	for _, rec := range m.chosen {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].FullModelID < records[j].FullModelID
	})
	return records
}

// WasConfirmed returns true if the user confirmed the selection
func (m *pickerModel) WasConfirmed() bool {
	return m.confirmed
}

// RunPicker runs the interactive picker and returns the chosen records
func RunPicker(config PickerConfig) ([]fetcher.Record, error) {
	p := tea.NewProgram(NewPicker(config))
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	model := m.(*pickerModel)
	if !model.WasConfirmed() {
		return nil, apperr.ErrCancelled
	}

	return model.PickedRecords(), nil
}
