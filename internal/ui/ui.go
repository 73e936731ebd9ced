package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chartctl/internal/models"
	"chartctl/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ChartListView ViewState = iota
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	controller *tasks.Controller
	playback   *Playback

	chartList list.Model
	listReady bool
	width     int
	height    int

	status statusMsg
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model around the controller.
func NewModel(ctx context.Context, controller *tasks.Controller) *Model {
	return &Model{
		ctx:        ctx,
		view:       ChartListView,
		controller: controller,
		playback:   NewPlayback(),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init schedules the initial page fetch.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.chartList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case refreshMsg:
		m.runMutation("Refreshed.", m.controller.Refresh)
		return m, nil

	case statusMsg:
		m.status = msg
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ChartListView:
			return m.handleListKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}
	}

	if m.listReady {
		var cmd tea.Cmd
		m.chartList, cmd = m.chartList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ConfirmDeleteView:
		return m.renderConfirmDelete()
	default:
		return m.renderChartList()
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.refresh):
		m.runMutation("Refreshed.", m.controller.Refresh)
		return m, nil

	case key.Matches(msg, m.keys.nextPage):
		m.runMutation("", m.controller.NextPage)
		return m, nil

	case key.Matches(msg, m.keys.prevPage):
		m.runMutation("", m.controller.PrevPage)
		return m, nil

	case key.Matches(msg, m.keys.visibility):
		if chart, ok := m.selectedChart(); ok {
			m.runMutation(
				fmt.Sprintf("'%s' is now %s.", chart.Title, chart.Status.Next()),
				func(ctx context.Context) error { return m.controller.CycleVisibility(ctx, chart) },
			)
		}
		return m, nil

	case key.Matches(msg, m.keys.play):
		if chart, ok := m.selectedChart(); ok {
			if err := m.playback.Toggle(chart.ID, chart.BGMURL); err != nil {
				m.status = statusMsg{text: err.Error(), isErr: true}
			} else if m.playback.Active() == "" {
				m.status = statusMsg{text: "Playback stopped."}
			} else {
				m.status = statusMsg{text: fmt.Sprintf("Playing '%s'...", chart.Title)}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.delete):
		if chart, ok := m.selectedChart(); ok {
			m.controller.RequestDelete(chart)
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	if m.listReady {
		var cmd tea.Cmd
		m.chartList, cmd = m.chartList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.view = ChartListView
		m.runMutation("Chart deleted.", m.controller.ConfirmDelete)
		return m, nil

	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.controller.CancelDelete()
		m.view = ChartListView
		m.status = statusMsg{}
		return m, nil
	}
	return m, nil
}

// runMutation executes a controller call and folds the outcome into the
// status line, then rebuilds the list from whatever page the controller now
// holds.
func (m *Model) runMutation(okText string, fn func(ctx context.Context) error) {
	if err := fn(m.ctx); err != nil {
		m.status = statusMsg{text: err.Error(), isErr: true}
	} else if okText != "" {
		m.status = statusMsg{text: okText}
	} else {
		m.status = statusMsg{}
	}
	m.rebuildList()
}

func (m *Model) rebuildList() {
	page := m.controller.Page()
	if page == nil {
		return
	}

	items := make([]list.Item, len(page.Charts))
	for i, chart := range page.Charts {
		items[i] = chartItem{chart: chart}
	}

	if !m.listReady {
		m.chartList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.chartList.SetShowHelp(false)
		m.listReady = true
	} else {
		m.chartList.SetItems(items)
	}
	m.chartList.Title = fmt.Sprintf("Your Charts - page %d/%d (%d total)", page.Page+1, page.PageCount, page.TotalCount)
	m.chartList.SetSize(m.width-4, m.height-8)
}

func (m *Model) selectedChart() (models.Chart, bool) {
	if !m.listReady {
		return models.Chart{}, false
	}
	selected := m.chartList.SelectedItem()
	if selected == nil {
		return models.Chart{}, false
	}
	item, ok := selected.(chartItem)
	return item.chart, ok
}

func (m *Model) renderChartList() string {
	if !m.listReady {
		return styles.help.Render("Loading charts...")
	}

	statusLine := ""
	if m.status.text != "" {
		if m.status.isErr {
			statusLine = styles.err.Render(m.status.text)
		} else {
			statusLine = styles.ok.Render(m.status.text)
		}
	}

	helpKeys := []key.Binding{m.keys.prevPage, m.keys.nextPage, m.keys.visibility, m.keys.play, m.keys.delete, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", m.chartList.View(), statusLine, helpView)
}

func (m *Model) renderConfirmDelete() string {
	target := m.controller.DeleteTarget()
	if target == nil {
		return styles.err.Render("Nothing staged for deletion")
	}

	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", target.Title))
	info := styles.warn.Render("This removes the chart from the server. There is no undo.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
