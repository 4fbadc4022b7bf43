package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"routescan/internal/driver"
)

// maxRows limits the file list; larger batches show the most recently
// touched files.
const maxRows = 12

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	tick     int
	finished int
	cached   int
	routes   int
	width    int
	done     bool
}

type fileItem struct {
	path    string
	status  string
	stage   driver.Stage
	routes  int
	touched int
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders scan progress.
// files may be nil; unknown files are added as events arrive. The model
// quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued", stage: driver.StageLoad})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %d/%d files, %d endpoints", m.title, m.finished, len(m.items), m.routes)
	if m.cached > 0 {
		header += fmt.Sprintf(", %d cached", m.cached)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 8
	nameWidth := max(m.width-statusWidth-12, 20)
	for _, item := range m.visible() {
		status := styleStatus(item.status).Render(fmt.Sprintf("%8s", item.status))
		line := fmt.Sprintf("  %s %s", status, truncate(item.path, nameWidth))
		if item.routes > 0 {
			line += fmt.Sprintf(" (%d)", item.routes)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if hidden := len(m.items) - len(m.visible()); hidden > 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("  ... %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visible keeps file order but, past maxRows, shows only the most recently
// touched items.
func (m *progressModel) visible() []fileItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	cutoff := m.tick - maxRows
	out := make([]fileItem, 0, maxRows)
	for _, item := range m.items {
		if item.touched > cutoff && item.touched > 0 {
			out = append(out, item)
		}
	}
	return out
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" || label == "" {
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		// files may be announced by their first event
		idx = len(m.items)
		m.items = append(m.items, fileItem{path: ev.File, status: "queued", stage: driver.StageLoad})
		m.index[ev.File] = idx
	}
	m.tick++
	item := &m.items[idx]
	wasFinal := isFinal(item.status)
	item.status = label
	item.stage = ev.Stage
	item.touched = m.tick
	if isFinal(label) && !wasFinal {
		m.finished++
		m.routes += ev.Endpoints
		item.routes = ev.Endpoints
		if ev.Status == driver.StatusCached {
			m.cached++
		}
	}

	total := 0.0
	for _, it := range m.items {
		if isFinal(it.status) {
			total += 1.0
		} else {
			total += progressFromStage(it.stage, it.status)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func isFinal(status string) bool {
	return status == "done" || status == "error" || status == "cached"
}

func progressFromStage(stage driver.Stage, status string) float64 {
	if status == "queued" {
		return 0.0
	}
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageCache, driver.StageScan:
		return 0.5
	default:
		return 0.0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "done"
	case driver.StatusCached:
		return "cached"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		if stage == driver.StageLoad {
			return "loading"
		}
		return "scanning"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "loading", "scanning":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// the tail counts towards width
	return runewidth.Truncate(value, width, "...")
}
