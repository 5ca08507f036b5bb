package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the preview TUI
const (
	ListViewMode ViewMode = iota
	DetailViewMode
	HTMLViewMode
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model represents the Bubble Tea model for the preview TUI
type Model struct {
	items         []Item
	cursor        int
	viewMode      ViewMode
	source        string
	width         int
	height        int
	selectedIndex int // Index of the item currently being viewed in detail
}

// NewModel creates a new preview model. source names the previewed document.
func NewModel(items []Item, source string) Model {
	return Model{
		items:         items,
		viewMode:      ListViewMode,
		source:        source,
		selectedIndex: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ListViewMode:
			return m.updateListView(msg)
		case DetailViewMode, HTMLViewMode:
			return m.updateDetailView(msg)
		}
	}

	return m, nil
}

// updateListView handles key presses in list view mode
func (m Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter":
		m.selectedIndex = m.cursor
		m.viewMode = DetailViewMode

	case "h":
		m.selectedIndex = m.cursor
		m.viewMode = HTMLViewMode
	}

	return m, nil
}

// updateDetailView handles key presses in detail/HTML view modes
func (m Model) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewMode = ListViewMode

	case "h":
		if m.viewMode == DetailViewMode {
			m.viewMode = HTMLViewMode
		} else {
			m.viewMode = DetailViewMode
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	switch m.viewMode {
	case ListViewMode:
		return m.renderListView()
	case DetailViewMode:
		return m.renderDetailView()
	case HTMLViewMode:
		return m.renderHTMLView()
	}
	return ""
}

// visibleRange keeps the cursor in the middle of the screen when the list does not fit
func (m Model) visibleRange() (int, int) {
	start, end := 0, len(m.items)
	if m.height <= 0 {
		return start, end
	}

	maxVisible := m.height - 6 // header, footer and padding
	if maxVisible >= len(m.items) {
		return start, end
	}
	start = max(m.cursor-maxVisible/2, 0)
	end = start + maxVisible
	if end > len(m.items) {
		end = len(m.items)
		start = max(end-maxVisible, 0)
	}
	return start, end
}

// renderListView renders the list view
func (m Model) renderListView() string {
	var b strings.Builder

	header := fmt.Sprintf("Embed Preview - %s (%d embeds)", m.source, len(m.items))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		item := m.items[i]
		line := FormatCompactListItem(i, item)

		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("→ " + line))
		case item.HTML == "":
			b.WriteString(emptyStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ or j/k: navigate • enter: view details • h: HTML view • q: quit"))

	return b.String()
}

// renderDetailView renders the detail view
func (m Model) renderDetailView() string {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return "No item selected"
	}

	var b strings.Builder
	b.WriteString(FormatDetailedItem(m.items[m.selectedIndex]))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("esc: back to list • h: toggle HTML view • q: quit"))

	return b.String()
}

// renderHTMLView renders the HTML view
func (m Model) renderHTMLView() string {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return "No item selected"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Rendered HTML"))
	b.WriteString("\n\n")
	b.WriteString(FormatHTMLItem(m.items[m.selectedIndex]))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("esc: back to list • h: toggle detail view • q: quit"))

	return b.String()
}

// Run starts the Bubble Tea program
func Run(items []Item, source string) error {
	if len(items) == 0 {
		fmt.Println("No embeds to preview")
		return nil
	}

	p := tea.NewProgram(NewModel(items, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
