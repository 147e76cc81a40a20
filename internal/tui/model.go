package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/steinunnb/vendorwatch/internal/batch"
)

// view identifies which screen the dashboard is showing.
type view int

const (
	viewTable view = iota
	viewDetail
)

// timelineTail is how many recent timeline entries the detail view shows.
const timelineTail = 15

var amountPrinter = message.NewPrinter(language.English)

// Model is the bubbletea model for the review dashboard.
type Model struct {
	result *batch.Result

	table    table.Model
	filter   textinput.Model
	filtered []batch.Row

	view      view
	filtering bool
	selected  *batch.Row
	width     int
	height    int
}

// NewModel creates a dashboard over a finished batch run.
func NewModel(result *batch.Result) Model {
	filter := textinput.New()
	filter.Placeholder = "vendor name"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	m := Model{
		result: result,
		filter: filter,
	}
	m.applyFilter("")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			if m.view == viewDetail {
				m.view = viewTable
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.view == viewDetail {
				m.view = viewTable
			}
			return m, nil
		case "/":
			if m.view == viewTable {
				m.filtering = true
				m.filter.Focus()
				return m, textinput.Blink
			}
		case "enter":
			if m.view == viewTable {
				if row := m.currentRow(); row != nil {
					m.selected = row
					m.view = viewDetail
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter(m.filter.Value())
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.view == viewDetail && m.selected != nil {
		return m.detailView()
	}
	return m.tableView()
}

func (m Model) tableView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Vendor Review · %s", m.result.ReportDate)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"%d vendors · %d flagged · %d errors",
		len(m.result.Rows), m.flaggedCount(), len(m.result.Errors))))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: details · /: filter · q: quit"))
	return b.String()
}

func (m Model) detailView() string {
	row := m.selected
	detail, hasDetail := m.result.Details[row.VendorID]

	var b strings.Builder
	b.WriteString(titleStyle.Render(row.Name))
	b.WriteString("\n\n")
	b.WriteString(balanceStyle.Render(fmt.Sprintf("Balance: %s", formatAmount(row.Balance))))
	b.WriteString("\n\n")

	if len(row.Red) == 0 && len(row.Orange) == 0 {
		b.WriteString("No flags.\n")
	}
	for _, flag := range row.Red {
		b.WriteString(redFlagStyle.Render("RED    "+flag) + "\n")
	}
	for _, flag := range row.Orange {
		b.WriteString(orangeFlagStyle.Render("ORANGE "+flag) + "\n")
	}

	if hasDetail && len(detail.Timeline) > 0 {
		b.WriteString("\nRecent transactions:\n")
		tl := detail.Timeline
		if len(tl) > timelineTail {
			tl = tl[len(tl)-timelineTail:]
		}
		for _, e := range tl {
			b.WriteString(fmt.Sprintf("  %s  %-30.30s %14s\n",
				e.Date.Format("2006-01-02"), e.Description, formatAmount(e.Amount)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: back · q: back"))
	return detailBorderStyle.Render(b.String())
}

func (m *Model) applyFilter(query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	m.filtered = make([]batch.Row, 0, len(m.result.Rows))
	for _, row := range m.result.Rows {
		if q == "" || strings.Contains(strings.ToLower(row.Name), q) {
			m.filtered = append(m.filtered, row)
		}
	}
	m.rebuildTable()
}

func (m *Model) rebuildTable() {
	nameWidth := 36
	if m.width > 80 {
		nameWidth = m.width - 50
	}

	columns := []table.Column{
		{Title: "Vendor", Width: nameWidth},
		{Title: "Balance", Width: 14},
		{Title: "Red", Width: 5},
		{Title: "Orange", Width: 7},
	}

	rows := make([]table.Row, 0, len(m.filtered))
	for _, r := range m.filtered {
		rows = append(rows, table.Row{
			r.Name,
			formatAmount(r.Balance),
			fmt.Sprintf("%d", len(r.Red)),
			fmt.Sprintf("%d", len(r.Orange)),
		})
	}

	height := 15
	if m.height > 24 {
		height = m.height - 9
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = tableHeaderStyle
	styles.Selected = tableSelectedStyle
	t.SetStyles(styles)

	m.table = t
}

func (m Model) currentRow() *batch.Row {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.filtered) {
		return nil
	}
	row := m.filtered[idx]
	return &row
}

func (m Model) flaggedCount() int {
	count := 0
	for _, row := range m.result.Rows {
		if len(row.Red) > 0 || len(row.Orange) > 0 {
			count++
		}
	}
	return count
}

func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%.0f", v)
}

// Run starts the dashboard and blocks until the user quits.
func Run(result *batch.Result) error {
	_, err := tea.NewProgram(NewModel(result), tea.WithAltScreen()).Run()
	return err
}
