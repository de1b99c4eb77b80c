package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls how a cell is padded inside its column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column defines a table column. Width counts terminal cells, not bytes.
type Column struct {
	Title string
	Width int
	Align Align
}

// Row is a slice of cell values.
type Row []string

// Table renders a lipgloss-styled table.
type Table struct {
	Columns []Column
	Rows    []Row

	highlighted map[int]bool
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, highlighted: map[int]bool{}}
}

// AddRow appends a row and returns its index.
func (t *Table) AddRow(r Row) int {
	t.Rows = append(t.Rows, r)
	return len(t.Rows) - 1
}

// Highlight renders row i in the selected style.
func (t *Table) Highlight(i int) {
	t.highlighted[i] = true
}

// fit pads or truncates s to exactly width cells. Truncated values end in "…".
func fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w <= width {
		gap := strings.Repeat(" ", width-w)
		if align == AlignRight {
			return gap + s
		}
		return s + gap
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return fit(string(runes)+"…", width, align)
}

// Render returns the full table as a string. Cells are padded before styling
// so lipgloss never wraps them.
func (t *Table) Render() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMeta)

	line := func(cells []string) {
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		sb.WriteString("\n")
	}

	header := make([]string, len(t.Columns))
	divider := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = headerStyle.Render(fit(col.Title, col.Width, col.Align))
		divider[i] = dimStyle.Render(strings.Repeat("-", col.Width))
	}
	line(header)
	line(divider)

	for i, row := range t.Rows {
		style := cellStyle
		if t.highlighted[i] {
			style = StyleSelected
		}
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			cells[j] = style.Render(fit(val, col.Width, col.Align))
		}
		line(cells)
	}

	return sb.String()
}

// KeyValueBlock renders a set of key-value pairs in a bordered box. Keys are
// aligned on the longest one.
func KeyValueBlock(title string, pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		keyWidth = max(keyWidth, lipgloss.Width(p[0])+1)
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fit(p[0]+":", keyWidth, AlignLeft))
		sb.WriteString("  " + key + "  " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(strings.TrimRight(sb.String(), "\n"))
}
