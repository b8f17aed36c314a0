package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	codeStyle    = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	alertStyle = map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
		"success": lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("#D29922")),
		"danger":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
)

// Terminal lays nodes out as styled text for a terminal of the given width.
func Terminal(nodes []Node, width int) string {
	width = max(20, width)
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, lipgloss.NewStyle().Width(width).Render(terminalNode(n)))
	}
	return strings.Join(parts, "\n\n")
}

func terminalNode(n Node) string {
	switch p := n.Props.(type) {
	case HeadingProps:
		return headingStyle.Render(strings.Repeat("#", p.Level) + " " + p.Text)
	case TextProps:
		return p.Text
	case VideoProps:
		return mutedStyle.Render("▶ " + placeholder(p.Src, "(no video)"))
	case ImageProps:
		return mutedStyle.Render(fmt.Sprintf("[image: %s] %s", placeholder(p.Alt, "untitled"), p.Src))
	case CodeProps:
		return mutedStyle.Render(p.Language) + "\n" + codeStyle.Render(p.Code)
	case ChecklistProps:
		lines := make([]string, 0, len(p.Items))
		for _, it := range p.Items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			lines = append(lines, box+" "+it.Text)
		}
		return strings.Join(lines, "\n")
	case AlertProps:
		st, ok := alertStyle[p.Style]
		if !ok {
			st = alertStyle["info"]
		}
		return st.Render(strings.ToUpper(p.Style) + ": " + p.Text)
	case EmbedProps:
		if p.HTML != "" {
			return mutedStyle.Render("[embedded html]")
		}
		return mutedStyle.Render(fmt.Sprintf("[embed %dpx] %s", p.Height, p.Src))
	case AudioProps:
		return mutedStyle.Render("♪ " + placeholder(p.Src, "(no audio)"))
	case TableProps:
		return terminalTable(p)
	case AccordionProps:
		lines := make([]string, 0, len(p.Items))
		for _, it := range p.Items {
			lines = append(lines, headingStyle.Render("▸ "+it.Title), "  "+it.Content)
		}
		return strings.Join(lines, "\n")
	case TimelineProps:
		lines := make([]string, 0, len(p.Events))
		for _, ev := range p.Events {
			lines = append(lines, mutedStyle.Render(ev.Date)+"  "+ev.Text)
		}
		return strings.Join(lines, "\n")
	case QuizProps:
		var sb strings.Builder
		for qi, q := range p.Questions {
			if qi > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(headingStyle.Render(fmt.Sprintf("%d. %s", qi+1, q.Question)))
			for oi, opt := range q.Options {
				mark := "( )"
				if q.AnswerIndex != nil && *q.AnswerIndex == oi {
					mark = "(*)"
				}
				sb.WriteString("\n   " + mark + " " + opt)
			}
		}
		return sb.String()
	}
	return ""
}

func terminalTable(p TableProps) string {
	widths := make([]int, p.Columns)
	measure := func(row []string) {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(p.Headers)
	for _, r := range p.Rows {
		measure(r)
	}
	line := func(row []string, st lipgloss.Style) string {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = st.Width(widths[i] + 2).Render(c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	lines := []string{line(p.Headers, cellStyle.Bold(true))}
	for _, r := range p.Rows {
		lines = append(lines, line(r, cellStyle))
	}
	return strings.Join(lines, "\n")
}

func placeholder(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
