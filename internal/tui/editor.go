// Package tui is the terminal step editor behind `stepctl edit`.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/builder"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/render"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type editorMode int

const (
	modeBrowse editorMode = iota
	modePickType
	modeInput
)

// inputTarget names what the text input writes to when confirmed.
type inputTarget int

const (
	targetTitle inputTarget = iota
	targetDescription
	targetBlock
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	previewStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

const helpLine = "←/→ step · n new · x remove · a add block · j/k select · J/K move · d delete · enter edit · i add item · t title · e description · s save · q quit"

type savedMsg struct {
	coll *steps.Collection
	err  error
}

// typeItem implements list.Item for the block type picker.
type typeItem content.BlockType

func (i typeItem) Title() string       { return string(i) }
func (i typeItem) Description() string { return blockHint[content.BlockType(i)] }
func (i typeItem) FilterValue() string { return string(i) }

var blockHint = map[content.BlockType]string{
	content.TypeHeading:   "Section title, levels 1-6",
	content.TypeText:      "Paragraph",
	content.TypeVideo:     "YouTube or Vimeo link",
	content.TypeImage:     "Image by URL",
	content.TypeCode:      "Code snippet",
	content.TypeChecklist: "Checkable items",
	content.TypeAlert:     "Callout box",
	content.TypeEmbed:     "Framed page or HTML",
	content.TypeAudio:     "Audio by URL",
	content.TypeTable:     "Grid with headers",
	content.TypeAccordion: "Collapsible sections",
	content.TypeTimeline:  "Dated events",
	content.TypeQuiz:      "Multiple-choice questions",
}

// Model edits a course's steps and saves them through a gateway.
type Model struct {
	coll     *steps.Collection
	gw       steps.Gateway
	courseID uuid.UUID
	log      *logger.Logger

	mode     editorMode
	selected int
	picker   list.Model
	input    textinput.Model
	target   inputTarget

	saving bool
	dirty  bool
	status string
	err    error

	width  int
	height int
}

func New(coll *steps.Collection, gw steps.Gateway, courseID uuid.UUID, log *logger.Logger) *Model {
	if log == nil {
		log = logger.Nop()
	}
	items := make([]list.Item, 0, len(content.BlockTypes))
	for _, t := range content.BlockTypes {
		items = append(items, typeItem(t))
	}
	picker := list.New(items, list.NewDefaultDelegate(), 60, 30)
	picker.Title = "Add block"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)

	input := textinput.New()
	input.CharLimit = 4000

	return &Model{
		coll:     coll,
		gw:       gw,
		courseID: courseID,
		log:      log.With("component", "StepEditor"),
		picker:   picker,
		input:    input,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Collection exposes the edited steps, mainly for callers inspecting the
// result after the program exits.
func (m *Model) Collection() *steps.Collection { return m.coll }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.picker.SetSize(msg.Width, max(msg.Height-2, 5))
		return m, nil
	case savedMsg:
		return m.handleSaved(msg), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modePickType:
			return m.updatePicker(msg)
		case modeInput:
			return m.updateInput(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.err = nil
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.coll.GoPrev()
		m.selected = 0
	case "right", "l":
		m.coll.GoNext()
		m.selected = 0
	case "n":
		m.coll.AddStep()
		m.selected = 0
		m.dirty = true
	case "x":
		if m.coll.RemoveStep() {
			m.selected = 0
			m.dirty = true
		} else {
			m.status = "a course keeps at least one step"
		}
	case "a":
		m.mode = modePickType
		m.picker.Select(0)
	case "j", "down":
		m.selected = min(m.selected+1, max(m.blockCount()-1, 0))
	case "k", "up":
		m.selected = max(m.selected-1, 0)
	case "J":
		m.moveSelected(1)
	case "K":
		m.moveSelected(-1)
	case "d":
		m.edit(func(s *builder.Store) error { return s.RemoveBlock(m.selected) })
		m.selected = min(m.selected, max(m.blockCount()-1, 0))
	case "i":
		m.edit(func(s *builder.Store) error { return s.AddItem(m.selected) })
	case "t":
		return m, m.openInput(targetTitle, m.coll.Current().Title)
	case "e":
		return m, m.openInput(targetDescription, m.coll.Current().Description)
	case "enter":
		b, ok := m.selectedBlock()
		if !ok {
			return m, nil
		}
		if _, value, ok := inlineField(b); ok {
			return m, m.openInput(targetBlock, value)
		}
		m.status = fmt.Sprintf("%s blocks have no inline field", b.Type)
	case "s":
		m.saving = true
		m.status = "saving..."
		return m, m.save()
	}
	return m, nil
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		m.mode = modeBrowse
		item, ok := m.picker.SelectedItem().(typeItem)
		if !ok {
			return m, nil
		}
		if m.edit(func(s *builder.Store) error { return s.AddBlock(content.BlockType(item)) }) {
			m.selected = m.blockCount() - 1
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.input.Blur()
		m.applyInput(m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openInput(target inputTarget, value string) tea.Cmd {
	m.mode = modeInput
	m.target = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) applyInput(value string) {
	switch m.target {
	case targetTitle:
		m.setStepField("title", value)
	case targetDescription:
		m.setStepField("description", value)
	case targetBlock:
		b, ok := m.selectedBlock()
		if !ok {
			return
		}
		key, _, _ := inlineField(b)
		m.edit(func(s *builder.Store) error {
			if b.Type == content.TypeVideo {
				return s.SetVideoSource(m.selected, value)
			}
			return s.UpdateBlockData(m.selected, key, value)
		})
	}
}

func (m *Model) setStepField(field, value string) {
	if err := m.coll.UpdateStepField(field, value); err != nil {
		m.err = err
		return
	}
	m.dirty = true
}

func (m *Model) moveSelected(dir int) {
	target := m.selected + dir
	if target < 0 || target >= m.blockCount() {
		return
	}
	if m.edit(func(s *builder.Store) error { return s.MoveBlock(m.selected, dir) }) {
		m.selected = target
	}
}

// edit applies fn to the current step and reports whether it succeeded.
func (m *Model) edit(fn func(*builder.Store) error) bool {
	if err := m.coll.EditContent(fn); err != nil {
		m.err = err
		return false
	}
	m.dirty = true
	return true
}

// save runs on a copy so the view never reads a collection being written.
func (m *Model) save() tea.Cmd {
	work := m.coll.Clone()
	gw, courseID, log := m.gw, m.courseID, m.log
	return func() tea.Msg {
		err := work.Save(context.Background(), gw, courseID, log)
		return savedMsg{coll: work, err: err}
	}
}

func (m *Model) handleSaved(msg savedMsg) *Model {
	m.saving = false
	if msg.coll != nil {
		m.coll = msg.coll
	}
	if msg.err != nil {
		m.err = msg.err
		var perr *steps.PersistenceError
		if errors.As(msg.err, &perr) && perr.Index >= 0 {
			m.status = fmt.Sprintf("saved %d of %d steps", perr.Index, m.coll.Len())
		}
		return m
	}
	m.dirty = false
	m.status = fmt.Sprintf("saved %d steps", m.coll.Len())
	return m
}

func (m *Model) blockCount() int { return m.coll.Current().Content.Len() }

func (m *Model) selectedBlock() (content.Block, bool) {
	blocks := m.coll.Current().Content.Blocks
	if m.selected < 0 || m.selected >= len(blocks) {
		return content.Block{}, false
	}
	return blocks[m.selected], true
}

// inlineField is the single text field a block exposes for quick editing.
func inlineField(b content.Block) (key, value string, ok bool) {
	switch p := b.Data.(type) {
	case content.Heading:
		return "text", p.Text, true
	case content.Text:
		return "text", p.Text, true
	case content.Alert:
		return "text", p.Text, true
	case content.Code:
		return "code", p.Code, true
	case content.Image:
		return "src", p.Src, true
	case content.Audio:
		return "src", p.Src, true
	case content.Embed:
		if p.Legacy() {
			return "embedHtml", p.EmbedHTML, true
		}
		return "src", p.Src, true
	case content.Video:
		if p.URL != "" {
			return "url", p.URL, true
		}
		return "videoId", p.VideoID, true
	}
	return "", "", false
}

func (m *Model) View() string {
	if m.mode == modePickType {
		return m.picker.View()
	}

	cur := m.coll.Current()
	var sb strings.Builder

	title := cur.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	marker := ""
	if m.dirty {
		marker = " *"
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Step %d/%d · %s%s", m.coll.Cursor()+1, m.coll.Len(), title, marker)))
	sb.WriteString("\n")
	if cur.Description != "" {
		sb.WriteString(mutedStyle.Render(cur.Description) + "\n")
	}
	sb.WriteString("\n")

	if len(cur.Content.Blocks) == 0 {
		sb.WriteString(mutedStyle.Render("no blocks yet, press a to add one") + "\n")
	}
	for i, b := range cur.Content.Blocks {
		line := fmt.Sprintf("%2d. %-9s %s", i+1, b.Type, summary(b))
		if i == m.selected {
			sb.WriteString(selectedStyle.Render("› "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	if b, ok := m.selectedBlock(); ok {
		nodes := render.RenderWith(content.Document{Blocks: []content.Block{b}}, render.Options{RevealAnswers: true})
		if len(nodes) > 0 {
			sb.WriteString("\n" + previewStyle.Render(render.Terminal(nodes, max(m.width-6, 40))) + "\n")
		}
	}

	if m.mode == modeInput {
		sb.WriteString("\n" + inputLabel(m.target) + ": " + m.input.View() + "\n")
	}
	if m.status != "" {
		sb.WriteString("\n" + mutedStyle.Render(m.status))
	}
	if m.err != nil {
		sb.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	sb.WriteString("\n" + mutedStyle.Render(helpLine))
	return sb.String()
}

func inputLabel(t inputTarget) string {
	switch t {
	case targetTitle:
		return "Title"
	case targetDescription:
		return "Description"
	default:
		return "Value"
	}
}

func summary(b content.Block) string {
	const width = 48
	var s string
	switch p := b.Data.(type) {
	case content.Heading:
		s = fmt.Sprintf("H%d %s", p.Level, p.Text)
	case content.Checklist:
		s = fmt.Sprintf("%d items", len(p.Items))
	case content.Table:
		s = fmt.Sprintf("%d cols × %d rows", len(p.Headers), len(p.Rows))
	case content.Accordion:
		s = fmt.Sprintf("%d sections", len(p.Items))
	case content.Timeline:
		s = fmt.Sprintf("%d events", len(p.Events))
	case content.Quiz:
		s = fmt.Sprintf("%d questions", len(p.Questions))
	default:
		_, s, _ = inlineField(b)
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > width {
		s = string(r[:width-1]) + "…"
	}
	return s
}
