package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
)

type memGateway struct {
	creates, updates int
	fail             error
}

func (g *memGateway) ListSteps(context.Context, uuid.UUID) ([]steps.Step, error) { return nil, nil }

func (g *memGateway) CreateStep(_ context.Context, _ uuid.UUID, p steps.Payload) (steps.Step, error) {
	if g.fail != nil {
		return steps.Step{}, g.fail
	}
	g.creates++
	id := uuid.New()
	return steps.Step{ID: &id, Title: p.Title, Order: p.Order, Content: p.Content}, nil
}

func (g *memGateway) UpdateStep(_ context.Context, id uuid.UUID, p steps.Payload) (steps.Step, error) {
	g.updates++
	return steps.Step{ID: &id, Title: p.Title, Order: p.Order, Content: p.Content}, nil
}

func keys(t *testing.T, m *Model, ks ...string) *Model {
	t.Helper()
	for _, k := range ks {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(*Model)
	}
	return m
}

func typeText(t *testing.T, m *Model, s string) *Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(*Model)
}

func blockTypes(m *Model) []content.BlockType {
	out := []content.BlockType{}
	for _, b := range m.Collection().Current().Content.Blocks {
		out = append(out, b.Type)
	}
	return out
}

func newModel() *Model {
	return New(steps.NewCollection(nil), &memGateway{}, uuid.New(), nil)
}

func TestAddBlockFromPicker(t *testing.T) {
	m := keys(t, newModel(), "a")
	if m.mode != modePickType {
		t.Fatalf("expected picker mode, got %v", m.mode)
	}
	m = keys(t, m, "enter")
	if got := blockTypes(m); len(got) != 1 || got[0] != content.TypeHeading {
		t.Fatalf("expected one heading block, got %v", got)
	}
	m = keys(t, m, "a", "down", "enter")
	if got := blockTypes(m); len(got) != 2 || got[1] != content.TypeText {
		t.Fatalf("expected heading,text; got %v", got)
	}
	if m.selected != 1 {
		t.Fatalf("selection should follow the new block, got %d", m.selected)
	}

	m = keys(t, m, "a", "esc")
	if m.mode != modeBrowse || len(blockTypes(m)) != 2 {
		t.Fatalf("esc should leave the picker without adding")
	}
}

func TestMoveAndDeleteBlocks(t *testing.T) {
	m := keys(t, newModel(), "a", "enter", "a", "down", "enter")
	m = keys(t, m, "K")
	if got := blockTypes(m); got[0] != content.TypeText || m.selected != 0 {
		t.Fatalf("K should move the text block up: %v selected=%d", got, m.selected)
	}
	m = keys(t, m, "K")
	if m.err != nil {
		t.Fatalf("moving past the top should be a no-op, got %v", m.err)
	}
	m = keys(t, m, "d")
	if got := blockTypes(m); len(got) != 1 || got[0] != content.TypeHeading {
		t.Fatalf("d should delete the selected block, got %v", got)
	}
}

func TestStepNavigation(t *testing.T) {
	m := keys(t, newModel(), "x")
	if m.Collection().Len() != 1 || m.status == "" {
		t.Fatalf("removing the only step should be refused with a status")
	}
	m = keys(t, m, "n", "n")
	if m.Collection().Len() != 3 || m.Collection().Cursor() != 2 {
		t.Fatalf("n should add and focus steps: len=%d cursor=%d", m.Collection().Len(), m.Collection().Cursor())
	}
	m = keys(t, m, "left", "left", "left")
	if m.Collection().Cursor() != 0 {
		t.Fatalf("cursor should clamp at 0, got %d", m.Collection().Cursor())
	}
	m = keys(t, m, "right", "x")
	if m.Collection().Len() != 2 {
		t.Fatalf("x should remove the current step")
	}
}

func TestEditTitleAndInlineField(t *testing.T) {
	m := keys(t, newModel(), "t")
	if m.mode != modeInput {
		t.Fatalf("t should open the input")
	}
	m = typeText(t, m, "Intro")
	m = keys(t, m, "enter")
	if got := m.Collection().Current().Title; got != "Intro" {
		t.Fatalf("title = %q", got)
	}

	m = keys(t, m, "a")
	for i := 0; i < 2; i++ {
		m = keys(t, m, "down")
	}
	m = keys(t, m, "enter")
	if got := blockTypes(m); len(got) != 1 || got[0] != content.TypeVideo {
		t.Fatalf("expected a video block, got %v", got)
	}
	m = keys(t, m, "enter")
	m = typeText(t, m, "https://youtu.be/abc")
	m = keys(t, m, "enter")
	v := m.Collection().Current().Content.Blocks[0].Data.(content.Video)
	if v.Provider != content.ProviderYouTube || v.VideoID != "abc" {
		t.Fatalf("video source not applied: %+v", v)
	}
	if !strings.Contains(m.View(), "Intro") {
		t.Fatalf("view should show the step title")
	}
}

func TestSave(t *testing.T) {
	gw := &memGateway{}
	m := New(steps.NewCollection(nil), gw, uuid.New(), nil)
	m = keys(t, m, "n")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(*Model)
	if cmd == nil || !m.saving {
		t.Fatalf("s should start a save")
	}
	m = keys(t, m, "n")
	if m.Collection().Len() != 2 {
		t.Fatalf("edits must be ignored while saving")
	}

	next, _ = m.Update(cmd())
	m = next.(*Model)
	if m.saving || m.err != nil || m.dirty {
		t.Fatalf("unexpected state after save: saving=%v err=%v dirty=%v", m.saving, m.err, m.dirty)
	}
	if gw.creates != 2 {
		t.Fatalf("creates = %d", gw.creates)
	}
	for _, s := range m.Collection().Steps() {
		if !s.Persisted() {
			t.Fatalf("step %d not persisted", s.Order)
		}
	}
	if m.Collection().Cursor() != 1 {
		t.Fatalf("save should keep the cursor, got %d", m.Collection().Cursor())
	}
}

func TestSaveFailureReported(t *testing.T) {
	gw := &memGateway{fail: errors.New("offline")}
	m := New(steps.NewCollection(nil), gw, uuid.New(), nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	next, _ := m.Update(cmd())
	m = next.(*Model)
	if m.err == nil || !strings.Contains(m.err.Error(), "offline") {
		t.Fatalf("expected save error, got %v", m.err)
	}
	if !strings.Contains(m.View(), "offline") {
		t.Fatalf("view should show the error")
	}
}
