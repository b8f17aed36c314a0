package steps

import (
	"sort"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/builder"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

// Collection holds a course's steps in order with a cursor on the step being
// edited. It always contains at least one step and keeps Order contiguous
// from 1.
type Collection struct {
	steps  []Step
	cursor int
}

// NewCollection sorts steps by Order, renumbers them and places the cursor on
// the first one. An empty input yields a single blank step.
func NewCollection(in []Step) *Collection {
	steps := make([]Step, 0, len(in))
	for _, s := range in {
		steps = append(steps, s.Clone())
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	if len(steps) == 0 {
		steps = append(steps, blankStep(1))
	}
	c := &Collection{steps: steps}
	c.renumber()
	return c
}

func blankStep(order int) Step {
	return Step{Order: order, Content: content.Document{Blocks: []content.Block{}}}
}

func (c *Collection) Len() int    { return len(c.steps) }
func (c *Collection) Cursor() int { return c.cursor }

// Steps returns a copy of the steps in order.
func (c *Collection) Steps() []Step {
	out := make([]Step, len(c.steps))
	for i, s := range c.steps {
		out[i] = s.Clone()
	}
	return out
}

func (c *Collection) Current() Step { return c.steps[c.cursor].Clone() }

// Clone returns an independent copy, cursor included.
func (c *Collection) Clone() *Collection {
	return &Collection{steps: c.Steps(), cursor: c.cursor}
}

// AddStep appends an empty step and moves the cursor onto it.
func (c *Collection) AddStep() {
	c.steps = append(c.steps, blankStep(len(c.steps)+1))
	c.cursor = len(c.steps) - 1
}

// RemoveStep drops the step under the cursor. The last remaining step is
// never removed; the return value reports whether anything changed. Removal
// is local only, the gateway is not told.
func (c *Collection) RemoveStep() bool {
	if len(c.steps) <= 1 {
		return false
	}
	steps := make([]Step, 0, len(c.steps)-1)
	steps = append(steps, c.steps[:c.cursor]...)
	steps = append(steps, c.steps[c.cursor+1:]...)
	c.steps = steps
	c.renumber()
	c.cursor = max(0, c.cursor-1)
	return true
}

func (c *Collection) GoPrev() {
	c.cursor = max(c.cursor-1, 0)
}

func (c *Collection) GoNext() {
	c.cursor = min(c.cursor+1, len(c.steps)-1)
}

// UpdateStepField sets "title" or "description" on the current step.
func (c *Collection) UpdateStepField(field, value string) error {
	s := c.steps[c.cursor]
	switch field {
	case "title":
		s.Title = value
	case "description":
		s.Description = value
	default:
		return ErrUnknownField
	}
	c.steps[c.cursor] = s
	return nil
}

// EditContent runs fn against a block store seeded with the current step's
// document. The step only takes the edited document when fn succeeds.
func (c *Collection) EditContent(fn func(*builder.Store) error) error {
	st := builder.New(c.steps[c.cursor].Content)
	if err := fn(st); err != nil {
		return err
	}
	c.steps[c.cursor].Content = st.Document()
	return nil
}

func (c *Collection) renumber() {
	for i := range c.steps {
		c.steps[i].Order = i + 1
	}
}
