package builder

import (
	"fmt"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

func (s *Store) AddItem(index int) error {
	return s.edit("addItem", index, func(p content.Payload) (content.Payload, error) {
		switch t := p.(type) {
		case content.Checklist:
			return content.Checklist{Items: appendCopy(t.Items, content.ChecklistItem{})}, nil
		case content.Accordion:
			return content.Accordion{Items: appendCopy(t.Items, content.AccordionItem{})}, nil
		case content.Timeline:
			return content.Timeline{Events: appendCopy(t.Events, content.TimelineEvent{})}, nil
		case content.Quiz:
			return content.Quiz{Questions: appendCopy(t.Questions, content.NewQuizQuestion())}, nil
		case content.Table:
			return addRow(t), nil
		}
		return nil, &content.SchemaMismatchError{Op: "addItem", Type: p.Kind()}
	})
}

func (s *Store) RemoveItem(index, item int) error {
	return s.edit("removeItem", index, func(p content.Payload) (content.Payload, error) {
		switch t := p.(type) {
		case content.Checklist:
			items, err := removeAt("removeItem", t.Items, item)
			return content.Checklist{Items: items}, err
		case content.Accordion:
			items, err := removeAt("removeItem", t.Items, item)
			return content.Accordion{Items: items}, err
		case content.Timeline:
			events, err := removeAt("removeItem", t.Events, item)
			return content.Timeline{Events: events}, err
		case content.Quiz:
			qs, err := removeAt("removeItem", t.Questions, item)
			return content.Quiz{Questions: qs}, err
		case content.Table:
			rows, err := removeAt("removeItem", t.Rows, item)
			return content.Table{Headers: t.Headers, Rows: rows}, err
		}
		return nil, &content.SchemaMismatchError{Op: "removeItem", Type: p.Kind()}
	})
}

// UpdateItem sets one field of one collection element. Table rows expose a
// single field, "cells".
func (s *Store) UpdateItem(index, item int, field string, value any) error {
	return s.edit("updateItem", index, func(p content.Payload) (content.Payload, error) {
		switch t := p.(type) {
		case content.Checklist:
			items, err := setAt("updateItem", t.Items, item, func(it content.ChecklistItem) (content.ChecklistItem, error) {
				var err error
				switch field {
				case "text":
					err = assignString(&it.Text, value)
				case "checked":
					err = assignBool(&it.Checked, value)
				default:
					err = mismatch(p, field)
				}
				return it, err
			})
			return content.Checklist{Items: items}, err
		case content.Accordion:
			items, err := setAt("updateItem", t.Items, item, func(it content.AccordionItem) (content.AccordionItem, error) {
				var err error
				switch field {
				case "title":
					err = assignString(&it.Title, value)
				case "content":
					err = assignString(&it.Content, value)
				default:
					err = mismatch(p, field)
				}
				return it, err
			})
			return content.Accordion{Items: items}, err
		case content.Timeline:
			events, err := setAt("updateItem", t.Events, item, func(ev content.TimelineEvent) (content.TimelineEvent, error) {
				var err error
				switch field {
				case "date":
					err = assignString(&ev.Date, value)
				case "text":
					err = assignString(&ev.Text, value)
				default:
					err = mismatch(p, field)
				}
				return ev, err
			})
			return content.Timeline{Events: events}, err
		case content.Quiz:
			qs, err := setAt("updateItem", t.Questions, item, func(q content.QuizQuestion) (content.QuizQuestion, error) {
				return updateQuestion(p, q, field, value)
			})
			return content.Quiz{Questions: qs}, err
		case content.Table:
			if field != "cells" {
				return nil, mismatch(p, field)
			}
			cells, err := toStrings(value)
			if err != nil {
				return nil, err
			}
			rows, err := setAt("updateItem", t.Rows, item, func([]string) ([]string, error) { return cells, nil })
			return content.Table{Headers: t.Headers, Rows: rows}, err
		}
		return nil, &content.SchemaMismatchError{Op: "updateItem", Type: p.Kind(), Field: field}
	})
}

func updateQuestion(p content.Payload, q content.QuizQuestion, field string, value any) (content.QuizQuestion, error) {
	switch field {
	case "question":
		err := assignString(&q.Question, value)
		return q, err
	case "options":
		opts, err := toStrings(value)
		if err != nil {
			return q, err
		}
		q.Options = opts
		return content.NormalizeQuestion(q), nil
	case "answerIndex":
		i, err := toInt(value)
		if err != nil {
			return q, err
		}
		if err := content.CheckIndex("setAnswer", i, len(q.Options)); err != nil {
			return q, err
		}
		q.AnswerIndex = i
		return q, nil
	}
	return q, mismatch(p, field)
}

func mismatch(p content.Payload, field string) error {
	return &content.SchemaMismatchError{Op: "updateItem", Type: p.Kind(), Field: field}
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func removeAt[T any](op string, in []T, i int) ([]T, error) {
	if err := content.CheckIndex(op, i, len(in)); err != nil {
		return in, err
	}
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:i]...)
	return append(out, in[i+1:]...), nil
}

func setAt[T any](op string, in []T, i int, fn func(T) (T, error)) ([]T, error) {
	if err := content.CheckIndex(op, i, len(in)); err != nil {
		return in, err
	}
	v, err := fn(in[i])
	if err != nil {
		return in, err
	}
	out := make([]T, len(in))
	copy(out, in)
	out[i] = v
	return out, nil
}

func assignString(dst *string, v any) error {
	switch t := v.(type) {
	case string:
		*dst = t
	case fmt.Stringer:
		*dst = t.String()
	default:
		return fmt.Errorf("%w: want string, got %T", ErrInvalidValue, v)
	}
	return nil
}

func assignBool(dst *bool, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: want bool, got %T", ErrInvalidValue, v)
	}
	*dst = b
	return nil
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	}
	return 0, fmt.Errorf("%w: want integer, got %T", ErrInvalidValue, v)
}

func toStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			s, ok := it.(string)
			if !ok {
				return nil, fmt.Errorf("%w: want string element, got %T", ErrInvalidValue, it)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: want list of strings, got %T", ErrInvalidValue, v)
}
