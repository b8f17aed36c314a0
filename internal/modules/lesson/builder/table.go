package builder

import (
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

// AddColumn appends an empty header. Existing rows keep their length; short
// rows render their missing trailing cells as blanks.
func (s *Store) AddColumn(index int) error {
	return s.editTable("addColumn", index, func(t content.Table) (content.Table, error) {
		return content.Table{Headers: appendCopy(t.Headers, ""), Rows: t.Rows}, nil
	})
}

// AddRow appends a row with one empty cell per header.
func (s *Store) AddRow(index int) error {
	return s.editTable("addRow", index, func(t content.Table) (content.Table, error) {
		return addRow(t), nil
	})
}

func (s *Store) RemoveRow(index, row int) error {
	return s.editTable("removeRow", index, func(t content.Table) (content.Table, error) {
		rows, err := removeAt("removeRow", t.Rows, row)
		return content.Table{Headers: t.Headers, Rows: rows}, err
	})
}

// AddCell appends one empty cell to a single row.
func (s *Store) AddCell(index, row int) error {
	return s.editTable("addCell", index, func(t content.Table) (content.Table, error) {
		rows, err := setAt("addCell", t.Rows, row, func(r []string) ([]string, error) {
			return appendCopy(r, ""), nil
		})
		return content.Table{Headers: t.Headers, Rows: rows}, err
	})
}

func (s *Store) UpdateHeader(index, col int, value string) error {
	return s.editTable("updateHeader", index, func(t content.Table) (content.Table, error) {
		headers, err := setAt("updateHeader", t.Headers, col, func(string) (string, error) { return value, nil })
		return content.Table{Headers: headers, Rows: t.Rows}, err
	})
}

func (s *Store) UpdateCell(index, row, col int, value string) error {
	return s.editTable("updateCell", index, func(t content.Table) (content.Table, error) {
		rows, err := setAt("updateCell", t.Rows, row, func(r []string) ([]string, error) {
			return setAt("updateCell", r, col, func(string) (string, error) { return value, nil })
		})
		return content.Table{Headers: t.Headers, Rows: rows}, err
	})
}

func addRow(t content.Table) content.Table {
	return content.Table{Headers: t.Headers, Rows: appendCopy(t.Rows, make([]string, len(t.Headers)))}
}

func (s *Store) editTable(op string, index int, fn func(content.Table) (content.Table, error)) error {
	return s.edit(op, index, func(p content.Payload) (content.Payload, error) {
		t, ok := p.(content.Table)
		if !ok {
			return nil, &content.SchemaMismatchError{Op: op, Type: p.Kind()}
		}
		return fn(t)
	})
}
