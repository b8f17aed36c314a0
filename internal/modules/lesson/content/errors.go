package content

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// SchemaMismatchError reports an operation applied to a block whose variant
// does not declare the addressed field.
type SchemaMismatchError struct {
	Op    string
	Type  BlockType
	Field string
}

func (e *SchemaMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: block type %q not supported", e.Op, e.Type)
	}
	return fmt.Sprintf("%s: block type %q has no field %q", e.Op, e.Type, e.Field)
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

func CheckIndex(op string, i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Op: op, Index: i, Len: n}
	}
	return nil
}
