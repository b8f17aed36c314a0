// Package builder implements block-level authoring over a single step's
// content. Every edit allocates new slices along the path to the changed
// value, so documents handed out earlier are never affected.
package builder

import (
	"errors"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

var (
	ErrInvalidDirection = errors.New("direction must be -1 or +1")
	ErrInvalidValue     = errors.New("invalid value")
	ErrLastOption       = errors.New("a question needs at least one option")
)

type Store struct {
	doc content.Document
}

func New(doc content.Document) *Store {
	doc = doc.Clone()
	if doc.Blocks == nil {
		doc.Blocks = []content.Block{}
	}
	return &Store{doc: doc}
}

// Document returns the current snapshot. Later edits do not change it;
// callers must treat it as read-only.
func (s *Store) Document() content.Document { return s.doc }

func (s *Store) Len() int { return len(s.doc.Blocks) }

func (s *Store) Block(index int) (content.Block, error) {
	if err := content.CheckIndex("block", index, len(s.doc.Blocks)); err != nil {
		return content.Block{}, err
	}
	return s.doc.Blocks[index], nil
}

func (s *Store) AddBlock(t content.BlockType) error {
	b, err := content.CreateDefault(t)
	if err != nil {
		return err
	}
	blocks := make([]content.Block, len(s.doc.Blocks), len(s.doc.Blocks)+1)
	copy(blocks, s.doc.Blocks)
	s.doc = content.Document{Blocks: append(blocks, b)}
	return nil
}

func (s *Store) RemoveBlock(index int) error {
	n := len(s.doc.Blocks)
	if err := content.CheckIndex("removeBlock", index, n); err != nil {
		return err
	}
	blocks := make([]content.Block, 0, n-1)
	blocks = append(blocks, s.doc.Blocks[:index]...)
	blocks = append(blocks, s.doc.Blocks[index+1:]...)
	s.doc = content.Document{Blocks: blocks}
	return nil
}

// MoveBlock swaps the block at index with its neighbour in direction. A
// neighbour outside the document leaves the order unchanged.
func (s *Store) MoveBlock(index, direction int) error {
	if direction != -1 && direction != 1 {
		return ErrInvalidDirection
	}
	n := len(s.doc.Blocks)
	if err := content.CheckIndex("moveBlock", index, n); err != nil {
		return err
	}
	target := index + direction
	if target < 0 || target >= n {
		return nil
	}
	blocks := make([]content.Block, n)
	copy(blocks, s.doc.Blocks)
	blocks[index], blocks[target] = blocks[target], blocks[index]
	s.doc = content.Document{Blocks: blocks}
	return nil
}

func (s *Store) UpdateBlockData(index int, key string, value any) error {
	return s.edit("updateBlockData", index, func(p content.Payload) (content.Payload, error) {
		return content.MergeField(p, key, value)
	})
}

// SetVideoSource interprets pasted text the way the video source field does:
// vimeo links are kept as urls, everything else becomes a YouTube id.
func (s *Store) SetVideoSource(index int, input string) error {
	return s.edit("setVideoSource", index, func(p content.Payload) (content.Payload, error) {
		if _, ok := p.(content.Video); !ok {
			return nil, &content.SchemaMismatchError{Op: "setVideoSource", Type: p.Kind()}
		}
		return content.VideoFromInput(input), nil
	})
}

// edit replaces the payload of one block with fn's result. On error the
// document is left untouched.
func (s *Store) edit(op string, index int, fn func(content.Payload) (content.Payload, error)) error {
	n := len(s.doc.Blocks)
	if err := content.CheckIndex(op, index, n); err != nil {
		return err
	}
	old := s.doc.Blocks[index]
	next, err := fn(old.Data)
	if err != nil {
		return err
	}
	blocks := make([]content.Block, n)
	copy(blocks, s.doc.Blocks)
	blocks[index] = content.Block{ID: old.ID, Type: old.Type, Data: next}
	s.doc = content.Document{Blocks: blocks}
	return nil
}
