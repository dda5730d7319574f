package knight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/knightpaths/pkg/board"
)

// document is the JSON serialization of a PathSet.
type document struct {
	Start board.Square     `json:"start"`
	End   board.Square     `json:"end"`
	Moves int              `json:"moves"`
	Count int              `json:"count"`
	Paths [][]board.Square `json:"paths"`
}

// MarshalPathSet converts a PathSet to indented JSON bytes.
// Paths keep their discovery order.
func MarshalPathSet(ps PathSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePathSet(ps, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePathSet writes a PathSet as JSON to w. Any off-board position
// yields an OUT_OF_BOUNDS error and nothing is written.
func WritePathSet(ps PathSet, w io.Writer) error {
	doc := document{
		Moves: ps.Moves(),
		Count: ps.Len(),
		Paths: make([][]board.Square, 0, ps.Len()),
	}
	var err error
	if doc.Start, err = board.ToAlgebraic(ps.Start); err != nil {
		return err
	}
	if doc.End, err = board.ToAlgebraic(ps.End); err != nil {
		return err
	}
	for _, p := range ps.Paths {
		squares := make([]board.Square, len(p))
		for i, pos := range p {
			if squares[i], err = board.ToAlgebraic(pos); err != nil {
				return err
			}
		}
		doc.Paths = append(doc.Paths, squares)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
