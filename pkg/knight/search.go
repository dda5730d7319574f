package knight

import (
	"github.com/matzehuels/knightpaths/pkg/board"
	errs "github.com/matzehuels/knightpaths/pkg/errors"
)

// entry is a queued partial path ending at pos.
type entry struct {
	pos  board.Position
	path Path
}

// FindShortestPaths returns every minimum-length knight path from start to end,
// in discovery order. If start == end the result is the single one-square path.
// Returns an OUT_OF_BOUNDS error if either position is off the board.
func FindShortestPaths(start, end board.Position) (PathSet, error) {
	if !board.OnBoard(start) {
		return PathSet{}, errs.New(errs.ErrCodeOutOfBounds, "start %v is off the board", start)
	}
	if !board.OnBoard(end) {
		return PathSet{}, errs.New(errs.ErrCodeOutOfBounds, "end %v is off the board", end)
	}

	ps := PathSet{Start: start, End: end}
	queue := []entry{{pos: start, path: Path{start}}}
	visited := make(map[board.Position]bool, board.Size*board.Size)
	found := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.pos == end {
			ps.Paths = append(ps.Paths, cur.path)
			found = true
			continue
		}

		// Keep draining so same-depth arrivals at end are still collected.
		if found {
			continue
		}

		visited[cur.pos] = true
		for _, next := range board.Neighbors(cur.pos) {
			if visited[next] {
				continue
			}
			queue = append(queue, entry{pos: next, path: cur.path.extend(next)})
		}
	}

	return ps, nil
}

// Distance returns the minimum number of knight moves between a and b.
func Distance(a, b board.Position) (int, error) {
	ps, err := FindShortestPaths(a, b)
	if err != nil {
		return 0, err
	}
	if ps.Empty() {
		return 0, errs.New(errs.ErrCodeNotFound, "no path from %v to %v", a, b)
	}
	return ps.Moves(), nil
}
