package game

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// historyEntry is one undoable operation and the changes it made
type historyEntry struct {
	op      string
	journal *core.Journal
}

// History is a linear undo/redo stack. Pushing a new entry drops the redo
// tail.
type History struct {
	performed []historyEntry
	undone    []historyEntry
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{}
}

// Push records a committed operation
func (h *History) Push(op string, j *core.Journal) {
	h.performed = append(h.performed, historyEntry{op: op, journal: j})
	h.undone = h.undone[:0]
}

// Undo reverts the newest operation and returns its name
func (h *History) Undo() (string, error) {
	if len(h.performed) == 0 {
		return "", core.ErrNothingToUndo
	}
	e := h.performed[len(h.performed)-1]
	h.performed = h.performed[:len(h.performed)-1]
	e.journal.Revert()
	h.undone = append(h.undone, e)
	return e.op, nil
}

// Redo re-applies the most recently undone operation
func (h *History) Redo() (string, error) {
	if len(h.undone) == 0 {
		return "", core.ErrNothingToRedo
	}
	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	e.journal.Replay()
	h.performed = append(h.performed, e)
	return e.op, nil
}

func (h *History) HasUndo() bool { return len(h.performed) > 0 }
func (h *History) HasRedo() bool { return len(h.undone) > 0 }

// Len returns the number of operations that can be undone
func (h *History) Len() int { return len(h.performed) }

// Clear forgets every entry
func (h *History) Clear() {
	h.performed = nil
	h.undone = nil
}
