// Package history keeps a linear undo/redo log of full board snapshots.
//
// Every entry is a complete copy of the board, not a command with an inverse,
// and undo is a cursor move. Recording after an undo discards the redo branch.
package history

import (
	"pegboard/internal/board"
	"pegboard/internal/errors"
)

// Log is the snapshot sequence S[0..n] and the cursor c pointing at the
// active snapshot. 0 <= c <= n always holds.
type Log struct {
	snapshots []board.State
	cursor    int
}

// New returns a log holding only initial, with the cursor on it.
func New(initial board.State) *Log {
	return &Log{snapshots: []board.State{initial.Clone()}}
}

// Record discards every snapshot after the cursor, appends s and moves the
// cursor onto it.
func (l *Log) Record(s board.State) {
	l.snapshots = append(l.snapshots[:l.cursor+1], s.Clone())
	l.cursor = len(l.snapshots) - 1
}

// Undo moves the cursor back one step and returns the snapshot it lands on.
// At the first snapshot it returns a HISTORY_BOUNDARY error and the current
// snapshot.
func (l *Log) Undo() (board.State, error) {
	if l.cursor == 0 {
		return l.Current(), errors.New(errors.ErrCodeHistoryBoundary, "nothing to undo")
	}
	l.cursor--
	return l.Current(), nil
}

// Redo moves the cursor forward one step and returns the snapshot it lands
// on. At the last snapshot it returns a HISTORY_BOUNDARY error and the current
// snapshot.
func (l *Log) Redo() (board.State, error) {
	if l.cursor == len(l.snapshots)-1 {
		return l.Current(), errors.New(errors.ErrCodeHistoryBoundary, "nothing to redo")
	}
	l.cursor++
	return l.Current(), nil
}

// Current returns a copy of the snapshot under the cursor.
func (l *Log) Current() board.State {
	return l.snapshots[l.cursor].Clone()
}

// CanUndo reports whether Undo would move the cursor.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (l *Log) CanRedo() bool { return l.cursor < len(l.snapshots)-1 }

// Len returns the number of snapshots.
func (l *Log) Len() int { return len(l.snapshots) }

// Cursor returns the index of the active snapshot.
func (l *Log) Cursor() int { return l.cursor }
