// Package history keeps the undo/redo sequence of full-canvas snapshots.
//
// The store is a list plus a cursor. Committing while the cursor is not at
// the end discards every snapshot after it: the undone branch is destroyed,
// not preserved. Memory grows with snapshot count times pixel area, so a
// limit can be configured to drop the oldest entries.
package history

// Store is an ordered list of snapshots and the index of the current one.
// The zero value is not ready for use; call New.
type Store struct {
	snaps  []*Snapshot
	cursor int
	limit  int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit caps the number of retained snapshots. Zero or less means
// unbounded.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{cursor: -1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Commit truncates the store to [0..cursor], appends snap and makes it
// current.
func (s *Store) Commit(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.snaps = append(s.snaps[:s.cursor+1], snap)
	// clear the tail so dropped snapshots can be collected
	tail := s.snaps[len(s.snaps):cap(s.snaps)]
	for i := range tail {
		tail[i] = nil
	}
	s.cursor = len(s.snaps) - 1

	if s.limit > 0 && len(s.snaps) > s.limit {
		drop := len(s.snaps) - s.limit
		kept := make([]*Snapshot, s.limit)
		copy(kept, s.snaps[drop:])
		s.snaps = kept
		s.cursor -= drop
	}
}

// Undo moves the cursor back one step and returns the snapshot to restore.
// At the start of history it does nothing and returns false.
func (s *Store) Undo() (*Snapshot, bool) {
	if s.cursor <= 0 {
		return nil, false
	}
	s.cursor--
	return s.snaps[s.cursor], true
}

// Redo moves the cursor forward one step and returns the snapshot to
// restore. At the end of history it does nothing and returns false.
func (s *Store) Redo() (*Snapshot, bool) {
	if s.cursor >= len(s.snaps)-1 {
		return nil, false
	}
	s.cursor++
	return s.snaps[s.cursor], true
}

// Current returns the snapshot at the cursor, or nil when empty.
func (s *Store) Current() *Snapshot {
	if s.cursor < 0 {
		return nil
	}
	return s.snaps[s.cursor]
}

func (s *Store) CanUndo() bool { return s.cursor > 0 }
func (s *Store) CanRedo() bool { return s.cursor < len(s.snaps)-1 }
func (s *Store) Len() int      { return len(s.snaps) }
func (s *Store) Cursor() int   { return s.cursor }
func (s *Store) Empty() bool   { return len(s.snaps) == 0 }

// Reset drops every snapshot.
func (s *Store) Reset() {
	s.snaps = nil
	s.cursor = -1
}

// Bytes is the total pixel memory held by the store.
func (s *Store) Bytes() int {
	n := 0
	for _, snap := range s.snaps {
		n += snap.SizeBytes()
	}
	return n
}
