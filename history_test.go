package pyline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	arena, err := NewArena()
	require.NoError(t, err)
	t.Cleanup(func() { arena.Free() })
	return NewHistory(arena)
}

func Test_HistoryPushAndGet(t *testing.T) {
	h := newTestHistory(t)
	require.True(t, h.IsEmpty())

	h.Push([]byte("a = 1"))
	h.Push([]byte("b = 2"))

	require.Equal(t, 2, h.Len())
	require.False(t, h.IsEmpty())
	require.Equal(t, "a = 1", string(h.Get(0)))
	require.Equal(t, "b = 2", string(h.Get(1)))
}

// Test_HistoryEntriesAreOwnedCopies ensures mutating the caller's slice
// after Push doesn't affect the stored entry — entries are copied into
// the history arena, not aliased.
func Test_HistoryEntriesAreOwnedCopies(t *testing.T) {
	h := newTestHistory(t)
	entry := []byte("mutate me")
	h.Push(entry)
	entry[0] = 'X'

	require.Equal(t, "mutate me", string(h.Get(0)))
}

func Test_HistoryStableIndicesAcrossPushes(t *testing.T) {
	h := newTestHistory(t)
	h.Push([]byte("first"))
	first := h.Get(0)
	for i := 0; i < 100; i++ {
		h.Push([]byte("filler"))
	}
	require.Equal(t, "first", string(first))
	require.Equal(t, "first", string(h.Get(0)))
}

// Test_RecallMultilineEntryIsRightTrimmedWithCursorAtEnd covers
// invariant I5: recalling an entry replaces the buffer with a
// right-trimmed copy and positions the cursor at the end of its last
// line. Multiline commits are pushed to history with their terminating
// '\n' still attached (handleNewLine's blankEndsBlock branch), so a
// naive recall would leave the cursor on an empty trailing line instead
// of at the end of "    print(x)".
func Test_RecallMultilineEntryIsRightTrimmedWithCursorAtEnd(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	e.history.Push([]byte("if x:\n    print(x)\n"))
	e.recallHistory(e.history.Get(0))

	require.Equal(t, "if x:\n    print(x)", e.buf.String())
	require.Equal(t, 1, e.row)
	require.Equal(t, len("    print(x)"), e.col)
}
