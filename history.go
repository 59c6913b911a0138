package pyline

// History is an ordered sequence of previously committed statements. Each
// entry is an owned copy living in a history arena distinct from the
// input arena, so entries outlive the statement that produced them. The
// history arena is reset only at process end (see Arena docs) so indices
// handed out by Push remain stable for the process lifetime.
type History struct {
	arena   *Arena
	entries [][]byte
}

// NewHistory returns an empty history backed by arena.
func NewHistory(arena *Arena) *History {
	return &History{arena: arena}
}

// Push copies entry into the history arena and appends it.
func (h *History) Push(entry []byte) {
	owned := h.arena.Bump(len(entry))
	copy(owned, entry)
	h.entries = append(h.entries, owned)
}

// Get returns the i-th history entry, oldest first.
func (h *History) Get(i int) []byte { return h.entries[i] }

// Len reports the number of history entries.
func (h *History) Len() int { return len(h.entries) }

// IsEmpty reports whether the history is empty.
func (h *History) IsEmpty() bool { return len(h.entries) == 0 }
