package pyline

import "unicode"

// indentStep is the fixed number of spaces corresponding to one
// indentation level.
const indentStep = 4

// Buffer is a contiguous, arena-backed byte buffer holding the current,
// possibly multiline, input. It maintains len <= cap and always keeps
// room for one byte past len, so CString can write a nul there and hand
// the content to a C-string-shaped sink without copying. The byte past
// len is not kept zero between CString calls.
type Buffer struct {
	arena *Arena
	data  []byte // data[:cap(data)] is the allocated region
	n     int    // logical length of the content
}

// NewBuffer returns an empty buffer backed by arena.
func NewBuffer(arena *Arena) *Buffer {
	return &Buffer{arena: arena}
}

// Len reports the logical length of the buffer's content.
func (b *Buffer) Len() int { return b.n }

// Bytes returns the live content as a read-only view. The view aliases
// the buffer's storage and is invalidated by any mutation that triggers
// a regrow.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// String returns the live content as a string (a copy).
func (b *Buffer) String() string { return string(b.Bytes()) }

// CString returns the content nul-terminated, suitable for handing to an
// opaque C-string-shaped sink.
func (b *Buffer) CString() []byte {
	b.ensureAdditional(1)
	b.data[b.n] = 0
	return b.data[:b.n+1]
}

// ensureAdditional grows the buffer so at least `additional` more bytes
// (plus the nul terminator) fit past the current length. Growth is by
// doubling, backed by a fresh arena allocation; the old region is
// abandoned, never freed individually.
func (b *Buffer) ensureAdditional(additional int) {
	needed := b.n + additional + 1 // +1 to always keep room for the nul terminator
	if needed <= cap(b.data) {
		return
	}
	oldCap := cap(b.data)
	grow := oldCap
	if additional > grow {
		grow = additional
	}
	newCap := oldCap + grow
	if newCap < needed {
		newCap = needed
	}
	newData := b.arena.Bump(newCap)
	copy(newData, b.data[:b.n])
	b.data = newData[:newCap]
}

// Reset clears the buffer's logical content without releasing storage.
// Storage is released in bulk by resetting the owning Arena.
func (b *Buffer) Reset() {
	b.data = nil
	b.n = 0
}

// AppendChar appends a single byte.
func (b *Buffer) AppendChar(c byte) {
	b.ensureAdditional(1)
	b.data[b.n] = c
	b.n++
}

// Append appends raw bytes.
func (b *Buffer) Append(p []byte) {
	b.ensureAdditional(len(p))
	copy(b.data[b.n:], p)
	b.n += len(p)
}

// InsertAt inserts a single byte at index i, shifting the remainder right.
func (b *Buffer) InsertAt(i int, c byte) {
	if i == b.n {
		b.AppendChar(c)
		return
	}
	b.ensureAdditional(1)
	copy(b.data[i+1:b.n+1], b.data[i:b.n])
	b.data[i] = c
	b.n++
}

// InsertBytesAt inserts raw bytes at index i, shifting the remainder right.
func (b *Buffer) InsertBytesAt(i int, p []byte) {
	if len(p) == 0 {
		return
	}
	if i == b.n {
		b.Append(p)
		return
	}
	b.ensureAdditional(len(p))
	copy(b.data[i+len(p):b.n+len(p)], b.data[i:b.n])
	copy(b.data[i:], p)
	b.n += len(p)
}

// RemoveAt removes and returns the byte at index i.
func (b *Buffer) RemoveAt(i int) byte {
	c := b.data[i]
	copy(b.data[i:b.n-1], b.data[i+1:b.n])
	b.n--
	return c
}

// Pop removes and returns the last byte. Returns 0 if the buffer is empty.
func (b *Buffer) Pop() byte {
	if b.n == 0 {
		return 0
	}
	b.n--
	return b.data[b.n]
}

// ByteAt returns the byte at index i.
func (b *Buffer) ByteAt(i int) byte { return b.data[i] }

// SliceFrom returns a read-only view [i, Len()).
func (b *Buffer) SliceFrom(i int) []byte { return b.data[i:b.n] }

// SliceTo returns a read-only view [0, j).
func (b *Buffer) SliceTo(j int) []byte { return b.data[:j] }

// Slice returns a read-only view [i, j).
func (b *Buffer) Slice(i, j int) []byte { return b.data[i:j] }

// SearchNth returns the index of the n-th (1-based) occurrence of c, or
// Len() if there's no such occurrence.
func (b *Buffer) SearchNth(c byte, n int) int {
	idx := 0
	for ; idx < b.n && n != 0; idx++ {
		if b.data[idx] == c {
			n--
		}
		if n == 0 {
			break
		}
	}
	return idx
}

// SearchNthPlusOne returns the index just past the n-th (1-based)
// occurrence of c, or Len() if there's no such occurrence. This is used
// to locate line starts (one past a '\n').
func (b *Buffer) SearchNthPlusOne(c byte, n int) int {
	idx := 0
	for ; idx < b.n && n != 0; idx++ {
		if b.data[idx] == c {
			n--
		}
		if n == 0 {
			return idx + 1
		}
	}
	return idx
}

// NthLine returns the n-th (0-based) logical line as a read-only view.
func (b *Buffer) NthLine(n int) []byte {
	start := b.SearchNthPlusOne('\n', n)
	end := b.SearchNth('\n', n+1)
	return b.Slice(start, end)
}

// LineStart returns the byte offset where logical line row begins.
func (b *Buffer) LineStart(row int) int {
	return b.SearchNthPlusOne('\n', row)
}

// LineEnd returns the byte offset where logical line row ends (exclusive,
// i.e. the index of the line's terminating '\n', or Len()).
func (b *Buffer) LineEnd(row int) int {
	return b.SearchNth('\n', row+1)
}

// NewlineCount returns the number of '\n' bytes in the buffer.
func (b *Buffer) NewlineCount() int {
	n := 0
	for _, c := range b.data[:b.n] {
		if c == '\n' {
			n++
		}
	}
	return n
}

// LineCount counts non-empty logical lines.
func (b *Buffer) LineCount() int {
	numLines := 0
	lineLen := 0
	for _, c := range b.data[:b.n] {
		if c == '\n' {
			if lineLen > 0 {
				numLines++
			}
			lineLen = 0
			continue
		}
		lineLen++
	}
	if lineLen > 0 {
		numLines++
	}
	return numLines
}

// IndentationLevel returns the count of leading space characters in line
// divided by the fixed indent step.
func IndentationLevel(line []byte) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i / indentStep
}

// RightTrim returns a view of b with trailing whitespace removed.
func RightTrim(line []byte) []byte {
	end := len(line)
	for end > 0 && unicode.IsSpace(rune(line[end-1])) {
		end--
	}
	return line[:end]
}

// IsSpace reports whether every byte in line is whitespace. An empty
// line counts as whitespace-only.
func IsSpace(line []byte) bool {
	for _, c := range line {
		if !unicode.IsSpace(rune(c)) {
			return false
		}
	}
	return true
}

// EndsWith reports whether line's last byte is c.
func EndsWith(line []byte, c byte) bool {
	return len(line) != 0 && line[len(line)-1] == c
}

// IsPythonTerminated reports whether the right-trimmed buffer does NOT
// end in ':' or '\\'. The engine's completion decision does not call
// it: handleNewLine checks only for a trailing ':'.
func IsPythonTerminated(line []byte) bool {
	trimmed := RightTrim(line)
	return !(EndsWith(trimmed, ':') || EndsWith(trimmed, '\\'))
}
