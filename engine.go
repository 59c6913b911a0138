package pyline

import (
	"context"
	"errors"
	"io"
	"log"
)

// ErrQuit is returned by Run when the user ends the session with EOF
// (Ctrl-D on an empty buffer).
var ErrQuit = errors.New("pyline: quit")

// Executor consumes a committed, complete statement. Implementations
// typically feed source into an embedded interpreter. Execute's error,
// if any, is surfaced to the user but never stops the read-eval loop —
// the loop doesn't distinguish a failed statement from a successful one.
type Executor interface {
	Execute(source string) error
}

// Cursor is the engine's logical position within the multiline buffer:
// a zero-based logical line and a zero-based column within that line.
type Cursor struct {
	Row int
	Col int
}

// Engine drives the keystroke state machine described by spec.md 4.4: it
// owns the buffer, cursor, and history for one input session and
// translates decoded Events into buffer edits plus the minimal terminal
// redraw each edit requires.
type Engine struct {
	buf      *Buffer
	history  *History
	decoder  *Decoder
	renderer *Renderer

	row, col int // mirrors Cursor; split for direct indexing convenience
	histIdx  int // -1 when not browsing history
	saved    []byte
}

// NewEngine wires together an already-constructed buffer, history,
// decoder and renderer into a ready-to-run Engine.
func NewEngine(buf *Buffer, history *History, decoder *Decoder, renderer *Renderer) *Engine {
	return &Engine{
		buf:      buf,
		history:  history,
		decoder:  decoder,
		renderer: renderer,
		histIdx:  -1,
	}
}

// Cursor reports the engine's current logical cursor position.
func (e *Engine) Cursor() Cursor { return Cursor{Row: e.row, Col: e.col} }

// Run decodes and handles events until the user quits, feeding every
// committed statement to exec. ctx is checked between statements so a
// caller can unblock a session waiting on terminal input at the next
// natural boundary; it does not interrupt a pending 1-byte stdin read.
// Run returns ErrQuit when the user signals EOF on a blank buffer,
// ctx.Err() if ctx is done, or the first I/O error encountered reading
// the underlying stream.
func (e *Engine) Run(ctx context.Context, exec Executor) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runOne(exec); err != nil {
			return err
		}
	}
}

// runOne drives a single statement to completion: repeatedly handling
// events until one commits the buffer, then executing it and resetting
// state for the next statement.
func (e *Engine) runOne(exec Executor) error {
	e.resetStatement()
	e.renderer.Prompt()
	for {
		ev, err := e.decoder.Next()
		if err != nil {
			if err == io.EOF {
				return ErrQuit
			}
			if errors.Is(err, ErrUnknownEscape) {
				continue // unrecognized escape sequences are dropped
			}
			return err
		}
		done, source, err := e.Handle(ev)
		if err != nil {
			return err
		}
		if done {
			if err := exec.Execute(source); err != nil {
				log.Printf("pyline: statement error: %v", err)
			}
			return nil
		}
	}
}

func (e *Engine) resetStatement() {
	e.buf.arena.Reset()
	e.buf.Reset()
	e.row, e.col = 0, 0
	e.histIdx = -1
	e.saved = nil
}

// Handle applies a single decoded Event to the engine's state, issuing
// whatever incremental redraw it requires. When the event commits a
// complete statement, done is true, source holds the committed text
// (without the newline of the committing Enter; a block ended by a
// blank line keeps the newline after its last content line, e.g.
// "if x:\n    print(x)\n"), and the statement has already been
// pushed onto history; the caller is responsible only for invoking the
// Executor. Handle returns ErrQuit when EOF arrives on a blank
// (all-whitespace, including empty) buffer.
func (e *Engine) Handle(ev Event) (done bool, source string, err error) {
	switch ev.Kind {
	case EventChar:
		e.handleChar(ev.Rune)
	case EventBackspace:
		e.handleBackspace()
	case EventEnter:
		done, source = e.handleNewLine()
		if done {
			e.history.Push([]byte(source))
		}
	case EventArrowLeft:
		e.arrowLeft()
	case EventArrowRight:
		e.arrowRight()
	case EventArrowUp:
		e.arrowUp()
	case EventArrowDown:
		e.arrowDown()
	case EventInterrupt:
		e.resetStatement()
		e.renderer.FullRepaint(e)
	case EventEOF:
		if IsSpace(e.buf.Bytes()) {
			return false, "", ErrQuit
		}
	}
	return done, source, nil
}

// handleChar inserts a single printable byte at the cursor and redraws
// the current line.
func (e *Engine) handleChar(c byte) {
	offset := e.buf.LineStart(e.row) + e.col
	e.buf.InsertAt(offset, c)
	e.col++
	e.renderer.RenderCurrentLine(e)
}

// handleBackspace removes the byte left of the cursor. At the start of
// a line (col == 0) on any row but the first, it joins the current line
// onto the end of the previous one, moving the cursor to the join
// point, moving the terminal cursor to the start of that row's content
// and clearing from there to the end of the screen (the line count
// just shrank by one), then re-rendering the current line and any
// lines below.
func (e *Engine) handleBackspace() {
	if e.col > 0 {
		offset := e.buf.LineStart(e.row) + e.col - 1
		e.buf.RemoveAt(offset)
		e.col--
		e.renderer.RenderCurrentLine(e)
		return
	}
	if e.row == 0 {
		return
	}
	prevLen := len(e.buf.NthLine(e.row - 1))
	joinOffset := e.buf.LineStart(e.row) - 1 // the '\n' joining the two lines
	e.buf.RemoveAt(joinOffset)
	e.row--
	e.col = prevLen
	e.renderer.RepositionRow(-1, 0)
	e.renderer.ClearToEndOfScreen(e)
	e.renderer.RenderCurrentLine(e)
	if e.hasLinesBelow() {
		e.renderer.RenderLinesBelow(e)
	}
}

// handleNewLine implements the Enter key's dual role: deciding whether
// the statement is complete, and — only when it is not — inserting the
// auto-indentation for the next line.
//
// Completion is decided from the line as it stood BEFORE the bare '\n'
// is inserted, mirroring dy.c's control flow: auto-indent is computed
// and applied only on the "continue editing" path, never before the
// completion check runs. Folding indent insertion into the completion
// decision (as a literal reading of "insert a newline with auto-indent,
// then check completion" would) produces trailing padding on committed
// source that the reference implementation never emits.
func (e *Engine) handleNewLine() (done bool, source string) {
	justEdited := append([]byte(nil), e.buf.NthLine(e.row)...)
	wasLastLine := e.row == e.buf.NewlineCount()
	offset := e.buf.LineStart(e.row) + e.col
	e.buf.InsertAt(offset, '\n')

	trimmed := RightTrim(justEdited)
	blankEndsBlock := IsSpace(justEdited) && wasLastLine
	complete := blankEndsBlock ||
		(IndentationLevel(trimmed) == 0 && !EndsWith(trimmed, ':'))

	if complete {
		var committed string
		if blankEndsBlock {
			// The line just terminated is itself nothing but the
			// previous continuation's auto-indent padding; drop it
			// (and its newline) rather than keep it as trailing junk.
			committed = string(e.buf.Bytes()[:e.buf.LineStart(e.row)])
		} else {
			src := e.buf.Bytes()
			if EndsWith(src, '\n') {
				src = src[:len(src)-1]
			}
			committed = string(src)
		}
		e.renderer.ClearCurrentLine()
		return true, committed
	}

	indent := IndentationLevel(justEdited)
	if EndsWith(trimmed, ':') {
		indent++
	}
	pad := indent * indentStep
	for i := 0; i < pad; i++ {
		e.buf.InsertAt(offset+1+i, ' ')
	}
	e.row++
	e.col = pad
	e.renderer.RenderCurrentLine(e)
	if e.hasLinesBelow() {
		e.renderer.RenderLinesBelow(e)
	}
	return false, ""
}

// arrowLeft moves the cursor one column left, wrapping to the end of
// the previous line at column 0.
func (e *Engine) arrowLeft() {
	if e.col > 0 {
		e.col--
		e.renderer.MoveCursorLeft()
		return
	}
	if e.row == 0 {
		return
	}
	e.row--
	e.col = len(e.buf.NthLine(e.row))
	e.renderer.RepositionRow(-1, e.col)
}

// arrowRight moves the cursor one column right, wrapping to the start
// of the next line at the current line's end.
func (e *Engine) arrowRight() {
	if e.col < len(e.buf.NthLine(e.row)) {
		e.col++
		e.renderer.MoveCursorRight()
		return
	}
	if e.row == e.buf.NewlineCount() {
		return
	}
	e.row++
	e.col = 0
	e.renderer.RepositionRow(1, e.col)
}

// arrowUp moves the cursor up one logical line if one exists, clamping
// the column; otherwise, on the buffer's first line, it recalls the
// previous history entry.
func (e *Engine) arrowUp() {
	if e.row > 0 {
		e.row--
		e.col = clamp(e.col, len(e.buf.NthLine(e.row)))
		e.renderer.RepositionRow(-1, e.col)
		return
	}
	if e.history.IsEmpty() {
		return
	}
	if e.histIdx == -1 {
		e.saved = append([]byte(nil), e.buf.Bytes()...)
		e.histIdx = e.history.Len()
	}
	if e.histIdx == 0 {
		return
	}
	e.histIdx--
	e.recallHistory(e.history.Get(e.histIdx))
}

// arrowDown moves the cursor down one logical line if one exists,
// clamping the column; otherwise, on the buffer's last line, it recalls
// the next history entry (or the saved in-progress statement once
// history is exhausted), symmetric with arrowUp.
func (e *Engine) arrowDown() {
	if e.row < e.buf.NewlineCount() {
		e.row++
		e.col = clamp(e.col, len(e.buf.NthLine(e.row)))
		e.renderer.RepositionRow(1, e.col)
		return
	}
	if e.histIdx == -1 {
		return
	}
	e.histIdx++
	if e.histIdx >= e.history.Len() {
		e.recallHistory(e.saved)
		e.histIdx = -1
		e.saved = nil
		return
	}
	e.recallHistory(e.history.Get(e.histIdx))
}

// recallHistory replaces the buffer's content with a right-trimmed copy
// of entry, positions the cursor at the end of its last line, and fully
// repaints the screen. Multiline entries are pushed with their
// terminating '\n' still attached (handleNewLine's blankEndsBlock
// branch yields e.g. "if x:\n    print(x)\n"); right-trimming here is
// what keeps the cursor on the last line of actual content instead of
// an empty trailing line.
func (e *Engine) recallHistory(entry []byte) {
	oldRow := e.row
	e.buf.Reset()
	e.buf.Append(RightTrim(entry))
	e.row = e.buf.NewlineCount()
	e.col = len(e.buf.NthLine(e.row))
	// FullRepaint climbs e.row rows to reach row 0, so the terminal
	// cursor must first sit on the new e.row.
	if delta := e.row - oldRow; delta != 0 {
		e.renderer.RepositionRow(delta, 0)
	}
	e.renderer.FullRepaint(e)
}

// hasLinesBelow reports whether any logical line exists after the
// cursor's current row.
func (e *Engine) hasLinesBelow() bool {
	return e.row < e.buf.NewlineCount()
}

// clamp bounds col to [0, max].
func clamp(col, max int) int {
	if col > max {
		return max
	}
	return col
}
