package pyline

import (
	"bufio"
	"fmt"
	"io"
)

// promptWidth is the fixed printable width of both prompts. ANSI style
// bytes don't count toward it.
const promptWidth = 4

const (
	ansiEraseLine        = "\x1b[2K"
	ansiEraseToEnd       = "\x1b[0J"
	ansiCursorUp1        = "\x1b[1A"
	ansiCursorRight1     = "\x1b[C"
	ansiBackspace        = "\b"
	ansiStyleReset       = "\x1b[0m"
	ansiStyleBold        = "\x1b[1m"
	ansiStyleBrightBlue  = "\x1b[94m"
	ansiStyleBrightBlack = "\x1b[90m"
)

var (
	promptNewStatement = ansiStyleBold + ansiStyleBrightBlue + ">>> " + ansiStyleReset
	promptContinuation = ansiStyleBold + ansiStyleBrightBlack + "... " + ansiStyleReset
)

// Renderer performs the incremental terminal redraw protocol described
// by spec.md 4.5. It borrows the editing engine's buffer read-only;
// stdout is its exclusive responsibility, flushed at the close of every
// public method (an event boundary).
type Renderer struct {
	w *bufio.Writer
}

// NewRenderer wraps w for buffered, explicitly-flushed output.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriter(w)}
}

func promptFor(row int) string {
	if row == 0 {
		return promptNewStatement
	}
	return promptContinuation
}

// cursorColumn converts a buffer column to a 1-based screen column
// accounting for the prompt.
func cursorColumn(col int) int {
	return col + 1 + promptWidth
}

// RenderCurrentLine erases and redraws the line the cursor is on: erase
// entire line, carriage return, prompt, content, reposition the cursor.
func (r *Renderer) RenderCurrentLine(e *Engine) {
	line := e.buf.NthLine(e.row)
	fmt.Fprintf(r.w, "%s\r%s%s\r\x1b[%dG", ansiEraseLine, promptFor(e.row), line, cursorColumn(e.col))
	r.w.Flush()
}

// RenderLinesBelow redraws every logical line below the cursor's row,
// then returns the cursor to (row, col).
func (r *Renderer) RenderLinesBelow(e *Engine) {
	last := e.buf.NewlineCount()
	n := 0
	for row := e.row + 1; row <= last; row++ {
		line := e.buf.NthLine(row)
		fmt.Fprintf(r.w, "\n%s\r%s%s", ansiEraseLine, promptFor(row), line)
		n++
	}
	if n > 0 {
		fmt.Fprintf(r.w, "\x1b[%dF", n)
	}
	fmt.Fprintf(r.w, "\r\x1b[%dG", cursorColumn(e.col))
	r.w.Flush()
}

// ClearToEndOfScreen erases from the cursor to the end of the screen —
// used after a backspace-join, to wipe the now-stale trailing row left
// over from the line count shrinking by one.
func (r *Renderer) ClearToEndOfScreen(e *Engine) {
	fmt.Fprint(r.w, ansiEraseToEnd)
	r.w.Flush()
}

// FullRepaint redraws every line from row 0 down, used after a history
// recall: move up to row 0, erase to end of screen, render each line
// with its prompt, return the cursor to (row, col).
func (r *Renderer) FullRepaint(e *Engine) {
	if e.row > 0 {
		fmt.Fprintf(r.w, "\x1b[%dF", e.row)
	} else {
		fmt.Fprint(r.w, "\r")
	}
	fmt.Fprint(r.w, ansiEraseToEnd)

	last := e.buf.NewlineCount()
	for row := 0; row <= last; row++ {
		if row > 0 {
			fmt.Fprint(r.w, "\n")
		}
		line := e.buf.NthLine(row)
		fmt.Fprintf(r.w, "%s%s", promptFor(row), line)
	}
	if up := last - e.row; up > 0 {
		fmt.Fprintf(r.w, "\x1b[%dF", up)
	}
	fmt.Fprintf(r.w, "\r\x1b[%dG", cursorColumn(e.col))
	r.w.Flush()
}

// ClearCurrentLine erases the entire current line and returns the
// cursor to its start — used on statement completion to remove the
// empty indented continuation prompt before the executor's own output
// (or the next statement's prompt) begins at that same position.
func (r *Renderer) ClearCurrentLine() {
	fmt.Fprintf(r.w, "%s\r", ansiEraseLine)
	r.w.Flush()
}

// Prompt prints the new-statement prompt, used to start the next
// statement once the previous one has committed.
func (r *Renderer) Prompt() {
	fmt.Fprint(r.w, promptFor(0))
	r.w.Flush()
}

// MoveCursorLeft moves the cursor left one column without touching content.
func (r *Renderer) MoveCursorLeft() {
	fmt.Fprint(r.w, ansiBackspace)
	r.w.Flush()
}

// MoveCursorRight moves the cursor right one column without touching content.
func (r *Renderer) MoveCursorRight() {
	fmt.Fprint(r.w, ansiCursorRight1)
	r.w.Flush()
}

// RepositionRow moves the cursor by deltaRows (negative up, positive
// down, zero same row) and then to column col, without rewriting
// content — used for arrow motions that cross a line boundary.
func (r *Renderer) RepositionRow(deltaRows, col int) {
	switch {
	case deltaRows == -1:
		fmt.Fprint(r.w, ansiCursorUp1)
		fmt.Fprintf(r.w, "\r\x1b[%dG", cursorColumn(col))
	case deltaRows < 0:
		fmt.Fprintf(r.w, "\x1b[%dF", -deltaRows)
		fmt.Fprintf(r.w, "\x1b[%dG", cursorColumn(col))
	case deltaRows > 0:
		for i := 0; i < deltaRows; i++ {
			fmt.Fprint(r.w, "\n")
		}
		fmt.Fprintf(r.w, "\r\x1b[%dG", cursorColumn(col))
	default:
		fmt.Fprintf(r.w, "\r\x1b[%dG", cursorColumn(col))
	}
	r.w.Flush()
}
