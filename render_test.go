package pyline

import (
	"bytes"
	"testing"

	"github.com/cliofy/govte"
	"github.com/cliofy/govte/terminal"
	"github.com/stretchr/testify/require"
)

// replay feeds raw bytes through a fresh govte parser/terminal pair and
// returns the resulting screen buffer, letting tests assert on what a
// real terminal emulator would show rather than comparing raw ANSI
// byte strings.
func replay(t *testing.T, raw []byte) *terminal.TerminalBuffer {
	t.Helper()
	parser := govte.NewParser()
	term := terminal.NewTerminalBuffer(80, 24)
	for _, b := range raw {
		parser.Advance(term, []byte{b})
	}
	return term
}

func newRenderTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	arena, err := NewArena()
	require.NoError(t, err)
	t.Cleanup(func() { arena.Free() })

	buf := NewBuffer(arena)
	var out bytes.Buffer
	renderer := NewRenderer(&out)
	e := NewEngine(buf, NewHistory(arena), NewDecoder(bytes.NewReader(nil)), renderer)
	return e, &out
}

func Test_RenderCurrentLineShowsPromptAndContent(t *testing.T) {
	e, out := newRenderTestEngine(t)
	e.buf.Append([]byte("print(1)"))
	e.col = len("print(1)")

	e.renderer.RenderCurrentLine(e)
	term := replay(t, out.Bytes())

	require.Contains(t, term.GetDisplay(), ">>> print(1)")
}

func Test_RenderCurrentLineCursorColumn(t *testing.T) {
	e, out := newRenderTestEngine(t)
	e.buf.Append([]byte("abc"))
	e.col = 2

	e.renderer.RenderCurrentLine(e)
	term := replay(t, out.Bytes())

	x, y := term.CursorPosition()
	require.Equal(t, 0, y)
	// column is 0-based in govte; cursorColumn(2) is 1-based col 7
	// (2 + 1 + promptWidth), so the 0-based x is 6.
	require.Equal(t, cursorColumn(2)-1, x)
}

func Test_FullRepaintShowsAllLinesWithPrompts(t *testing.T) {
	e, out := newRenderTestEngine(t)
	e.buf.Append([]byte("if x:\n    print(x)\n"))
	e.row = 2
	e.col = 0

	e.renderer.FullRepaint(e)
	term := replay(t, out.Bytes())

	display := term.GetDisplay()
	require.Contains(t, display, ">>> if x:")
	require.Contains(t, display, "...     print(x)")
}

func Test_RenderLinesBelowReturnsCursorToOriginalRow(t *testing.T) {
	e, out := newRenderTestEngine(t)
	e.buf.Append([]byte("if x:\n    pass"))
	e.row = 0
	e.col = 5

	e.renderer.RenderLinesBelow(e)
	term := replay(t, out.Bytes())

	x, y := term.CursorPosition()
	require.Equal(t, 0, y)
	require.Equal(t, cursorColumn(5)-1, x)
}
