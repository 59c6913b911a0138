package pyline

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/creack/termios/raw"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// ErrNotATerminal is returned when raw-mode setup is attempted on a file
// descriptor that isn't a tty.
var ErrNotATerminal = errors.New("pyline: not a terminal")

// defaultColumns is used when the terminal's width can't be determined.
const defaultColumns = 80

// Terminal owns the raw-mode lifecycle of a single file descriptor. It
// captures the prior termios settings on EnterRawMode and guarantees
// their restoration on Close, regardless of how the caller exits —
// the scoped-acquisition pattern the original source's termios handling
// was missing.
type Terminal struct {
	fd      int
	saved   *raw.Termios
	rawmode bool
}

// EnterRawMode puts fd into the mode this module's keystroke decoder
// requires: noncanonical, echo off, VMIN=1, VTIME=0 (a blocking
// single-byte read with no timeout). It fails if fd is not a tty.
func EnterRawMode(fd int) (*Terminal, error) {
	if !isatty.IsTerminal(uintptr(fd)) {
		return nil, fmt.Errorf("pyline: fd %d: %w", fd, ErrNotATerminal)
	}
	saved, err := raw.TcGetAttr(uintptr(fd))
	if err != nil {
		return nil, fmt.Errorf("pyline: get termios: %w", err)
	}
	mode := *saved
	mode.Lflag &^= syscall.ICANON | syscall.ECHO
	mode.Cc[syscall.VMIN] = 1
	mode.Cc[syscall.VTIME] = 0
	if err := raw.TcSetAttr(uintptr(fd), &mode); err != nil {
		return nil, fmt.Errorf("pyline: set termios: %w", err)
	}
	return &Terminal{fd: fd, saved: saved, rawmode: true}, nil
}

// Close restores the terminal mode saved at EnterRawMode time. It is
// idempotent and safe to defer.
func (t *Terminal) Close() error {
	if !t.rawmode {
		return nil
	}
	t.rawmode = false
	return raw.TcSetAttr(uintptr(t.fd), t.saved)
}

// Columns returns the terminal's width, falling back to defaultColumns
// if the ioctl fails or reports zero width. Nothing else in this module
// calls it; in particular it plays no part in line wrapping (a named
// non-goal).
func Columns(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultColumns
	}
	return int(ws.Col)
}
