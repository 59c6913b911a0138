package pyline

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrArenaExhausted is returned (and, for Bump, panicked with) when an
// arena's backing region can't satisfy a request. The region is sized
// generously, so running out represents a bug rather than a recoverable
// condition.
var ErrArenaExhausted = errors.New("pyline: arena exhausted")

// arenaSize is the size of the anonymous mapping backing an Arena. 2 GiB
// is large enough that exhaustion should never happen in normal use.
const arenaSize = 2 << 30

// Arena is a bump allocator. All growable buffers in this package (the
// edit buffer, history entries) are backed by one; storage handed out by
// Bump is never freed individually, only reclaimed in bulk by Reset.
type Arena struct {
	region []byte
	used   int
}

// NewArena maps a fresh anonymous region and returns an Arena over it.
func NewArena() (*Arena, error) {
	region, err := unix.Mmap(-1, 0, arenaSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("pyline: mmap arena: %w", err)
	}
	return &Arena{region: region}, nil
}

// Bump returns size fresh bytes from the arena. It panics on exhaustion:
// the region is sized so this should never trigger outside of a bug.
func (a *Arena) Bump(size int) []byte {
	if size < 0 {
		panic("pyline: negative arena bump")
	}
	if a.used+size > len(a.region) {
		panic(fmt.Errorf("%w: requested %d, %d remaining", ErrArenaExhausted, size, len(a.region)-a.used))
	}
	b := a.region[a.used : a.used+size]
	a.used += size
	return b
}

// Reset rewinds the bump pointer to the start of the region. Storage
// handed out before the reset must not be used afterward.
func (a *Arena) Reset() {
	a.used = 0
}

// Free releases the backing mapping. The arena must not be used again.
func (a *Arena) Free() error {
	if a.region == nil {
		return nil
	}
	err := unix.Munmap(a.region)
	a.region = nil
	return err
}
