package pyline

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func Test_DecoderChars(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte("ab\t")))
	want := []byte{'a', 'b', '\t'}
	for _, w := range want {
		ev, err := d.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if ev.Kind != EventChar || ev.Rune != w {
			t.Fatalf("got %+v, want char %q", ev, w)
		}
	}
}

func Test_DecoderControlKeys(t *testing.T) {
	tests := []struct {
		input []byte
		want  EventKind
	}{
		{[]byte{'\r'}, EventEnter},
		{[]byte{'\n'}, EventEnter},
		{[]byte{127}, EventBackspace},
		{[]byte{8}, EventBackspace},
		{[]byte{3}, EventInterrupt},
		{[]byte{4}, EventEOF},
		{[]byte{0x1b, '[', 'A'}, EventArrowUp},
		{[]byte{0x1b, '[', 'B'}, EventArrowDown},
		{[]byte{0x1b, '[', 'C'}, EventArrowRight},
		{[]byte{0x1b, '[', 'D'}, EventArrowLeft},
	}
	for _, tc := range tests {
		d := NewDecoder(bytes.NewReader(tc.input))
		ev, err := d.Next()
		if err != nil {
			t.Fatalf("Next(%v): %v", tc.input, err)
		}
		if ev.Kind != tc.want {
			t.Errorf("Next(%v) = %v, want %v", tc.input, ev.Kind, tc.want)
		}
	}
}

func Test_DecoderUnknownEscape(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte{0x1b, '[', 'Z'}))
	_, err := d.Next()
	if !errors.Is(err, ErrUnknownEscape) {
		t.Fatalf("got err %v, want ErrUnknownEscape", err)
	}
}

func Test_DecoderEOFOnEmptyStream(t *testing.T) {
	d := NewDecoder(bytes.NewReader(nil))
	_, err := d.Next()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got err %v, want io.EOF", err)
	}
}
