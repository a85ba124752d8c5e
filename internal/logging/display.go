package logging

import (
	"fmt"
	"unicode/utf8"
)

// LogBufferLen is the default capacity of a rendering buffer.
const LogBufferLen = 2048

// Buffer is a fixed-capacity text buffer. Appends that do not fit are
// truncated and once the buffer is full every further append is a no-op.
type Buffer struct {
	data      []byte
	size      int
	truncated bool
}

// NewBuffer creates a buffer holding at most size bytes.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = LogBufferLen
	}
	return &Buffer{
		data: make([]byte, 0, size),
		size: size,
	}
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.truncated = false
}

// Len returns the number of rendered bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return b.size }

// Remaining returns how many bytes can still be appended. A truncated buffer
// is full.
func (b *Buffer) Remaining() int {
	if b.truncated {
		return 0
	}
	return b.size - len(b.data)
}

// Truncated reports whether an append was cut short since the last Reset.
func (b *Buffer) Truncated() bool { return b.truncated }

// Bytes returns the rendered bytes. The slice is only valid until the next
// append or Reset.
func (b *Buffer) Bytes() []byte { return b.data }

// String returns the rendered text.
func (b *Buffer) String() string { return string(b.data) }

// Cat appends s and returns the remaining capacity. A cut never splits a
// UTF-8 sequence.
func (b *Buffer) Cat(s string) int {
	left := b.Remaining()
	if left <= 0 {
		if len(s) > 0 {
			b.truncated = true
		}
		return 0
	}
	if len(s) > left {
		cut := left
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
		b.truncated = true
	}
	b.data = append(b.data, s...)
	return b.Remaining()
}

// Printf appends formatted text and returns the remaining capacity.
func (b *Buffer) Printf(format string, args ...any) int {
	if b.Remaining() <= 0 {
		b.truncated = true
		return 0
	}
	_, _ = fmt.Fprintf(b, format, args...)
	return b.Remaining()
}

// Write implements io.Writer. Bytes past the capacity are dropped but the
// full length is reported so fmt.Fprintf callers never see a short write.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Cat(string(p))
	return len(p), nil
}
