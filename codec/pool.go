package codec

import "sync"

var cursorPool = sync.Pool{
	New: func() any {
		return &Cursor{}
	},
}

// AcquireCursor returns a pooled cursor bound to buf at offset 0.
// Pair every AcquireCursor with exactly one Release.
func AcquireCursor(buf []byte) *Cursor {
	c := cursorPool.Get().(*Cursor)
	c.buf = buf
	c.pos = 0
	c.err = nil
	return c
}

// Release returns to pool. The buffer is not touched; it stays owned by the
// caller. The cursor is invalid after Release and must not be released twice.
func (c *Cursor) Release() {
	c.buf = nil
	c.pos = 0
	c.err = nil
	cursorPool.Put(c)
}
