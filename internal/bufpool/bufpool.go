// Package bufpool provides a bounded pool of byte buffers reused between
// JSON encodes on the submission path.
package bufpool

import "bytes"

// Pool holds buffers up to a fixed capacity; overflow is discarded.
type Pool struct {
	buffers chan *bytes.Buffer
}

// New creates a Pool holding at most capacity buffers.
func New(capacity int) *Pool {
	return &Pool{
		buffers: make(chan *bytes.Buffer, capacity),
	}
}

// Get returns a pooled buffer, or a fresh one when the pool is empty.
// Buffers are reset on Put, so the returned buffer is always empty.
func (p *Pool) Get() *bytes.Buffer {
	select {
	case b := <-p.buffers:
		return b
	default:
		return &bytes.Buffer{}
	}
}

// Put resets the buffer and returns it to the pool. Nil buffers are ignored
// and buffers beyond the pool capacity are dropped.
func (p *Pool) Put(b *bytes.Buffer) {
	if b == nil {
		return
	}

	b.Reset()

	select {
	case p.buffers <- b:
	default:
	}
}
