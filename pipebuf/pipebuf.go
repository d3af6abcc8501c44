// Package pipebuf implements the bounded FIFO buffer that connects pipeline
// blocks. Each pipe has exactly one producer and one consumer. Both sides
// follow a reserve/commit discipline: obtain the readable or writable window
// first, then commit the number of elements actually consumed or produced.
// No element is ever committed partially.
package pipebuf

type (
	// Reader is the consumer side of a pipe.
	Reader[T any] interface {
		// Readable returns the number of committed elements available.
		Readable() int
		// Rd returns the window of readable elements.
		Rd() []T
		// Read commits consumption of n elements.
		Read(n int)
	}

	// Writer is the producer side of a pipe.
	Writer[T any] interface {
		// Writable returns the remaining capacity in elements.
		Writable() int
		// Wr returns the contiguous writable window.
		Wr() []T
		// Written commits production of n elements.
		Written(n int)
	}
)

// Pipe is a fixed-capacity element FIFO implementing both pipe sides.
// Pending elements are compacted to the front of the storage so that the
// writable window is always a single contiguous region.
type Pipe[T any] struct {
	name string
	buf  []T
	rd   int
	wr   int
}

// New returns a pipe with room for size elements.
func New[T any](name string, size int) *Pipe[T] {
	if size < 1 {
		panic("pipebuf: size must be positive")
	}
	return &Pipe[T]{name: name, buf: make([]T, size)}
}

// Name returns the pipe name used for logging.
func (p *Pipe[T]) Name() string {
	return p.name
}

// Readable returns the number of committed elements available.
func (p *Pipe[T]) Readable() int {
	return p.wr - p.rd
}

// Rd returns the window of readable elements.
func (p *Pipe[T]) Rd() []T {
	return p.buf[p.rd:p.wr]
}

// Read commits consumption of n elements. Committing more than Readable
// reported is a contract violation and panics.
func (p *Pipe[T]) Read(n int) {
	if n < 0 || n > p.Readable() {
		panic("pipebuf: read past committed data")
	}
	p.rd += n
	if p.rd == p.wr {
		p.rd, p.wr = 0, 0
	}
}

// Writable returns the remaining capacity in elements.
func (p *Pipe[T]) Writable() int {
	p.pack()
	return len(p.buf) - p.wr
}

// Wr returns the contiguous writable window.
func (p *Pipe[T]) Wr() []T {
	p.pack()
	return p.buf[p.wr:]
}

// Written commits production of n elements. Committing more than Writable
// reported is a contract violation and panics.
func (p *Pipe[T]) Written(n int) {
	if n < 0 || n > len(p.buf)-p.wr {
		panic("pipebuf: written past capacity")
	}
	p.wr += n
}

// pack moves pending elements to the front of the storage. Safe under the
// single-threaded schedule: the consumer holds no window across steps.
func (p *Pipe[T]) pack() {
	if p.rd == 0 {
		return
	}
	copy(p.buf, p.buf[p.rd:p.wr])
	p.wr -= p.rd
	p.rd = 0
}
