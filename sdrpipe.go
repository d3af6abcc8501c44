/*
Package sdrpipe allows to build and execute sample-oriented DSP pipelines
from small reusable blocks.

Concept

A pipeline is an ordered set of blocks connected by bounded pipes
(pipebuf package). Every block binds to its pipe sides and external
resources at construction and then only reacts to Step calls from the
scheduler. A step inspects the current pipe occupancy, does as much whole
element work as fits, and reports what happened:

	source --pipe--> transform --pipe--> sink

Blocks never run concurrently: the scheduler ticks them one by one, in
registration order, on a single goroutine. Backpressure is the only flow
control. A block that sees no readable input or writable output reports
Blocked and waits for the next tick.
*/
package sdrpipe

// Status reports what a block managed to do during one step.
type Status int

const (
	// Blocked means the block found no readable input or writable output
	// and performed no work.
	Blocked Status = iota
	// Progress means the block moved data or advanced its state.
	Progress
)

// Runner is a single pipeline block. Step is invoked repeatedly by the
// scheduler. A fatal condition is reported through the error; the block
// itself never terminates the process. Step must not suspend the calling
// goroutine except where a block's contract explicitly requires it (the
// descriptor reader's torn-element completion).
type Runner interface {
	Step() (Status, error)
}

// Flusher is implemented by blocks holding external resources that must be
// finalized when the pipeline stops.
type Flusher interface {
	Flush() error
}
