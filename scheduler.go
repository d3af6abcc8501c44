package sdrpipe

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/xid"

	"github.com/dudk/sdrpipe/log"
	"github.com/dudk/sdrpipe/metric"
)

// task binds a runner to its identity for logging and metrics.
type task struct {
	uid    string
	name   string
	runner Runner
}

// Scheduler drives an ordered collection of blocks cooperatively. Each tick
// steps every task once, in registration order, on the calling goroutine.
// Termination is the scheduler's decision: Run stops when a whole tick makes
// no progress, or halts on the first fatal error.
type Scheduler struct {
	name   string
	tasks  []task
	metric *metric.Metric
	log    log.Logger
}

// Option provides a way to set functional parameters to the scheduler.
type Option func(s *Scheduler)

// WithLogger sets logger to Scheduler. If this option is not provided,
// the default logger is used.
func WithLogger(l log.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithName sets name to Scheduler.
func WithName(n string) Option {
	return func(s *Scheduler) {
		s.name = n
	}
}

// WithMetric adds metrics for this scheduler and all its tasks.
func WithMetric(m *metric.Metric) Option {
	return func(s *Scheduler) {
		s.metric = m
	}
}

// New creates a new scheduler and applies provided options.
func New(options ...Option) *Scheduler {
	s := &Scheduler{
		log: log.GetLogger(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// newUID returns new unique id value.
func newUID() string {
	return xid.New().String()
}

// Add registers a block under a name. Tasks are stepped in registration
// order, which should follow the data flow so a single tick can move an
// element through the whole pipeline.
func (s *Scheduler) Add(name string, r Runner) {
	s.tasks = append(s.tasks, task{uid: newUID(), name: name, runner: r})
}

// RunTick steps every task once and reports whether any of them made
// progress. The first fatal error halts the tick.
func (s *Scheduler) RunTick() (bool, error) {
	progress := false
	for _, t := range s.tasks {
		status, err := t.runner.Step()
		if err != nil {
			s.log.Infof("%s: task %s (%s) failed: %v", s.name, t.name, t.uid, err)
			return progress, fmt.Errorf("task %s: %w", t.name, err)
		}
		if s.metric != nil {
			s.metric.Count(t.name, status == Progress)
		}
		if status == Progress {
			progress = true
		}
	}
	return progress, nil
}

// Run ticks the pipeline until a whole tick makes no progress (every task
// Blocked) or a task fails. Flush hooks run in both cases; flush errors are
// joined to the run error.
func (s *Scheduler) Run() error {
	var runErr error
	for {
		progress, err := s.RunTick()
		if err != nil {
			runErr = err
			break
		}
		if !progress {
			s.log.Debugf("%s: pipeline quiescent", s.name)
			break
		}
	}
	if err := s.flush(); err != nil {
		runErr = multierror.Append(runErr, err).ErrorOrNil()
	}
	return runErr
}

// flush finalizes every task implementing Flusher, in registration order,
// and aggregates their errors.
func (s *Scheduler) flush() error {
	var result *multierror.Error
	for _, t := range s.tasks {
		f, ok := t.runner.(Flusher)
		if !ok {
			continue
		}
		if err := f.Flush(); err != nil {
			result = multierror.Append(result, fmt.Errorf("flush %s: %w", t.name, err))
		}
	}
	return result.ErrorOrNil()
}
