// Package metric collects pipeline execution counters and exposes them
// through the expvar interface.
package metric

import (
	"expvar"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Counters hold tick statistics of a single task.
type Counters struct {
	// Steps is the number of times the task was stepped.
	Steps int64
	// Progress is the number of steps that moved data.
	Progress int64
}

// Metric aggregates counters for every task of a scheduler.
type Metric struct {
	mutex sync.Mutex
	tasks map[string]*Counters
}

// New returns an empty metric.
func New() *Metric {
	return &Metric{tasks: make(map[string]*Counters)}
}

// Count records one step of the named task.
func (m *Metric) Count(task string, progress bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	c, ok := m.tasks[task]
	if !ok {
		c = &Counters{}
		m.tasks[task] = c
	}
	c.Steps++
	if progress {
		c.Progress++
	}
}

// Task returns a snapshot of the named task counters.
func (m *Metric) Task(task string) Counters {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if c, ok := m.tasks[task]; ok {
		return *c
	}
	return Counters{}
}

// String renders all counters as a JSON object, making Metric an expvar.Var.
func (m *Metric) String() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	names := make([]string, 0, len(m.tasks))
	for name := range m.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		c := m.tasks[name]
		fmt.Fprintf(&b, "%q: {\"steps\": %d, \"progress\": %d}", name, c.Steps, c.Progress)
	}
	b.WriteString("}")
	return b.String()
}

// Publish registers the metric under the provided expvar label. The label
// must be unique for the process.
func (m *Metric) Publish(label string) {
	expvar.Publish(label, m)
}
