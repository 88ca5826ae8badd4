package query

// Revision is a generation stamp. Every input write bumps the runtime
// revision; derived values remember the revision they were computed at and
// stay valid while no recorded dependency carries a newer stamp.
type Revision uint64

// cellState is the dependency-tracking core of an input cell. Memos hold
// pointers to it, so validity checks reduce to stamp comparisons.
type cellState struct {
	changedAt Revision
}

// tracker collects the input cells read by one active computation.
type tracker struct {
	cells []*cellState
	seen  map[*cellState]struct{}
}

// Stats counts cache activity for one derived query family. Misses equals
// the number of times the compute function actually ran.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Runtime owns the revision counter, the stack of active dependency trackers
// and the per-query cache counters shared by every Input and Derived bound to
// it.
type Runtime struct {
	rev      Revision
	trackers []*tracker
	stats    map[string]*Stats
}

// NewRuntime returns a runtime at revision 1 with no registered queries.
func NewRuntime() *Runtime {
	return &Runtime{rev: 1, stats: make(map[string]*Stats)}
}

// Revision returns the current generation stamp.
func (rt *Runtime) Revision() Revision {
	return rt.rev
}

// Stats returns a copy of the per-query cache counters, keyed by the names
// passed to NewInput/NewDerived.
func (rt *Runtime) Stats() map[string]Stats {
	out := make(map[string]Stats, len(rt.stats))
	for name, s := range rt.stats {
		out[name] = *s
	}
	return out
}

func (rt *Runtime) statsFor(name string) *Stats {
	s := rt.stats[name]
	if s == nil {
		s = &Stats{}
		rt.stats[name] = s
	}
	return s
}

func (rt *Runtime) bump() Revision {
	rt.rev++
	return rt.rev
}

func (rt *Runtime) push() *tracker {
	t := &tracker{seen: make(map[*cellState]struct{})}
	rt.trackers = append(rt.trackers, t)
	return t
}

func (rt *Runtime) pop() {
	rt.trackers = rt.trackers[:len(rt.trackers)-1]
}

// record notes a cell as a dependency of the innermost active computation.
// Top-level reads have no active computation and record nothing.
func (rt *Runtime) record(c *cellState) {
	if len(rt.trackers) == 0 {
		return
	}
	t := rt.trackers[len(rt.trackers)-1]
	if _, dup := t.seen[c]; dup {
		return
	}
	t.seen[c] = struct{}{}
	t.cells = append(t.cells, c)
}

func (rt *Runtime) recordAll(cells []*cellState) {
	if len(rt.trackers) == 0 {
		return
	}
	for _, c := range cells {
		rt.record(c)
	}
}
