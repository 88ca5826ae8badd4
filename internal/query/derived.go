package query

// memo is one cached (value, ok) outcome together with the revision it was
// computed at, the revision it was last verified at, and the input cells the
// computation read.
type memo[V any] struct {
	value      V
	ok         bool
	computedAt Revision
	verifiedAt Revision
	deps       []*cellState
}

// Derived is a family of memoized derived queries keyed by K. The compute
// function must be pure: a function of inputs and other derived queries only.
// An absent result (ok == false) is a normal, cacheable outcome.
type Derived[K comparable, V any] struct {
	rt      *Runtime
	name    string
	compute func(K) (V, bool)
	memos   map[K]*memo[V]
}

// NewDerived registers a derived query family under name on rt.
func NewDerived[K comparable, V any](rt *Runtime, name string, compute func(K) (V, bool)) *Derived[K, V] {
	return &Derived[K, V]{
		rt:      rt,
		name:    name,
		compute: compute,
		memos:   make(map[K]*memo[V]),
	}
}

// Get returns the derived value for key, recomputing at most once per span
// between invalidating writes. On a cache hit the memo's recorded cells are
// merged into the caller's dependency set, so flattened input-level tracking
// stays transitive.
func (d *Derived[K, V]) Get(key K) (V, bool) {
	if m := d.memos[key]; m != nil && d.valid(m) {
		m.verifiedAt = d.rt.rev
		d.rt.recordAll(m.deps)
		d.rt.statsFor(d.name).Hits++
		return m.value, m.ok
	}

	t := d.rt.push()
	value, ok := d.compute(key)
	d.rt.pop()

	m := &memo[V]{
		value:      value,
		ok:         ok,
		computedAt: d.rt.rev,
		verifiedAt: d.rt.rev,
		deps:       t.cells,
	}
	d.memos[key] = m
	d.rt.recordAll(m.deps)
	d.rt.statsFor(d.name).Misses++
	return value, ok
}

// valid reports whether the memo may be reused at the current revision:
// either it was already verified at this revision, or no recorded cell has
// been written since it was computed.
func (d *Derived[K, V]) valid(m *memo[V]) bool {
	if m.verifiedAt == d.rt.rev {
		return true
	}
	for _, dep := range m.deps {
		if dep.changedAt > m.computedAt {
			return false
		}
	}
	return true
}
