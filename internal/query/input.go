package query

// cell is one mutable input slot: the current value plus its write stamp.
type cell[V any] struct {
	state cellState
	value V
	set   bool
}

// Input is a family of mutable input slots keyed by K. Slots are created
// implicitly on first write (or first read, as unset placeholders) and live
// for the lifetime of the runtime.
type Input[K comparable, V any] struct {
	rt    *Runtime
	name  string
	cells map[K]*cell[V]
}

// NewInput registers a new input family under name on rt.
func NewInput[K comparable, V any](rt *Runtime, name string) *Input[K, V] {
	return &Input[K, V]{
		rt:    rt,
		name:  name,
		cells: make(map[K]*cell[V]),
	}
}

// Set overwrites the slot for key. It always succeeds, bumps the runtime
// revision and stamps the cell, which lazily invalidates every derived value
// that recorded this cell as a dependency.
func (in *Input[K, V]) Set(key K, value V) {
	c := in.cells[key]
	if c == nil {
		c = &cell[V]{}
		in.cells[key] = c
	}
	c.value = value
	c.set = true
	c.state.changedAt = in.rt.bump()
}

// Get returns the current value for key; ok is false when the slot was never
// written. The read is recorded as a dependency of the active computation —
// a missing slot still registers a placeholder cell, so a later Set
// invalidates readers that observed the absence.
func (in *Input[K, V]) Get(key K) (V, bool) {
	c := in.cells[key]
	if c == nil {
		c = &cell[V]{}
		in.cells[key] = c
	}
	in.rt.record(&c.state)
	if !c.set {
		var zero V
		return zero, false
	}
	return c.value, true
}
