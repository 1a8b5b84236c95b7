package scan

// SlotKind tags how one input slot of the external evaluator is filled
// during a sweep.
type SlotKind int

const (
	// SlotFixed holds a supplied constant.
	SlotFixed SlotKind = iota
	// SlotVariable receives the scanned mixing ratio directly.
	SlotVariable
	// SlotDerived receives a caller-supplied function of the scanned
	// mixing ratio, e.g. negation to emulate an alternate sign convention.
	SlotDerived
)

func (k SlotKind) String() string {
	switch k {
	case SlotFixed:
		return "fixed"
	case SlotVariable:
		return "variable"
	case SlotDerived:
		return "derived"
	}
	return "unknown"
}

// Slot is a tagged variant, resolved once per scanned sample.
// Construct with Fixed, Variable, or Derived.
type Slot struct {
	kind  SlotKind
	value float64
	fn    func(delta float64) float64
}

func Fixed(v float64) Slot {
	return Slot{kind: SlotFixed, value: v}
}

func Variable() Slot {
	return Slot{kind: SlotVariable}
}

func Derived(fn func(delta float64) float64) Slot {
	if fn == nil {
		panic("scan: Derived slot requires a function")
	}
	return Slot{kind: SlotDerived, fn: fn}
}

func (s Slot) Kind() SlotKind {
	return s.kind
}

// Resolve maps the scanned mixing ratio into this slot's value.
func (s Slot) Resolve(delta float64) float64 {
	switch s.kind {
	case SlotFixed:
		return s.value
	case SlotVariable:
		return delta
	case SlotDerived:
		return s.fn(delta)
	}
	panic("scan: unhandled slot kind")
}

// resolveAll fills dst with every slot's value for the given delta.
func resolveAll(dst []float64, slots []Slot, delta float64) {
	for i, s := range slots {
		dst[i] = s.Resolve(delta)
	}
}
