package lcrng

// JumpTable holds the transform for 2^i steps of a generator at index i.
type JumpTable struct {
	mult [32]uint32
	add  [32]uint32
	inv  uint32 // multiplicative inverse of mult[0] mod 2^32
}

// Jump is a precomputed transform equivalent to some number of generator
// steps. Applying it is a single multiply-add, so one Jump can be shared
// read-only across every advance of a scan.
type Jump struct {
	Mult uint32
	Add  uint32
}

// NewJumpTable precomputes the power-of-two transforms for the generator
// state = state*mult + add. mult must be odd.
func NewJumpTable(mult, add uint32) *JumpTable {
	t := &JumpTable{}
	t.mult[0] = mult
	t.add[0] = add

	for i := 1; i < 32; i++ {
		// (m, a) composed with itself is (m*m, a*(m+1))
		t.add[i] = t.add[i-1] * (t.mult[i-1] + 1)
		t.mult[i] = t.mult[i-1] * t.mult[i-1]
	}

	// Newton iteration doubles the correct low bits each round; five rounds
	// cover 32 bits starting from the 3 bits an odd number gets for free.
	inv := mult
	for i := 0; i < 5; i++ {
		inv *= 2 - mult*inv
	}
	t.inv = inv

	return t
}

func (t *JumpTable) inverse() uint32 {
	return t.inv
}

// ComputeJump composes the table entries selected by the set bits of n into
// a single transform equivalent to n steps.
func ComputeJump(t *JumpTable, n uint32) Jump {
	j := Jump{Mult: 1, Add: 0}

	for i := 0; n != 0; i++ {
		if n&1 != 0 {
			j = j.Then(Jump{Mult: t.mult[i], Add: t.add[i]})
		}
		n >>= 1
	}

	return j
}

// Then returns the transform that applies j followed by next.
func (j Jump) Then(next Jump) Jump {
	return Jump{
		Mult: j.Mult * next.Mult,
		Add:  next.Mult*j.Add + next.Add,
	}
}

// Apply runs the transform on state.
func (j Jump) Apply(state uint32) uint32 {
	return state*j.Mult + j.Add
}
