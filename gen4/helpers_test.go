package gen4

import (
	"runtime/debug"
	"testing"
)

func ExpectEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		if testing.Verbose() {
			debug.PrintStack()
		}

		t.Errorf("Expected %v (%T), got %v (%T)", expected, expected, actual, actual)
	}
}

func mustSpecies(t testing.TB, name string) *PersonalInfo {
	t.Helper()
	info, err := DefaultPersonalTable().Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %s", name, err)
	}
	return info
}

// golden is the part of a State checked against independently computed
// values.
type golden struct {
	adv    uint32
	pid    uint32
	ivs    [6]uint8
	gender Gender
	nature uint8
	shiny  ShinyType
	prng   uint16
	next   uint16
}

func expectGolden(t *testing.T, want []golden, got []State) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d states, want %d", len(got), len(want))
	}

	for i, w := range want {
		s := got[i]
		if s.Advances != w.adv || s.PID != w.pid || s.IVs != w.ivs || s.Gender != w.gender ||
			s.Nature != w.nature || s.Shiny != w.shiny || s.PRNG != w.prng || s.Next != w.next {
			t.Errorf("state %d:\n got  adv=%d pid=%d ivs=%v gender=%s nature=%d shiny=%s prng=%d next=%d\n want adv=%d pid=%d ivs=%v gender=%s nature=%d shiny=%s prng=%d next=%d",
				i, s.Advances, s.PID, s.IVs, s.Gender, s.Nature, s.Shiny, s.PRNG, s.Next,
				w.adv, w.pid, w.ivs, w.gender, w.nature, w.shiny, w.prng, w.next)
		}
		if s.Ability != uint8(s.PID&1) {
			t.Errorf("state %d: ability %d for pid %d", i, s.Ability, s.PID)
		}
	}
}
