package gen4

// Filter decides whether a candidate is kept. Implementations must be pure
// functions of the state so a scan can be split across goroutines.
type Filter interface {
	CompareState(s *State) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(s *State) bool

func (f FilterFunc) CompareState(s *State) bool {
	return f(s)
}

// AcceptAll keeps every candidate.
var AcceptAll Filter = FilterFunc(func(*State) bool { return true })

// Any* mark a StateFilter field as unconstrained.
const (
	AnyGender  = 255
	AnyAbility = 255
	AnyShiny   = 255
)

// StateFilter is the usual search predicate: per-IV ranges, allowed natures
// and hidden powers, and optional gender, ability and shiny constraints.
type StateFilter struct {
	Gender       uint8    // AnyGender or a Gender
	Ability      uint8    // AnyAbility, 0 or 1
	Shiny        uint8    // AnyShiny or a mask of Star and Square
	Natures      [25]bool // allowed natures
	HiddenPowers [16]bool // allowed hidden power types
	Min          [6]uint8 // per-stat IV minimums
	Max          [6]uint8 // per-stat IV maximums
	Skip         bool     // keep everything
}

// NewStateFilter returns a filter that accepts every state; callers narrow
// it down field by field.
func NewStateFilter() *StateFilter {
	f := &StateFilter{
		Gender:  AnyGender,
		Ability: AnyAbility,
		Shiny:   AnyShiny,
		Max:     [6]uint8{31, 31, 31, 31, 31, 31},
	}
	for i := range f.Natures {
		f.Natures[i] = true
	}
	for i := range f.HiddenPowers {
		f.HiddenPowers[i] = true
	}
	return f
}

func (f *StateFilter) CompareState(s *State) bool {
	if f.Skip {
		return true
	}

	if f.Ability != AnyAbility && f.Ability != s.Ability {
		return false
	}

	if f.Gender != AnyGender && Gender(f.Gender) != s.Gender {
		return false
	}

	if !f.Natures[s.Nature] {
		return false
	}

	if f.Shiny != AnyShiny && f.Shiny&uint8(s.Shiny) == 0 {
		return false
	}

	if !f.HiddenPowers[s.HiddenPower] {
		return false
	}

	for i, iv := range s.IVs {
		if iv < f.Min[i] || iv > f.Max[i] {
			return false
		}
	}

	return true
}
