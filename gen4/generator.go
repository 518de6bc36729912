// Package gen4 reproduces the Generation 4 static encounter RNG: which PID,
// IVs and derived values a fixed encounter gets at each advance of the main
// generator, for the Method 1, Method J and Method K call orders.
//
// Everything here is deterministic and free of shared state. A generator may
// be used from several goroutines as long as its Filter is pure.
package gen4

import (
	"errors"
	"fmt"

	"staticscan/lcrng"
)

// MaxPIDAttempts bounds the nature-matching PID loop of Methods J and K. A
// PID matches with probability 1/25, so hitting the bound means the RNG or
// its constants are broken rather than unlucky.
const MaxPIDAttempts = 1 << 20

var ErrPIDSearchExhausted = errors.New("no PID matched the nature")

// StaticGenerator scans the advances [InitialAdvances, InitialAdvances +
// MaxAdvances] of a seed and returns the encounters the Filter accepts.
type StaticGenerator struct {
	InitialAdvances uint32
	MaxAdvances     uint32
	Offset          uint32 // untracked draws between an advance and the encounter
	Method          Method
	Lead            Lead
	Template        StaticTemplate
	Profile         Profile
	Filter          Filter
}

func NewStaticGenerator(initialAdvances, maxAdvances, offset uint32, method Method, lead Lead,
	template StaticTemplate, profile Profile, filter Filter) *StaticGenerator {
	if filter == nil {
		filter = AcceptAll
	}

	return &StaticGenerator{
		InitialAdvances: initialAdvances,
		MaxAdvances:     maxAdvances,
		Offset:          offset,
		Method:          method,
		Lead:            lead,
		Template:        template,
		Profile:         profile,
		Filter:          filter,
	}
}

// Generate runs the scan for seed. Methods other than Method 1, J and K have
// no static encounter algorithm and yield no states.
func (g *StaticGenerator) Generate(seed uint32) []State {
	switch g.Method {
	case Method1:
		return g.generateMethod1(seed)
	case MethodJ:
		return g.generateMethodJ(seed)
	case MethodK:
		return g.generateMethodK(seed)
	default:
		return nil
	}
}

// scan walks every advance of the window, handing fn a generator positioned
// Offset draws past the advance. The outer generator steps once per advance
// and that step's output becomes the state's PRNG value.
func (g *StaticGenerator) scan(seed uint32, fn func(rng *lcrng.LCRNG) (pid uint32, ivs [6]uint8)) []State {
	var states []State
	info := g.Template.Info
	tsv := g.Profile.TSV()

	rng := lcrng.NewPokeRNG(seed, g.InitialAdvances)
	jump := rng.GetJump(g.Offset)

	for cnt := uint64(0); cnt <= uint64(g.MaxAdvances); cnt++ {
		gen := lcrng.JumpFrom(rng, jump)

		pid, ivs := fn(&gen)
		next := gen.NextUint16()

		state := newState(rng.NextUint16(), next, g.InitialAdvances+uint32(cnt), pid, ivs,
			g.Template.Level, tsv, info)
		if g.Filter.CompareState(&state) {
			states = append(states, state)
		}
	}

	return states
}

func (g *StaticGenerator) generateMethod1(seed uint32) []State {
	tsv := g.Profile.TSV()
	shiny := g.Template.Shiny

	return g.scan(seed, func(rng *lcrng.LCRNG) (uint32, [6]uint8) {
		var pid uint32

		if shiny == ShinyAlways {
			// Low half bit by bit, then force the high half so the xor with
			// tsv clears the top 13 bits.
			low := rng.NextUint16Mod(8)
			high := rng.NextUint16Mod(8)

			for i := 3; i < 16; i++ {
				low |= rng.NextUint16Mod(2) << i
			}
			high |= (low ^ tsv) & 0xFFF8
			pid = PIDFromWords(low, high)
		} else {
			low := rng.NextUint16()
			high := rng.NextUint16()
			pid = PIDFromWords(low, high)

			if shiny == ShinyNever {
				for IsShiny(pid, tsv) {
					arng := lcrng.NewARNG(pid, 0)
					pid = arng.Next()
				}
			}
		}

		iv1 := rng.NextUint16()
		iv2 := rng.NextUint16()
		return pid, IVsFromWords(iv1, iv2)
	})
}

// cuteCharm returns whether the lead can force the PID and, if so, the base
// the forced PID is built on.
func (g *StaticGenerator) cuteCharm() (bool, uint32) {
	info := g.Template.Info
	if !g.Lead.IsCuteCharm() || info.FixedGender() {
		return false, 0
	}

	var buffer uint32
	if g.Lead == CuteCharmF {
		buffer = 25 * (uint32(info.GenderRatio)/25 + 1)
	}
	return true, buffer
}

func (g *StaticGenerator) generateMethodJ(seed uint32) []State {
	cuteCharm, buffer := g.cuteCharm()
	lead := g.Lead

	return g.scan(seed, func(rng *lcrng.LCRNG) (uint32, [6]uint8) {
		cuteCharmFlag := false
		if cuteCharm {
			cuteCharmFlag = rng.NextUint16Div(3) != 0
		}

		var nature uint8
		if lead.IsSynchronize() {
			if rng.NextUint16Div(2) == 0 {
				nature = uint8(lead)
			} else {
				nature = uint8(rng.NextUint16Div(25))
			}
		} else {
			nature = uint8(rng.NextUint16Div(25))
		}

		var pid uint32
		if cuteCharmFlag {
			pid = buffer + uint32(nature)
		} else {
			pid = nextNaturePID(rng, nature)
		}

		iv1 := rng.NextUint16()
		iv2 := rng.NextUint16()
		return pid, IVsFromWords(iv1, iv2)
	})
}

func (g *StaticGenerator) generateMethodK(seed uint32) []State {
	cuteCharm, buffer := g.cuteCharm()
	lead := g.Lead

	return g.scan(seed, func(rng *lcrng.LCRNG) (uint32, [6]uint8) {
		cuteCharmFlag := false
		if cuteCharm {
			cuteCharmFlag = rng.NextUint16Mod(3) != 0
		}

		var nature uint8
		if lead.IsSynchronize() {
			if rng.NextUint16Mod(2) == 0 {
				nature = uint8(lead)
			} else {
				nature = uint8(rng.NextUint16Mod(25))
			}
		} else {
			nature = uint8(rng.NextUint16Mod(25))
		}

		var pid uint32
		if cuteCharmFlag {
			pid = buffer + uint32(nature)
		} else {
			pid = nextNaturePID(rng, nature)
		}

		iv1 := rng.NextUint16()
		iv2 := rng.NextUint16()
		return pid, IVsFromWords(iv1, iv2)
	})
}

// nextNaturePID draws PIDs until one has the wanted nature. Every rejected
// PID still consumes two outputs, which later draws depend on.
func nextNaturePID(rng *lcrng.LCRNG, nature uint8) uint32 {
	for i := 0; i < MaxPIDAttempts; i++ {
		low := rng.NextUint16()
		high := rng.NextUint16()
		if pid := PIDFromWords(low, high); pid%25 == uint32(nature) {
			return pid
		}
	}

	panic(fmt.Errorf("%w: nature %d after %d attempts", ErrPIDSearchExhausted, nature, MaxPIDAttempts))
}
