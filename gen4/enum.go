package gen4

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMethod  = errors.New("unknown method")
	ErrUnknownLead    = errors.New("unknown lead")
	ErrUnknownNature  = errors.New("unknown nature")
	ErrUnknownShiny   = errors.New("unknown shiny policy")
	ErrUnknownSpecies = errors.New("unknown species")
)

// Method selects the order in which an encounter consumes the RNG stream.
type Method uint8

const (
	MethodNone Method = iota
	Method1
	Method1Reverse
	Method2
	Method4
	MethodJ
	MethodK
)

var methodNames = map[Method]string{
	MethodNone:     "none",
	Method1:        "method1",
	Method1Reverse: "method1reverse",
	Method2:        "method2",
	Method4:        "method4",
	MethodJ:        "methodj",
	MethodK:        "methodk",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// ParseMethod accepts "method1", "1", "j", "MethodK" and similar spellings.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "method")

	for m, name := range methodNames {
		if strings.TrimPrefix(name, "method") == s {
			return m, nil
		}
	}

	return MethodNone, fmt.Errorf("%w: '%s'", ErrUnknownMethod, s)
}

// Lead is the ability of the first party member. The first 25 values are
// synchronize leads, each equal to the nature it forces.
type Lead uint8

const (
	Synchronize    Lead = 0
	SynchronizeEnd Lead = Synchronize + 24
)

const (
	CuteCharmM Lead = SynchronizeEnd + 1 + iota
	CuteCharmF
	MagnetPull
	Static
	Pressure
	SuctionCups
	CompoundEyes
	ArenaTrap
	None
)

// SynchronizeLead returns the synchronize lead that forces nature.
func SynchronizeLead(nature uint8) Lead {
	return Synchronize + Lead(nature%25)
}

// IsSynchronize reports whether the lead has a chance to force its nature.
func (l Lead) IsSynchronize() bool {
	return l <= SynchronizeEnd
}

// IsCuteCharm reports whether the lead biases gender.
func (l Lead) IsCuteCharm() bool {
	return l == CuteCharmM || l == CuteCharmF
}

var leadNames = map[Lead]string{
	CuteCharmM:   "cutecharm-m",
	CuteCharmF:   "cutecharm-f",
	MagnetPull:   "magnetpull",
	Static:       "static",
	Pressure:     "pressure",
	SuctionCups:  "suctioncups",
	CompoundEyes: "compoundeyes",
	ArenaTrap:    "arenatrap",
	None:         "none",
}

func (l Lead) String() string {
	if l.IsSynchronize() {
		return "synchronize:" + strings.ToLower(natureNames[l])
	}
	if name, ok := leadNames[l]; ok {
		return name
	}
	return fmt.Sprintf("lead(%d)", uint8(l))
}

// ParseLead accepts "none", "cutecharm-f", "synchronize:adamant" and the
// other names returned by Lead.String.
func ParseLead(s string) (Lead, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}

	if rest, ok := strings.CutPrefix(s, "synchronize:"); ok {
		nature, err := ParseNature(rest)
		if err != nil {
			return None, fmt.Errorf("%w: '%s': %s", ErrUnknownLead, s, err)
		}
		return SynchronizeLead(nature), nil
	}

	for l, name := range leadNames {
		if name == s {
			return l, nil
		}
	}

	return None, fmt.Errorf("%w: '%s'", ErrUnknownLead, s)
}

// Shiny is the shininess policy of a static encounter template.
type Shiny uint8

const (
	ShinyRandom Shiny = iota
	ShinyNever
	ShinyAlways
)

func (s Shiny) String() string {
	switch s {
	case ShinyNever:
		return "never"
	case ShinyAlways:
		return "always"
	default:
		return "random"
	}
}

func ParseShiny(s string) (Shiny, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return ShinyRandom, nil
	case "never", "locked":
		return ShinyNever, nil
	case "always", "forced":
		return ShinyAlways, nil
	}
	return ShinyRandom, fmt.Errorf("%w: '%s'", ErrUnknownShiny, s)
}

// ShinyType is the outcome of the shiny test for one PID. The values double
// as bit masks for StateFilter.
type ShinyType uint8

const (
	NotShiny ShinyType = 0
	Star     ShinyType = 1
	Square   ShinyType = 2
)

func (s ShinyType) String() string {
	switch s {
	case Star:
		return "star"
	case Square:
		return "square"
	default:
		return "-"
	}
}

type Gender uint8

const (
	Male       Gender = 0
	Female     Gender = 1
	Genderless Gender = 2
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "M"
	case Female:
		return "F"
	default:
		return "-"
	}
}

var natureNames = [25]string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// NatureName returns the display name of nature, or "" if out of range.
func NatureName(nature uint8) string {
	if int(nature) >= len(natureNames) {
		return ""
	}
	return natureNames[nature]
}

func ParseNature(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	for i, name := range natureNames {
		if strings.EqualFold(name, s) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnknownNature, s)
}

var hiddenPowerNames = [16]string{
	"Fighting", "Flying", "Poison", "Ground", "Rock", "Bug", "Ghost", "Steel",
	"Fire", "Water", "Grass", "Electric", "Psychic", "Ice", "Dragon", "Dark",
}

func HiddenPowerName(hp uint8) string {
	if int(hp) >= len(hiddenPowerNames) {
		return ""
	}
	return hiddenPowerNames[hp]
}

func ParseHiddenPower(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	for i, name := range hiddenPowerNames {
		if strings.EqualFold(name, s) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hidden power type '%s'", s)
}
