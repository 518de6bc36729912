package gen4

// Stat indices into IV and stat arrays.
const (
	HP = iota
	Atk
	Def
	SpA
	SpD
	Spe
)

// Profile carries the trainer values that take part in the shiny test.
type Profile struct {
	TID uint16
	SID uint16
}

// TSV returns the trainer shiny value.
func (p Profile) TSV() uint16 {
	return p.TID ^ p.SID
}

// StaticTemplate describes one fixed encounter: species, shiny policy and
// level. The generator only reads it.
type StaticTemplate struct {
	Info  *PersonalInfo
	Shiny Shiny
	Level uint8
}

// State is one candidate encounter at one advance of the scan.
type State struct {
	Advances            uint32
	PID                 uint32
	IVs                 [6]uint8
	Ability             uint8
	AbilityName         string
	Gender              Gender
	Level               uint8
	Nature              uint8
	Shiny               ShinyType
	HiddenPower         uint8
	HiddenPowerStrength uint8
	Characteristic      uint8
	Stats               [6]uint16

	// PRNG is the high half of the first RNG output at this advance, the
	// value players use to confirm where they are in the stream.
	PRNG uint16
	// Next is the 16-bit output that follows the method's draws. Held item
	// and later rolls chain from it.
	Next uint16
}

func newState(prng, next uint16, advances, pid uint32, ivs [6]uint8, level uint8, tsv uint16, info *PersonalInfo) State {
	s := State{
		Advances:    advances,
		PID:         pid,
		IVs:         ivs,
		Ability:     uint8(pid & 1),
		AbilityName: info.Ability(uint8(pid & 1)),
		Gender:      GetGender(pid, info),
		Level:       level,
		Nature:      uint8(pid % 25),
		Shiny:       GetShiny(pid, tsv),
		PRNG:        prng,
		Next:        next,
	}

	s.HiddenPower, s.HiddenPowerStrength = HiddenPower(ivs)
	s.Characteristic = Characteristic(pid, ivs)
	s.Stats = ComputeStats(info, ivs, level, s.Nature)

	return s
}

// PIDFromWords joins two 16-bit RNG outputs into a PID, low half first.
func PIDFromWords(low, high uint16) uint32 {
	return uint32(high)<<16 | uint32(low)
}

// IVsFromWords unpacks two 16-bit RNG outputs into IVs. The first word holds
// HP, Atk and Def at bits 0, 5 and 10. The second holds Spe at bit 0, SpA at
// bit 5 and SpD at bit 10.
func IVsFromWords(iv1, iv2 uint16) [6]uint8 {
	var ivs [6]uint8
	ivs[HP] = uint8(iv1 & 31)
	ivs[Atk] = uint8((iv1 >> 5) & 31)
	ivs[Def] = uint8((iv1 >> 10) & 31)
	ivs[SpA] = uint8((iv2 >> 5) & 31)
	ivs[SpD] = uint8((iv2 >> 10) & 31)
	ivs[Spe] = uint8(iv2 & 31)
	return ivs
}

// ShinyValue xors the halves of a PID.
func ShinyValue(pid uint32) uint16 {
	return uint16(pid>>16) ^ uint16(pid)
}

// IsShiny reports whether pid is shiny for tsv: the top 13 bits of the PID
// shiny value and tsv must match.
func IsShiny(pid uint32, tsv uint16) bool {
	return ShinyValue(pid)^tsv < 8
}

// GetShiny classifies pid against tsv.
func GetShiny(pid uint32, tsv uint16) ShinyType {
	psv := ShinyValue(pid)
	if psv == tsv {
		return Square
	} else if psv^tsv < 8 {
		return Star
	}
	return NotShiny
}

// GetGender derives gender from the low byte of pid and the species ratio.
func GetGender(pid uint32, info *PersonalInfo) Gender {
	switch info.GenderRatio {
	case GenderRatioGenderless:
		return Genderless
	case GenderRatioFemale:
		return Female
	case GenderRatioMale:
		return Male
	}

	if uint8(pid) < info.GenderRatio {
		return Female
	}
	return Male
}

// order in which IV bits feed hidden power and characteristics
var hiddenPowerOrder = [6]int{HP, Atk, Def, Spe, SpA, SpD}

// HiddenPower returns the hidden power type (0 Fighting .. 15 Dark) and base
// power (30..70).
func HiddenPower(ivs [6]uint8) (uint8, uint8) {
	var typ, strength int
	for i, stat := range hiddenPowerOrder {
		typ += int(ivs[stat]&1) << i
		strength += int((ivs[stat]>>1)&1) << i
	}
	return uint8(typ * 15 / 63), uint8(strength*40/63 + 30)
}

// Characteristic returns the characteristic index (0..29). The highest IV
// wins; ties go to the first stat found starting from pid % 6.
func Characteristic(pid uint32, ivs [6]uint8) uint8 {
	start := int(pid % 6)
	best := start

	for i := 1; i < 6; i++ {
		idx := (start + i) % 6
		if ivs[hiddenPowerOrder[idx]] > ivs[hiddenPowerOrder[best]] {
			best = idx
		}
	}

	return uint8(best*5) + ivs[hiddenPowerOrder[best]]%5
}

// natures raise the stat at nature/5 and lower the one at nature%5
var natureStatOrder = [5]int{Atk, Def, Spe, SpA, SpD}

// ComputeStats returns level-scaled stats for zero effort values.
func ComputeStats(info *PersonalInfo, ivs [6]uint8, level uint8, nature uint8) [6]uint16 {
	var stats [6]uint16
	lvl := uint32(level)

	stats[HP] = uint16((2*uint32(info.Stats[HP])+uint32(ivs[HP]))*lvl/100 + lvl + 10)
	for i := Atk; i <= Spe; i++ {
		stats[i] = uint16((2*uint32(info.Stats[i])+uint32(ivs[i]))*lvl/100 + 5)
	}

	up := natureStatOrder[(nature%25)/5]
	down := natureStatOrder[nature%5]
	if up != down {
		stats[up] = uint16(uint32(stats[up]) * 11 / 10)
		stats[down] = uint16(uint32(stats[down]) * 9 / 10)
	}

	return stats
}
