package gen4

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Gender ratio bytes with special meaning. Any other value is a threshold
// compared against the low byte of the PID.
const (
	GenderRatioMale       = 0
	GenderRatioFemale     = 254
	GenderRatioGenderless = 255
)

// PersonalInfo is the read-only species metadata consulted while building a
// State.
type PersonalInfo struct {
	Num         uint16
	Name        string
	Stats       [6]uint16 // HP, Atk, Def, SpA, SpD, Spe
	GenderRatio uint8
	Abilities   [2]string
}

// FixedGender reports whether the species has only one possible gender.
func (p *PersonalInfo) FixedGender() bool {
	switch p.GenderRatio {
	case GenderRatioMale, GenderRatioFemale, GenderRatioGenderless:
		return true
	}
	return false
}

// Ability returns the ability name for slot 0 or 1.
func (p *PersonalInfo) Ability(slot uint8) string {
	return p.Abilities[slot&1]
}

// PersonalTable indexes species by lower-cased name.
type PersonalTable struct {
	species map[string]*PersonalInfo
	order   []*PersonalInfo
}

//go:embed personal.json
var defaultPersonalJSON []byte

var defaultPersonalTable *PersonalTable

func init() {
	var err error
	if defaultPersonalTable, err = LoadPersonalTable(defaultPersonalJSON); err != nil {
		panic(fmt.Sprintf("embedded personal table: %s", err))
	}
}

// DefaultPersonalTable returns the table of static encounter species that
// ships with the package.
func DefaultPersonalTable() *PersonalTable {
	return defaultPersonalTable
}

// LoadPersonalTable parses a document of the form
// {"species": [{"num", "name", "stats", "gender", "abilities"}, ...]}.
func LoadPersonalTable(data []byte) (*PersonalTable, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("personal table is not valid json")
	}

	species := gjson.GetBytes(data, "species")
	if !species.IsArray() {
		return nil, fmt.Errorf("personal table has no 'species' array")
	}

	t := &PersonalTable{
		species: make(map[string]*PersonalInfo),
	}

	var err error
	species.ForEach(func(_, entry gjson.Result) bool {
		info := &PersonalInfo{
			Num:  uint16(entry.Get("num").Uint()),
			Name: entry.Get("name").String(),
		}

		if info.Name == "" {
			err = fmt.Errorf("species %d has no name", info.Num)
			return false
		}

		stats := entry.Get("stats").Array()
		if len(stats) != 6 {
			err = fmt.Errorf("species '%s' needs 6 base stats, got %d", info.Name, len(stats))
			return false
		}
		for i, s := range stats {
			info.Stats[i] = uint16(s.Uint())
		}

		gender := entry.Get("gender")
		if !gender.Exists() || gender.Uint() > 255 {
			err = fmt.Errorf("species '%s' has invalid gender ratio", info.Name)
			return false
		}
		info.GenderRatio = uint8(gender.Uint())

		for i, a := range entry.Get("abilities").Array() {
			if i < 2 {
				info.Abilities[i] = a.String()
			}
		}
		if info.Abilities[1] == "" {
			info.Abilities[1] = info.Abilities[0]
		}

		key := strings.ToLower(info.Name)
		if _, dup := t.species[key]; dup {
			err = fmt.Errorf("species '%s' listed twice", info.Name)
			return false
		}

		t.species[key] = info
		t.order = append(t.order, info)
		return true
	})

	if err != nil {
		return nil, err
	}

	return t, nil
}

// Lookup finds a species by name, ignoring case.
func (t *PersonalTable) Lookup(name string) (*PersonalInfo, error) {
	info, ok := t.species[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownSpecies, name)
	}
	return info, nil
}

// Species returns every entry in file order.
func (t *PersonalTable) Species() []*PersonalInfo {
	return t.order
}
