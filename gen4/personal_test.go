package gen4

import (
	"errors"
	"testing"
)

func TestDefaultPersonalTable(t *testing.T) {
	dialga := mustSpecies(t, "dialga")
	ExpectEqual(t, uint16(483), dialga.Num)
	ExpectEqual(t, uint16(150), dialga.Stats[SpA])
	ExpectEqual(t, true, dialga.FixedGender())

	heatran := mustSpecies(t, "  HEATRAN ")
	ExpectEqual(t, uint8(127), heatran.GenderRatio)
	ExpectEqual(t, false, heatran.FixedGender())

	if len(DefaultPersonalTable().Species()) < 20 {
		t.Errorf("only %d species", len(DefaultPersonalTable().Species()))
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := DefaultPersonalTable().Lookup("Missingno")
	ExpectEqual(t, true, errors.Is(err, ErrUnknownSpecies))
}

func TestLoadPersonalTable(t *testing.T) {
	table, err := LoadPersonalTable([]byte(`{"species": [
		{"num": 1, "name": "Bulbasaur", "stats": [45, 49, 49, 65, 65, 45], "gender": 31, "abilities": ["Overgrow"]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	info, err := table.Lookup("bulbasaur")
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "Overgrow", info.Ability(1))
	ExpectEqual(t, uint16(45), info.Stats[Spe])
}

func TestLoadPersonalTable_Invalid(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{"pokemon": []}`,
		`{"species": [{"num": 1, "stats": [1, 2, 3, 4, 5, 6], "gender": 0}]}`,
		`{"species": [{"num": 1, "name": "A", "stats": [1, 2, 3], "gender": 0}]}`,
		`{"species": [{"num": 1, "name": "A", "stats": [1, 2, 3, 4, 5, 6]}]}`,
		`{"species": [{"num": 1, "name": "A", "stats": [1, 2, 3, 4, 5, 6], "gender": 300}]}`,
		`{"species": [{"num": 1, "name": "A", "stats": [1, 2, 3, 4, 5, 6], "gender": 0},
		              {"num": 2, "name": "a", "stats": [1, 2, 3, 4, 5, 6], "gender": 0}]}`,
	} {
		if _, err := LoadPersonalTable([]byte(doc)); err == nil {
			t.Errorf("expected error for %s", doc)
		}
	}
}
