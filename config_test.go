package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"staticscan/gen4"
)

func baseViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.Set("seeds", []string{"0x12345678", "beef"})
	v.Set("species", "heatran")
	return v
}

func TestLoadSearchConfig_Defaults(t *testing.T) {
	c, err := LoadSearchConfig(baseViper())
	FatalOnError(t, err, "load")

	ExpectEqual(t, 2, len(c.Seeds))
	ExpectEqual(t, uint32(0x12345678), c.Seeds[0])
	ExpectEqual(t, uint32(0xBEEF), c.Seeds[1])
	ExpectEqual(t, uint32(1000), c.MaxAdvances)
	ExpectEqual(t, gen4.Method1, c.Method)
	ExpectEqual(t, gen4.None, c.Lead)
	ExpectEqual(t, "Heatran", c.Template.Info.Name)
	ExpectEqual(t, uint8(50), c.Template.Level)
	ExpectEqual(t, gen4.ShinyRandom, c.Template.Shiny)
	ExpectEqual(t, uint32(100_000), c.Chunk)

	f := c.Filter.(*gen4.StateFilter)
	ExpectEqual(t, *gen4.NewStateFilter(), *f)
}

func TestLoadSearchConfig_Search(t *testing.T) {
	v := baseViper()
	v.Set("method", "MethodJ")
	v.Set("lead", "synchronize:adamant")
	v.Set("initial_advances", "2k")
	v.Set("max_advances", "1M")
	v.Set("offset", 3)
	v.Set("shiny", "never")
	v.Set("tid", 12345)
	v.Set("sid", 54321)
	v.Set("runners", 3)
	v.Set("chunk", "5000")

	c, err := LoadSearchConfig(v)
	FatalOnError(t, err, "load")

	ExpectEqual(t, gen4.MethodJ, c.Method)
	ExpectEqual(t, gen4.SynchronizeLead(3), c.Lead)
	ExpectEqual(t, uint32(2000), c.InitialAdvances)
	ExpectEqual(t, uint32(1_000_000), c.MaxAdvances)
	ExpectEqual(t, uint32(3), c.Offset)
	ExpectEqual(t, gen4.ShinyNever, c.Template.Shiny)
	ExpectEqual(t, gen4.Profile{TID: 12345, SID: 54321}, c.Profile)
	ExpectEqual(t, 3, c.Runners)
	ExpectEqual(t, uint32(5000), c.Chunk)

	g := c.Generator(100, 50)
	ExpectEqual(t, uint32(2100), g.InitialAdvances)
	ExpectEqual(t, uint32(49), g.MaxAdvances)
	ExpectEqual(t, uint32(3), g.Offset)
	ExpectEqual(t, gen4.MethodJ, g.Method)
}

func TestLoadSearchConfig_Filter(t *testing.T) {
	v := baseViper()
	v.Set("filter.ivs", []string{"31", "*", "20-31", "", "", "0-5"})
	v.Set("filter.natures", []string{"Adamant", "jolly"})
	v.Set("filter.hidden_powers", []string{"ice"})
	v.Set("filter.shiny", "star")
	v.Set("filter.gender", "female")
	v.Set("filter.ability", "1")

	c, err := LoadSearchConfig(v)
	FatalOnError(t, err, "load")
	f := c.Filter.(*gen4.StateFilter)

	ExpectEqual(t, [6]uint8{31, 0, 20, 0, 0, 0}, f.Min)
	ExpectEqual(t, [6]uint8{31, 31, 31, 31, 31, 5}, f.Max)
	ExpectEqual(t, true, f.Natures[3])
	ExpectEqual(t, true, f.Natures[13])
	ExpectEqual(t, false, f.Natures[0])
	ExpectEqual(t, true, f.HiddenPowers[13])
	ExpectEqual(t, false, f.HiddenPowers[8])
	ExpectEqual(t, uint8(gen4.Star), f.Shiny)
	ExpectEqual(t, uint8(gen4.Female), f.Gender)
	ExpectEqual(t, uint8(1), f.Ability)
}

func TestLoadSearchConfig_Invalid(t *testing.T) {
	for _, tc := range []struct {
		key   string
		value interface{}
	}{
		{"seeds", []string{}},
		{"seeds", []string{"zz"}},
		{"species", ""},
		{"species", "Missingno"},
		{"method", "method3"},
		{"lead", "synchronize:grumpy"},
		{"shiny", "sometimes"},
		{"level", 0},
		{"level", 101},
		{"tid", 70000},
		{"runners", 0},
		{"chunk", "0"},
		{"max_advances", "5g"},
		{"max_advances", "18446744073709552k"},
		{"chunk", "18446744074g"},
		{"filter.ivs", []string{"31"}},
		{"filter.natures", []string{"Grumpy"}},
		{"filter.hidden_powers", []string{"Fairy"}},
		{"filter.shiny", "maybe"},
		{"filter.gender", "x"},
		{"filter.ability", "2"},
	} {
		v := baseViper()
		v.Set(tc.key, tc.value)
		_, err := LoadSearchConfig(v)
		ErrorOnNoError(t, err, tc.key)
	}
}

func TestLoadSearchConfig_UnknownSpecies(t *testing.T) {
	v := baseViper()
	v.Set("species", "Missingno")
	_, err := LoadSearchConfig(v)

	if !errors.Is(err, gen4.ErrUnknownSpecies) {
		t.Errorf("expected ErrUnknownSpecies, got %v", err)
	}
}

func TestBindFlags(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("species", "heatran")

	err := bindFlags(v, []string{"--seeds", "0x1,0x2", "--method", "k", "-m", "500", "-r", "2"})
	ErrorOnError(t, err, "flags")

	c, err := LoadSearchConfig(v)
	FatalOnError(t, err, "load")
	ExpectEqual(t, 2, len(c.Seeds))
	ExpectEqual(t, gen4.MethodK, c.Method)
	ExpectEqual(t, uint32(500), c.MaxAdvances)
	ExpectEqual(t, 2, c.Runners)

	// unset flags leave the defaults alone
	ExpectEqual(t, gen4.None, c.Lead)

	ErrorOnNoError(t, bindFlags(viper.New(), []string{"--bogus"}), "unknown flag")
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.yaml")

	err := os.WriteFile(path, []byte(`
seeds: ["0x12345678"]
species: Giratina
method: methodk
lead: cutecharm-m
level: 70
filter:
  natures: [Modest]
`), 0644)
	ErrorOnError(t, err, "write config")

	v := viper.New()
	setDefaults(v)
	FatalOnError(t, bindFlags(v, []string{"--config", path}), "flags")
	FatalOnError(t, readConfig(v), "read")
	ExpectEqual(t, path, v.ConfigFileUsed())

	c, err := LoadSearchConfig(v)
	FatalOnError(t, err, "load")
	ExpectEqual(t, "Giratina", c.Template.Info.Name)
	ExpectEqual(t, gen4.MethodK, c.Method)
	ExpectEqual(t, gen4.CuteCharmM, c.Lead)
	ExpectEqual(t, uint8(70), c.Template.Level)
	ExpectEqual(t, false, c.Filter.(*gen4.StateFilter).Natures[0])
	ExpectEqual(t, true, c.Filter.(*gen4.StateFilter).Natures[15])

	t.Setenv("STATICSCAN_MAX_ADVANCES", "42")
	c, err = LoadSearchConfig(v)
	FatalOnError(t, err, "load with env")
	ExpectEqual(t, uint32(42), c.MaxAdvances)
}

func TestReadConfig_ExplicitFileWins(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	ErrorOnError(t, os.WriteFile(explicit, []byte("species: Dialga\n"), 0644), "write explicit")

	// a config.yaml in the search path must not shadow --config
	wd := t.TempDir()
	ErrorOnError(t, os.WriteFile(filepath.Join(wd, "config.yaml"), []byte("species: Palkia\n"), 0644), "write default")
	cwd, err := os.Getwd()
	FatalOnError(t, err, "getwd")
	FatalOnError(t, os.Chdir(wd), "chdir")
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	v := viper.New()
	setDefaults(v)
	FatalOnError(t, bindFlags(v, []string{"--config", explicit}), "flags")
	FatalOnError(t, readConfig(v), "read")
	ExpectEqual(t, "Dialga", v.GetString("species"))
}

func TestReadConfig_ExplicitFileMissing(t *testing.T) {
	v := viper.New()
	FatalOnError(t, bindFlags(v, []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}), "flags")
	ErrorOnNoError(t, readConfig(v), "missing --config file")
}

func TestReadConfig_Missing(t *testing.T) {
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	ErrorOnError(t, readConfig(v), "missing config is fine")
}
