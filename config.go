package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"staticscan/gen4"
)

// SearchConfig is everything a scan needs, resolved from viper.
type SearchConfig struct {
	Seeds           []uint32
	InitialAdvances uint32
	MaxAdvances     uint32
	Offset          uint32
	Method          gen4.Method
	Lead            gen4.Lead
	Template        gen4.StaticTemplate
	Profile         gen4.Profile
	Filter          gen4.Filter
	Runners         int
	Chunk           uint32
}

// Generator returns a generator for count advances of the window starting
// start advances past InitialAdvances.
func (c *SearchConfig) Generator(start, count uint32) *gen4.StaticGenerator {
	return gen4.NewStaticGenerator(c.InitialAdvances+start, count-1, c.Offset, c.Method, c.Lead,
		c.Template, c.Profile, c.Filter)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seeds", []string{})
	v.SetDefault("initial_advances", "0")
	v.SetDefault("max_advances", "1000")
	v.SetDefault("offset", "0")
	v.SetDefault("method", "method1")
	v.SetDefault("lead", "none")
	v.SetDefault("species", "")
	v.SetDefault("personal", "")
	v.SetDefault("level", 50)
	v.SetDefault("shiny", "random")
	v.SetDefault("tid", 0)
	v.SetDefault("sid", 0)
	v.SetDefault("filter.ivs", []string{})
	v.SetDefault("filter.natures", []string{})
	v.SetDefault("filter.hidden_powers", []string{})
	v.SetDefault("filter.shiny", "any")
	v.SetDefault("filter.gender", "any")
	v.SetDefault("filter.ability", "any")
	v.SetDefault("runners", runtime.NumCPU())
	v.SetDefault("chunk", "100k")
	v.SetDefault("reporter.interval", "1s")
	v.SetDefault("reporter.logprogress", false)
	v.SetDefault("output.dir", "results")
	v.SetDefault("output.compress", "none")
	v.SetDefault("output.stats", false)
	v.SetDefault("log.level", "info")
}

// bindFlags exposes the most used keys on the command line. Anything else
// comes from config.yaml or STATICSCAN_* environment variables.
func bindFlags(v *viper.Viper, args []string) error {
	fs := pflag.NewFlagSet("staticscan", pflag.ContinueOnError)

	fs.StringSliceP("seeds", "s", nil, "seeds to scan, hex or decimal")
	fs.StringP("initial_advances", "i", "0", "advances skipped before the window")
	fs.StringP("max_advances", "m", "1000", "last advance of the window, relative to initial_advances")
	fs.StringP("offset", "o", "0", "fixed draws between an advance and the encounter")
	fs.String("method", "method1", "method1, methodj or methodk")
	fs.String("lead", "none", "none, cutecharm-m, cutecharm-f or synchronize:<nature>")
	fs.String("species", "", "species name from the personal table")
	fs.Int("level", 50, "encounter level")
	fs.String("shiny", "random", "template shiny policy: random, never, always")
	fs.Int("tid", 0, "trainer id")
	fs.Int("sid", 0, "secret id")
	fs.IntP("runners", "r", runtime.NumCPU(), "concurrent runners")
	fs.String("chunk", "100k", "advances per runner job")
	fs.String("config", "", "config file (default ./config.yaml)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	// only flags given on the command line override the config file
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" || err != nil {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})

	return err
}

// readConfig loads the file given with --config, or else
// config.{yaml,json,toml} from the working directory if there is one. A
// missing default file is fine; a missing explicit one or a broken one is
// not.
func readConfig(v *viper.Viper) error {
	// SetConfigName would discard a file set by --config
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("staticscan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %s", err)
	}

	return nil
}

func LoadSearchConfig(v *viper.Viper) (*SearchConfig, error) {
	var err error
	c := &SearchConfig{}

	for _, s := range v.GetStringSlice("seeds") {
		seed, err := parseUint32(s)
		if err != nil {
			return nil, fmt.Errorf("seeds: %s", err)
		}
		c.Seeds = append(c.Seeds, seed)
	}
	if len(c.Seeds) == 0 {
		return nil, fmt.Errorf("no seeds specified; set 'seeds' in config.yaml or pass --seeds")
	}

	if c.InitialAdvances, err = getUint32(v, "initial_advances"); err != nil {
		return nil, err
	}
	if c.MaxAdvances, err = getUint32(v, "max_advances"); err != nil {
		return nil, err
	}
	if c.Offset, err = getUint32(v, "offset"); err != nil {
		return nil, err
	}

	if c.Method, err = gen4.ParseMethod(v.GetString("method")); err != nil {
		return nil, err
	}
	if c.Lead, err = gen4.ParseLead(v.GetString("lead")); err != nil {
		return nil, err
	}

	table := gen4.DefaultPersonalTable()
	if path := v.GetString("personal"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read personal table: %s", err)
		}
		if table, err = gen4.LoadPersonalTable(data); err != nil {
			return nil, fmt.Errorf("cannot load personal table: %s", err)
		}
	}

	species := v.GetString("species")
	if species == "" {
		return nil, fmt.Errorf("no species specified; set 'species' in config.yaml")
	}
	if c.Template.Info, err = table.Lookup(species); err != nil {
		return nil, err
	}

	level := v.GetInt("level")
	if level < 1 || level > 100 {
		return nil, fmt.Errorf("level %d must be within 1-100", level)
	}
	c.Template.Level = uint8(level)

	if c.Template.Shiny, err = gen4.ParseShiny(v.GetString("shiny")); err != nil {
		return nil, err
	}

	tid, sid := v.GetInt("tid"), v.GetInt("sid")
	if tid < 0 || tid > 0xFFFF || sid < 0 || sid > 0xFFFF {
		return nil, fmt.Errorf("tid and sid must be within 0-65535")
	}
	c.Profile = gen4.Profile{TID: uint16(tid), SID: uint16(sid)}

	if c.Filter, err = loadFilter(v); err != nil {
		return nil, err
	}

	c.Runners = v.GetInt("runners")
	if c.Runners < 1 {
		return nil, fmt.Errorf("runners must be at least 1")
	}

	if c.Chunk, err = getUint32(v, "chunk"); err != nil {
		return nil, err
	}
	if c.Chunk == 0 {
		return nil, fmt.Errorf("chunk must be at least 1")
	}

	return c, nil
}

func loadFilter(v *viper.Viper) (*gen4.StateFilter, error) {
	f := gen4.NewStateFilter()

	ivs := v.GetStringSlice("filter.ivs")
	if len(ivs) != 0 && len(ivs) != 6 {
		return nil, fmt.Errorf("filter.ivs needs 6 ranges (hp, atk, def, spa, spd, spe), got %d", len(ivs))
	}
	for i, r := range ivs {
		lo, hi, err := parseIVRange(r)
		if err != nil {
			return nil, fmt.Errorf("filter.ivs: %s", err)
		}
		f.Min[i], f.Max[i] = lo, hi
	}

	if natures := v.GetStringSlice("filter.natures"); len(natures) > 0 {
		f.Natures = [25]bool{}
		for _, name := range natures {
			n, err := gen4.ParseNature(name)
			if err != nil {
				return nil, fmt.Errorf("filter.natures: %s", err)
			}
			f.Natures[n] = true
		}
	}

	if types := v.GetStringSlice("filter.hidden_powers"); len(types) > 0 {
		f.HiddenPowers = [16]bool{}
		for _, name := range types {
			hp, err := gen4.ParseHiddenPower(name)
			if err != nil {
				return nil, fmt.Errorf("filter.hidden_powers: %s", err)
			}
			f.HiddenPowers[hp] = true
		}
	}

	switch strings.ToLower(v.GetString("filter.shiny")) {
	case "", "any":
	case "star":
		f.Shiny = uint8(gen4.Star)
	case "square":
		f.Shiny = uint8(gen4.Square)
	case "shiny", "yes":
		f.Shiny = uint8(gen4.Star | gen4.Square)
	default:
		return nil, fmt.Errorf("filter.shiny must be any, star, square or shiny")
	}

	switch strings.ToLower(v.GetString("filter.gender")) {
	case "", "any":
	case "m", "male":
		f.Gender = uint8(gen4.Male)
	case "f", "female":
		f.Gender = uint8(gen4.Female)
	case "-", "genderless":
		f.Gender = uint8(gen4.Genderless)
	default:
		return nil, fmt.Errorf("filter.gender must be any, male, female or genderless")
	}

	switch strings.ToLower(v.GetString("filter.ability")) {
	case "", "any":
	case "0":
		f.Ability = 0
	case "1":
		f.Ability = 1
	default:
		return nil, fmt.Errorf("filter.ability must be any, 0 or 1")
	}

	return f, nil
}

func getUint32(v *viper.Viper, key string) (uint32, error) {
	n, err := parseCount(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %s", key, err)
	}
	if n > 0xFFFFFFFF {
		return 0, fmt.Errorf("%s: %d does not fit in 32 bits", key, n)
	}
	return uint32(n), nil
}
