// Package config loads the site configuration from YAML and validates it
// against an embedded CUE schema before anything else runs.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/minseo-lab/chulgeun/internal/attendance"
)

//go:embed schema.cue
var schemaSource string

// Config is the full site configuration.
type Config struct {
	Site struct {
		Latitude  float64 `yaml:"latitude" json:"latitude"`
		Longitude float64 `yaml:"longitude" json:"longitude"`
		RadiusM   float64 `yaml:"radius_m" json:"radius_m"`
		Timezone  string  `yaml:"timezone" json:"timezone"`
	} `yaml:"site" json:"site"`

	Policy struct {
		ClockInCutoff  string `yaml:"clock_in_cutoff" json:"clock_in_cutoff"`
		ClockOutCutoff string `yaml:"clock_out_cutoff" json:"clock_out_cutoff"`
	} `yaml:"policy" json:"policy"`

	// Names is the allow-list the UI offers; a recorded name must be
	// one of these.
	Names []string `yaml:"names" json:"names"`

	Store struct {
		// Backend selects the adapter: "sqlite" or "workbook".
		Backend string `yaml:"backend" json:"backend"`
		Path    string `yaml:"path" json:"path"`
		Sheet   string `yaml:"sheet" json:"sheet"`
		// CacheTTLSec is the read cache lifetime in seconds.
		CacheTTLSec int `yaml:"cache_ttl_sec" json:"cache_ttl_sec"`
	} `yaml:"store" json:"store"`

	HTTP struct {
		Addr string `yaml:"addr" json:"addr"`
	} `yaml:"http" json:"http"`
}

// Default returns the built-in site configuration.
func Default() Config {
	var c Config
	c.Site.Latitude = 37.456461
	c.Site.Longitude = 126.952096
	c.Site.RadiusM = 100
	c.Site.Timezone = "Asia/Seoul"
	c.Policy.ClockInCutoff = "10:00"
	c.Policy.ClockOutCutoff = "18:00"
	c.Names = []string{}
	c.Store.Backend = "sqlite"
	c.Store.Path = "chulgeun.db"
	c.Store.CacheTTLSec = 10
	c.HTTP.Addr = ":8080"
	return c
}

// Load reads the YAML file at path, fills unset fields from Default, and
// validates the result against the embedded schema.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against the embedded CUE schema plus
// the constraints CUE cannot see (timezone database lookup, cutoff
// parsing).
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	v := schema.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		return fmt.Errorf("config: unknown timezone %q: %w", c.Site.Timezone, err)
	}
	if _, err := attendance.ParseTimeOfDay(c.Policy.ClockInCutoff); err != nil {
		return fmt.Errorf("config: clock_in_cutoff: %w", err)
	}
	if _, err := attendance.ParseTimeOfDay(c.Policy.ClockOutCutoff); err != nil {
		return fmt.Errorf("config: clock_out_cutoff: %w", err)
	}
	return nil
}

// Location returns the site-local timezone. Call Validate first; an
// invalid timezone falls back to UTC here.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AttendancePolicy returns the parsed time-of-day policy. Call Validate
// first; unparsable cutoffs fall back to the defaults.
func (c Config) AttendancePolicy() attendance.Policy {
	p := attendance.DefaultPolicy()
	if in, err := attendance.ParseTimeOfDay(c.Policy.ClockInCutoff); err == nil {
		p.ClockInCutoff = in
	}
	if out, err := attendance.ParseTimeOfDay(c.Policy.ClockOutCutoff); err == nil {
		p.ClockOutCutoff = out
	}
	return p
}

// CacheTTL returns the read cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Store.CacheTTLSec) * time.Second
}

// AllowsName reports whether name is on the configured allow-list. An
// empty list allows everyone, for single-user setups that never filled
// it in.
func (c Config) AllowsName(name string) bool {
	if len(c.Names) == 0 {
		return true
	}
	name = attendance.NormalizeName(name)
	for _, n := range c.Names {
		if attendance.NormalizeName(n) == name {
			return true
		}
	}
	return false
}
