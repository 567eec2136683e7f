// Package profiles loads user-defined generation profiles and built-in
// policy presets, and applies them to generation requests.
//
// Profiles live in a TOML file under the user's configuration directory:
//
//	[defaults]
//	length = 20
//
//	[profiles.wifi]
//	use_words = true
//	length = 6
//	separator = "-"
package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
	"github.com/PolarWolf314/tuatara/internal/generator"
)

// UserProfiles is the parsed profile configuration file.
type UserProfiles struct {
	Defaults *Definition           `toml:"defaults"`
	Profiles map[string]Definition `toml:"profiles"`
}

// Definition is one profile. Nil fields leave the request untouched, so a
// profile can override as little as a single knob.
type Definition struct {
	Length         *int    `toml:"length"`
	Count          *int    `toml:"count"`
	Allowed        *string `toml:"allowed"`
	AvoidRepeating *bool   `toml:"avoid_repeating"`
	UseWords       *bool   `toml:"use_words"`
	Separator      *string `toml:"separator"`
	Pronounceable  *bool   `toml:"pronounceable"`
	Pattern        *string `toml:"pattern"`
	Looseness      *int    `toml:"looseness"`
	Seed           *uint64 `toml:"seed"`
}

// DefaultPath returns the profile file location under the user's
// configuration directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "tuatara", "config.toml"), nil
}

// Load reads the profile file, or returns an empty configuration when the
// file does not exist. pathOverride, when non-empty, replaces the default
// location.
func Load(pathOverride string) (*UserProfiles, error) {
	path := pathOverride
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return &UserProfiles{}, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &UserProfiles{}, nil
	}

	profiles := &UserProfiles{}
	if err := LoadTOML(path, profiles); err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return profiles, nil
}

// Starter returns an example configuration for a fresh install: sensible
// defaults plus a passphrase profile and a digits-only PIN profile.
func Starter() *UserProfiles {
	length := 20
	wifiLength := 6
	wifiWords := true
	wifiSeparator := "-"
	pinLength := 4
	pinAllowed := "digit"

	return &UserProfiles{
		Defaults: &Definition{Length: &length},
		Profiles: map[string]Definition{
			"wifi": {Length: &wifiLength, UseWords: &wifiWords, Separator: &wifiSeparator},
			"pin":  {Length: &pinLength, Allowed: &pinAllowed},
		},
	}
}

// Get looks up a named profile.
func (p *UserProfiles) Get(name string) (Definition, bool) {
	def, ok := p.Profiles[name]
	return def, ok
}

// Names returns the defined profile names in sorted order.
func (p *UserProfiles) Names() []string {
	names := make([]string, 0, len(p.Profiles))
	for name := range p.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply merges a profile into a request. Set selections are validated
// against the registry so a typo in the config surfaces as ErrUnknownSet
// instead of silently generating from the wrong alphabet.
func Apply(def Definition, reg charset.Registry, req *generator.Request) error {
	if def.Length != nil {
		req.Length = *def.Length
	}
	if def.Count != nil {
		req.Count = *def.Count
	}
	if def.AvoidRepeating != nil {
		req.AvoidRepeat = *def.AvoidRepeating
	}
	if def.Looseness != nil {
		req.Looseness = *def.Looseness
	}
	if def.Seed != nil {
		seed := *def.Seed
		req.Seed = &seed
	}
	if def.Allowed != nil {
		allowed, err := SplitAllowed(*def.Allowed, reg)
		if err != nil {
			return err
		}
		req.Allowed = allowed
	}
	if def.Pattern != nil {
		req.Mode = generator.ModePattern
		req.Pattern = *def.Pattern
	} else if def.UseWords != nil && *def.UseWords {
		req.Mode = generator.ModeDiceware
	} else if def.Pronounceable != nil && *def.Pronounceable {
		req.Mode = generator.ModePronounceable
	}
	if def.Separator != nil {
		sep, err := generator.ParseSeparator(*def.Separator)
		if err != nil {
			return err
		}
		req.Separator = sep
	}
	return nil
}

// SplitAllowed parses a comma-separated set selection, validating every
// name against the registry.
func SplitAllowed(allowed string, reg charset.Registry) ([]string, error) {
	var names []string
	for _, name := range strings.Split(allowed, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := reg.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", errors.ErrUnknownSet, name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, errors.ErrEmptyCharset
	}
	return names, nil
}
