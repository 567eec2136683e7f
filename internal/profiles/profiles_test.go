package profiles

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
	"github.com/PolarWolf314/tuatara/internal/generator"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	profiles, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if profiles.Defaults != nil || len(profiles.Profiles) != 0 {
		t.Errorf("Expected empty configuration for a missing file")
	}
}

func TestLoad_ParsesDefaultsAndProfiles(t *testing.T) {
	path := writeConfig(t, `
[defaults]
length = 20
avoid_repeating = true

[profiles.wifi]
use_words = true
length = 6
separator = "-"

[profiles.pin]
length = 4
allowed = "digit"
`)

	profiles, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if profiles.Defaults == nil || profiles.Defaults.Length == nil || *profiles.Defaults.Length != 20 {
		t.Errorf("Defaults not parsed: %+v", profiles.Defaults)
	}

	names := profiles.Names()
	if len(names) != 2 || names[0] != "pin" || names[1] != "wifi" {
		t.Errorf("Expected sorted names [pin wifi], got %v", names)
	}

	wifi, ok := profiles.Get("wifi")
	if !ok {
		t.Fatalf("Profile wifi missing")
	}
	if wifi.UseWords == nil || !*wifi.UseWords {
		t.Errorf("Expected use_words true for wifi")
	}
	if wifi.Separator == nil || *wifi.Separator != "-" {
		t.Errorf("Expected separator '-' for wifi")
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "length = [unclosed")
	if _, err := Load(path); err == nil {
		t.Errorf("Expected error for malformed TOML")
	}
}

func TestStarter_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(path, Starter()); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Defaults == nil || loaded.Defaults.Length == nil || *loaded.Defaults.Length != 20 {
		t.Errorf("Defaults lost in round trip: %+v", loaded.Defaults)
	}
	if _, ok := loaded.Get("wifi"); !ok {
		t.Errorf("Profile wifi lost in round trip")
	}
	if _, ok := loaded.Get("pin"); !ok {
		t.Errorf("Profile pin lost in round trip")
	}
}

func TestApply_OverridesRequestFields(t *testing.T) {
	reg := charset.NewRegistry()
	length := 10
	count := 3
	allowed := "digit, lowerletter"
	avoid := true

	req := generator.Request{Mode: generator.ModeCharacter, Length: 16, Count: 1}
	err := Apply(Definition{
		Length:         &length,
		Count:          &count,
		Allowed:        &allowed,
		AvoidRepeating: &avoid,
	}, reg, &req)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if req.Length != 10 || req.Count != 3 || !req.AvoidRepeat {
		t.Errorf("Scalar fields not applied: %+v", req)
	}
	if len(req.Allowed) != 2 || req.Allowed[0] != "digit" || req.Allowed[1] != "lowerletter" {
		t.Errorf("Allowed not parsed: %v", req.Allowed)
	}
}

func TestApply_ModePrecedence(t *testing.T) {
	reg := charset.NewRegistry()
	pattern := "LLDD"
	useWords := true
	pronounceable := true

	// A pattern wins over words and pronounceable.
	req := generator.Request{}
	err := Apply(Definition{
		Pattern:       &pattern,
		UseWords:      &useWords,
		Pronounceable: &pronounceable,
	}, reg, &req)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if req.Mode != generator.ModePattern || req.Pattern != "LLDD" {
		t.Errorf("Expected pattern mode, got %v", req.Mode)
	}

	// Words win over pronounceable.
	req = generator.Request{}
	err = Apply(Definition{UseWords: &useWords, Pronounceable: &pronounceable}, reg, &req)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if req.Mode != generator.ModeDiceware {
		t.Errorf("Expected diceware mode, got %v", req.Mode)
	}
}

func TestApply_UnknownSetFails(t *testing.T) {
	reg := charset.NewRegistry()
	allowed := "digit, nonsense"
	req := generator.Request{}
	err := Apply(Definition{Allowed: &allowed}, reg, &req)
	if !goerrors.Is(err, errors.ErrUnknownSet) {
		t.Errorf("Expected ErrUnknownSet, got %v", err)
	}
}

func TestApply_BadSeparatorFails(t *testing.T) {
	reg := charset.NewRegistry()
	separator := "--"
	req := generator.Request{}
	err := Apply(Definition{Separator: &separator}, reg, &req)
	if !goerrors.Is(err, errors.ErrInvalidSeparator) {
		t.Errorf("Expected ErrInvalidSeparator, got %v", err)
	}
}

func TestSplitAllowed_EmptySelection(t *testing.T) {
	reg := charset.NewRegistry()
	if _, err := SplitAllowed(" , ", reg); !goerrors.Is(err, errors.ErrEmptyCharset) {
		t.Errorf("Expected ErrEmptyCharset, got %v", err)
	}
}

func TestLookupPolicy_NamesAndAliases(t *testing.T) {
	for _, name := range []string{"windows-ad", "windows", "ad"} {
		p, err := LookupPolicy(name)
		if err != nil {
			t.Fatalf("LookupPolicy(%q) failed: %v", name, err)
		}
		if p.Name != "windows-ad" {
			t.Errorf("LookupPolicy(%q) = %q, want windows-ad", name, p.Name)
		}
	}

	if _, err := LookupPolicy("hipaa"); !goerrors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest for unknown policy, got %v", err)
	}
}

func TestPolicyApply_RaisesToFloor(t *testing.T) {
	p, err := LookupPolicy("nist-high")
	if err != nil {
		t.Fatalf("LookupPolicy failed: %v", err)
	}

	req := generator.Request{Mode: generator.ModeDiceware, Length: 8}
	p.Apply(&req)

	if req.Mode != generator.ModeCharacter {
		t.Errorf("Expected character mode, got %v", req.Mode)
	}
	if req.Length != 16 {
		t.Errorf("Expected length raised to 16, got %d", req.Length)
	}
	if !req.AvoidRepeat {
		t.Errorf("Expected avoid-repeat for nist-high")
	}

	// A longer request is not shortened.
	req = generator.Request{Length: 40}
	p.Apply(&req)
	if req.Length != 40 {
		t.Errorf("Expected length kept at 40, got %d", req.Length)
	}
}

func TestPolicyNames_Canonical(t *testing.T) {
	names := PolicyNames()
	if len(names) != 3 {
		t.Fatalf("Expected 3 policies, got %d", len(names))
	}
	want := []string{"windows-ad", "pci-dss", "nist-high"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Policy %d: expected %q, got %q", i, name, names[i])
		}
	}
}
