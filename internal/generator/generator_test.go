package generator

import (
	"context"
	goerrors "errors"
	"math"
	"testing"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
	logger "github.com/PolarWolf314/tuatara/internal/logging"
)

func newTestEngine() *Engine {
	return New(charset.NewRegistry(), logger.Logger{})
}

func seedPtr(v uint64) *uint64 { return &v }

func TestGenerate_CharacterLengthAndMembership(t *testing.T) {
	engine := newTestEngine()
	req := Request{
		Mode:    ModeCharacter,
		Length:  24,
		Count:   1,
		Allowed: []string{"digit", "lowerletter"},
	}

	secrets, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(secrets) != 1 {
		t.Fatalf("Expected 1 secret, got %d", len(secrets))
	}

	value := []rune(secrets[0].Value.Reveal())
	if len(value) != 24 {
		t.Errorf("Expected 24 characters, got %d", len(value))
	}
	allowed, _ := engine.Registry.Resolve([]string{"digit", "lowerletter"}, nil, nil)
	for i, r := range value {
		if !allowed.Contains(r) {
			t.Errorf("Position %d: character %q outside allowed set", i, r)
		}
	}
}

func TestGenerate_DefaultAllowedSets(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:   ModeCharacter,
		Length: 16,
		Count:  1,
	})
	if err != nil {
		t.Fatalf("Generate with default sets failed: %v", err)
	}
	defaults, _ := engine.Registry.Resolve(DefaultAllowed, nil, nil)
	for _, r := range secrets[0].Value.Reveal() {
		if !defaults.Contains(r) {
			t.Errorf("Character %q outside the default sets", r)
		}
	}
}

func TestGenerate_AvoidRepeatNeverReuses(t *testing.T) {
	engine := newTestEngine()
	req := Request{
		Mode:        ModeCharacter,
		Length:      10,
		Count:       1,
		Allowed:     []string{"digit"},
		AvoidRepeat: true,
	}

	secrets, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	seen := make(map[rune]bool)
	for _, r := range secrets[0].Value.Reveal() {
		if seen[r] {
			t.Fatalf("Character %q appeared twice with avoid-repeat", r)
		}
		seen[r] = true
	}
}

func TestGenerate_AvoidRepeatInsufficientUnique(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Generate(context.Background(), Request{
		Mode:        ModeCharacter,
		Length:      11,
		Count:       1,
		Allowed:     []string{"digit"},
		AvoidRepeat: true,
	})
	if !goerrors.Is(err, errors.ErrInsufficientUnique) {
		t.Errorf("Expected ErrInsufficientUnique, got %v", err)
	}
}

func TestGenerate_SeededReproducible(t *testing.T) {
	engine := newTestEngine()
	req := Request{
		Mode:    ModeCharacter,
		Length:  20,
		Count:   1,
		Allowed: []string{"digit", "lowerletter", "upperletter"},
		Seed:    seedPtr(42),
	}

	first, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("First generation failed: %v", err)
	}
	second, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Second generation failed: %v", err)
	}
	if first[0].Value.Reveal() != second[0].Value.Reveal() {
		t.Errorf("Same seed produced different secrets")
	}
}

func TestGenerate_SeededBatchStableUnderConcurrency(t *testing.T) {
	engine := newTestEngine()
	// More secrets than workers, so ordering of goroutines varies between
	// runs while the output must not.
	req := Request{
		Mode:    ModeCharacter,
		Length:  16,
		Count:   12,
		Allowed: []string{"digit", "lowerletter"},
		Seed:    seedPtr(7),
	}

	first, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("First generation failed: %v", err)
	}
	second, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Second generation failed: %v", err)
	}
	if len(first) != 12 || len(second) != 12 {
		t.Fatalf("Expected 12 secrets, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Value.Reveal() != second[i].Value.Reveal() {
			t.Errorf("Secret %d differs between identical seeded runs", i)
		}
	}
	// Distinct indices must not repeat each other.
	if first[0].Value.Reveal() == first[1].Value.Reveal() {
		t.Errorf("Substreams 0 and 1 produced identical secrets")
	}
}

func TestGenerate_PatternPositions(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:    ModePattern,
		Count:   1,
		Pattern: "ULDDS",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	value := []rune(secrets[0].Value.Reveal())
	if len(value) != 5 {
		t.Fatalf("Expected 5 characters, got %d", len(value))
	}

	upper, _ := engine.Registry.Lookup("upperletter")
	lower, _ := engine.Registry.Lookup("lowerletter")
	digit, _ := engine.Registry.Lookup("digit")
	symbol, _ := engine.Registry.Lookup("punctuation")
	letter := lower.Union(upper)

	checks := []struct {
		set  charset.Set
		name string
	}{
		{upper, "upper"},
		{letter, "letter"},
		{digit, "digit"},
		{digit, "digit"},
		{symbol, "symbol"},
	}
	for i, check := range checks {
		if !check.set.Contains(value[i]) {
			t.Errorf("Position %d: %q is not a %s character", i, value[i], check.name)
		}
	}
}

func TestGenerate_PatternRequiresTemplate(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Generate(context.Background(), Request{
		Mode:  ModePattern,
		Count: 1,
	})
	if !goerrors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}

func TestGenerate_ForcedStaysInsidePool(t *testing.T) {
	engine := newTestEngine()
	req := Request{
		Mode:    ModeCharacter,
		Length:  32,
		Count:   1,
		Allowed: []string{"digit"},
		Forced:  []rune{'z'},
		Seed:    seedPtr(5),
	}

	secrets, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	digit, _ := engine.Registry.Lookup("digit")
	for _, r := range secrets[0].Value.Reveal() {
		if !digit.Contains(r) && r != 'z' {
			t.Errorf("Character %q outside digit set plus forced 'z'", r)
		}
	}
}

func TestGenerate_RejectsBadCounts(t *testing.T) {
	engine := newTestEngine()
	if _, err := engine.Generate(context.Background(), Request{Mode: ModeCharacter, Length: 8, Count: 0}); !goerrors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest for count 0, got %v", err)
	}
	if _, err := engine.Generate(context.Background(), Request{Mode: ModeCharacter, Length: 0, Count: 1}); !goerrors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest for length 0, got %v", err)
	}
}

func TestGenerate_CharacterEntropy(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:    ModeCharacter,
		Length:  10,
		Count:   1,
		Allowed: []string{"digit"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := 10 * math.Log2(10)
	if got := secrets[0].EntropyBits; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %.6f bits, got %.6f", want, got)
	}
}

func TestGenerate_AvoidRepeatShrinksEntropy(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:        ModeCharacter,
		Length:      10,
		Count:       1,
		Allowed:     []string{"digit"},
		AvoidRepeat: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Working set shrinks by one per draw: log2(10) + log2(9) + ... + log2(1).
	want := 0.0
	for n := 10; n >= 1; n-- {
		want += math.Log2(float64(n))
	}
	if got := secrets[0].EntropyBits; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %.6f bits, got %.6f", want, got)
	}
}

func TestParseSeparator(t *testing.T) {
	sep, err := ParseSeparator("-")
	if err != nil {
		t.Fatalf("ParseSeparator failed: %v", err)
	}
	if sep.Kind != SeparatorFixed || sep.Grapheme != '-' {
		t.Errorf("Expected fixed '-', got kind %d grapheme %q", sep.Kind, sep.Grapheme)
	}

	sep, err = ParseSeparator("random")
	if err != nil {
		t.Fatalf("ParseSeparator failed: %v", err)
	}
	if sep.Kind != SeparatorRandom {
		t.Errorf("Expected random separator kind")
	}

	if _, err := ParseSeparator("--"); !goerrors.Is(err, errors.ErrInvalidSeparator) {
		t.Errorf("Expected ErrInvalidSeparator for multi-character value, got %v", err)
	}
}
