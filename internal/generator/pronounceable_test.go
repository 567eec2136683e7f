package generator

import (
	"context"
	goerrors "errors"
	"math"
	"strings"
	"testing"

	"github.com/PolarWolf314/tuatara/internal/errors"
)

func isConsonant(r rune) bool {
	return strings.ContainsRune(string(pronounceConsonants), r)
}

func isVowel(r rune) bool {
	return strings.ContainsRune(string(pronounceVowels), r)
}

func TestGenerate_PronounceableStrictAlternation(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:   ModePronounceable,
		Length: 16,
		Count:  1,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	value := []rune(secrets[0].Value.Reveal())
	if len(value) != 16 {
		t.Fatalf("Expected 16 characters, got %d", len(value))
	}
	for i, r := range value {
		wantConsonant := i%2 == 0
		if wantConsonant && !isConsonant(r) {
			t.Errorf("Position %d: expected a consonant, got %q", i, r)
		}
		if !wantConsonant && !isVowel(r) {
			t.Errorf("Position %d: expected a vowel, got %q", i, r)
		}
	}
}

func TestGenerate_PronounceableEntropy(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:   ModePronounceable,
		Length: 10,
		Count:  1,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Strict alternation starting on a consonant: five draws from each class.
	want := 5*math.Log2(21) + 5*math.Log2(5)
	if got := secrets[0].EntropyBits; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %.6f bits, got %.6f", want, got)
	}
}

func TestGenerate_PronounceableLoosenessKeepsClasses(t *testing.T) {
	engine := newTestEngine()
	secrets, err := engine.Generate(context.Background(), Request{
		Mode:      ModePronounceable,
		Length:    64,
		Count:     1,
		Looseness: 3,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i, r := range secrets[0].Value.Reveal() {
		if !isConsonant(r) && !isVowel(r) {
			t.Errorf("Position %d: %q is neither consonant nor vowel", i, r)
		}
	}
}

func TestGenerate_PronounceableNegativeLooseness(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Generate(context.Background(), Request{
		Mode:      ModePronounceable,
		Length:    8,
		Count:     1,
		Looseness: -1,
	})
	if !goerrors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}

func TestGenerate_PronounceableSeededReproducible(t *testing.T) {
	engine := newTestEngine()
	req := Request{
		Mode:      ModePronounceable,
		Length:    20,
		Count:     1,
		Looseness: 4,
		Seed:      seedPtr(21),
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
