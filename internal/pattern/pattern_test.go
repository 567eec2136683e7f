package pattern

import (
	goerrors "errors"
	"testing"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
)

func TestCompile_ClassSizes(t *testing.T) {
	reg := charset.NewRegistry()

	compiled, err := Compile("LUDSAX", reg, nil, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if compiled.Length() != 6 {
		t.Fatalf("Expected 6 positions, got %d", compiled.Length())
	}

	wantSizes := []int{52, 26, 10, 32, 62, 94}
	for i, want := range wantSizes {
		if got := compiled.Positions[i].Len(); got != want {
			t.Errorf("Position %d: expected %d characters, got %d", i, want, got)
		}
	}
}

func TestCompile_LowercaseTokensEquivalent(t *testing.T) {
	reg := charset.NewRegistry()

	upper, err := Compile("LUDSAX", reg, nil, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	lower, err := Compile("ludsax", reg, nil, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for i := range upper.Positions {
		if upper.Positions[i].Len() != lower.Positions[i].Len() {
			t.Errorf("Position %d: case changed the class size", i)
		}
	}
}

func TestCompile_UnknownToken(t *testing.T) {
	reg := charset.NewRegistry()
	_, err := Compile("LLQ", reg, nil, nil)
	if !goerrors.Is(err, errors.ErrUnknownToken) {
		t.Errorf("Expected ErrUnknownToken, got %v", err)
	}
}

func TestCompile_ExclusionsApplyPerPosition(t *testing.T) {
	reg := charset.NewRegistry()
	compiled, err := Compile("D", reg, []rune{'0', '1', '2'}, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got := compiled.Positions[0].Len(); got != 7 {
		t.Errorf("Expected 7 digits after exclusion, got %d", got)
	}
}

func TestCompile_EmptyClassAfterExclusion(t *testing.T) {
	reg := charset.NewRegistry()
	_, err := Compile("D", reg, []rune("0123456789"), nil)
	if !goerrors.Is(err, errors.ErrEmptyClass) {
		t.Errorf("Expected ErrEmptyClass, got %v", err)
	}
}

func TestCompile_ForcedMustFitSomePosition(t *testing.T) {
	reg := charset.NewRegistry()

	// A digit fits the D position.
	if _, err := Compile("LD", reg, nil, []rune{'7'}); err != nil {
		t.Errorf("Expected forced digit to fit, got %v", err)
	}

	// A symbol fits no position in a letters-and-digits template.
	_, err := Compile("LD", reg, nil, []rune{'#'})
	if !goerrors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}

func TestCompile_EmptyTemplate(t *testing.T) {
	reg := charset.NewRegistry()
	compiled, err := Compile("", reg, nil, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if compiled.Length() != 0 {
		t.Errorf("Expected 0 positions, got %d", compiled.Length())
	}
}
