package cmd

import (
	"strings"
	"testing"
)

func TestStrengthCommand_ScoresValue(t *testing.T) {
	output, err := runCommand("strength", "zmqw")
	if err != nil {
		t.Fatalf("strength failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "bits") {
		t.Errorf("Expected an entropy estimate in output:\n%s", output)
	}
	if !strings.Contains(output, "weak") {
		t.Errorf("Expected a short lowercase value to score weak:\n%s", output)
	}
}

func TestStrengthCommand_CommonWordSuggestion(t *testing.T) {
	output, err := runCommand("strength", "password123")
	if err != nil {
		t.Fatalf("strength failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "common words") {
		t.Errorf("Expected a common-word suggestion:\n%s", output)
	}
}

func TestStrengthCommand_StrongValueNoSuggestions(t *testing.T) {
	output, err := runCommand("strength", "J7#mQz!2Rw$8Kp&4Xc@9")
	if err != nil {
		t.Fatalf("strength failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "strong") {
		t.Errorf("Expected a strong rating:\n%s", output)
	}
	if strings.Contains(output, "increase the length") {
		t.Errorf("Expected no suggestions for a strong value:\n%s", output)
	}
}
