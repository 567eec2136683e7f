package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logger "github.com/PolarWolf314/tuatara/internal/logging"
	"github.com/PolarWolf314/tuatara/internal/wordlist"
)

// withTestWordlist points the provider seam at a local server carrying a
// syntactically valid wordlist of the expected size, with a matching
// checksum, so commands that need the wordlist run without the network.
func withTestWordlist(t *testing.T) {
	t.Helper()

	var b strings.Builder
	for i := 0; i < wordlist.ExpectedWords; i++ {
		fmt.Fprintf(&b, "%05d\tword%04d\n", i, i)
	}
	contents := b.String()
	sum := sha256.Sum256([]byte(contents))
	checksum := hex.EncodeToString(sum[:])

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, contents)
	}))
	t.Cleanup(server.Close)

	original := newWordlistProvider
	newWordlistProvider = func(log logger.Logger) *wordlist.Provider {
		provider := wordlist.NewProvider(log)
		provider.URL = server.URL
		provider.Checksum = checksum
		return provider
	}
	t.Cleanup(func() { newWordlistProvider = original })
}

// findPassphraseLine returns the first output line that splits on the
// separator into exactly wordCount fixture words.
func findPassphraseLine(output, separator string, wordCount int) (string, bool) {
	for _, line := range outputLines(output) {
		parts := strings.Split(line, separator)
		if len(parts) != wordCount {
			continue
		}
		allWords := true
		for _, part := range parts {
			if !strings.HasPrefix(part, "word") {
				allWords = false
				break
			}
		}
		if allWords {
			return line, true
		}
	}
	return "", false
}

func TestPassphraseCommand_FixedSeparator(t *testing.T) {
	defer resetCommandState(passphraseCmd)
	withTestWordlist(t)

	cacheDir := t.TempDir()
	output, err := runCommand("passphrase", "--words", "4", "--separator", "-", "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("passphrase failed: %v\nOutput: %s", err, output)
	}
	if _, found := findPassphraseLine(output, "-", 4); !found {
		t.Errorf("Expected a 4-word passphrase in output:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(cacheDir, wordlist.CacheFilename)); err != nil {
		t.Errorf("Expected the wordlist to be cached at %s: %v", cacheDir, err)
	}
}

func TestPassphraseCommand_SeededReproducible(t *testing.T) {
	defer resetCommandState(passphraseCmd)
	withTestWordlist(t)

	cacheDir := t.TempDir()
	first, err := runCommand("passphrase", "--words", "5", "--separator", "-", "--seed", "7", "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	resetCommandState(passphraseCmd)
	second, err := runCommand("passphrase", "--words", "5", "--separator", "-", "--seed", "7", "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	a, foundA := findPassphraseLine(first, "-", 5)
	b, foundB := findPassphraseLine(second, "-", 5)
	if !foundA || !foundB {
		t.Fatalf("Passphrases not found in output")
	}
	if a != b {
		t.Errorf("Same seed produced different passphrases: %q vs %q", a, b)
	}
}
