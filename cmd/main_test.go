package cmd

import (
	"log"
	"os"
	"testing"
)

// TestMain points the user config directory at a scratch location so command
// tests never read a developer's real config or wordlist cache.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tuatara-cmd-test-*")
	if err != nil {
		log.Fatalf("Failed to create scratch config dir: %v", err)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}
