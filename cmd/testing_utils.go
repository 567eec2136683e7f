// Package cmd testing utilities shared between command tests. This file
// provides helpers for resetting global flag state, capturing output, and
// digging secrets out of mixed spinner output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"

	logger "github.com/PolarWolf314/tuatara/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCommandState restores a command's flags to their defaults so one
// test's flags cannot leak into the next.
func resetCommandState(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		sub.Flags().VisitAll(reset)
	}
}

// runCommand executes the root command with the given arguments and returns
// the combined stdout and stderr output.
func runCommand(args ...string) (string, error) {
	verbose = false
	debug = false
	Logger = logger.Logger{}

	RootCmd.SetArgs(args)
	return captureOutput(func() error {
		return RootCmd.Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// outputLines splits captured output into lines, stripping spinner carriage
// returns and ANSI erase sequences so each returned line is plain text.
func outputLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if i := strings.LastIndex(line, "\r"); i >= 0 {
			line = line[i+1:]
		}
		if i := strings.LastIndex(line, "\x1b[K"); i >= 0 {
			line = line[i+3:]
		}
		lines = append(lines, line)
	}
	return lines
}

// findSecretLine returns the first output line of the wanted length whose
// characters all satisfy member. Spinner frames and log lines never match.
func findSecretLine(output string, length int, member func(rune) bool) (string, bool) {
	for _, line := range outputLines(output) {
		runes := []rune(line)
		if len(runes) != length {
			continue
		}
		ok := true
		for _, r := range runes {
			if !member(r) {
				ok = false
				break
			}
		}
		if ok {
			return line, true
		}
	}
	return "", false
}
