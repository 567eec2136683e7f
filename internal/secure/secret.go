// Package secure holds generated secret material and keeps it out of logs.
package secure

import (
	"encoding/json"
	"fmt"
	"io"
)

// Secret is a thin wrapper around a byte slice holding a generated secret.
// It redacts itself under fmt verbs and JSON marshaling so a stray log line
// cannot leak a password, and it can be zeroed once the value has been
// printed or handed to the clipboard.
type Secret []byte

// FromString wraps user or generator output in a Secret.
func FromString(in string) Secret { return Secret([]byte(in)) }

// FromRunes encodes a rune slice into a Secret.
func FromRunes(in []rune) Secret { return Secret([]byte(string(in))) }

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return "[SECRET]" }

// Format implements fmt.Formatter to ensure `%v`, `%#v` and friends are redacted.
func (s Secret) Format(f fmt.State, c rune) {
	if _, err := io.WriteString(f, "[SECRET]"); err != nil {
		_ = err // intentionally ignore write error when formatting secrets for logs
	}
}

// MarshalJSON redacts secrets in JSON marshaling.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal("[SECRET]") }

// MarshalText redacts secrets for text encoding.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[SECRET]"), nil }

// Reveal returns the secret bytes as a string for intentional output.
// Callers must Zero the secret once the value has left the process.
func (s Secret) Reveal() string { return string(s) }

// Bytes returns a copy of the underlying bytes. Callers are responsible for
// zeroing sensitive copies when done.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Zero overwrites the underlying byte slice with zeros.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}
