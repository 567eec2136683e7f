// Package charset defines the named character sets available for secret
// generation and resolves allow/exclude/force-include requests into one
// effective set.
//
// The homoglyph sets group characters that look similar to other characters.
// For example, 'l' looks similar to '1'. They exist for use cases that want
// to either avoid or deliberately exploit that confusion.
package charset

import (
	"fmt"

	"github.com/PolarWolf314/tuatara/internal/errors"
)

// Set is an immutable, ordered collection of unique graphemes identified by
// a registry key. Union and Difference return new sets.
type Set struct {
	id    string
	runes []rune
}

// newSet builds a set from raw characters, keeping first occurrences only.
func newSet(id, chars string) Set {
	seen := make(map[rune]bool, len(chars))
	runes := make([]rune, 0, len(chars))
	for _, r := range chars {
		if !seen[r] {
			seen[r] = true
			runes = append(runes, r)
		}
	}
	return Set{id: id, runes: runes}
}

// ID returns the registry key of the set, or "" for derived sets.
func (s Set) ID() string { return s.id }

// Len returns the number of graphemes in the set.
func (s Set) Len() int { return len(s.runes) }

// At returns the grapheme at index i.
func (s Set) At(i int) rune { return s.runes[i] }

// Runes returns a copy of the set's graphemes in order.
func (s Set) Runes() []rune {
	out := make([]rune, len(s.runes))
	copy(out, s.runes)
	return out
}

// Contains reports whether r is a member of the set.
func (s Set) Contains(r rune) bool {
	for _, m := range s.runes {
		if m == r {
			return true
		}
	}
	return false
}

// Union returns a new set containing the members of s followed by the
// members of other that s lacks.
func (s Set) Union(other Set) Set {
	merged := Set{runes: append([]rune(nil), s.runes...)}
	for _, r := range other.runes {
		if !merged.Contains(r) {
			merged.runes = append(merged.runes, r)
		}
	}
	return merged
}

// Difference returns a new set with the given graphemes removed.
func (s Set) Difference(removed []rune) Set {
	out := Set{runes: make([]rune, 0, len(s.runes))}
	for _, r := range s.runes {
		keep := true
		for _, x := range removed {
			if r == x {
				keep = false
				break
			}
		}
		if keep {
			out.runes = append(out.runes, r)
		}
	}
	return out
}

// Filter returns a new set holding only the graphemes for which pred is true.
func (s Set) Filter(pred func(rune) bool) Set {
	out := Set{runes: make([]rune, 0, len(s.runes))}
	for _, r := range s.runes {
		if pred(r) {
			out.runes = append(out.runes, r)
		}
	}
	return out
}

// define lists every built-in character set. Order is the order shown to
// users.
var define = []struct {
	name  string
	chars string
}{
	{"symbol1", "#%&?@"},
	{"symbol2", "!#$%&*+-./:=?@~"},
	{"symbol3", "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	{"digit", "0123456789"},
	{"lowerletter", "abcdefghijklmnopqrstuvwxyz"},
	{"upperletter", "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
	{"shell", "!\"$&`'"},
	{"homoglyph1", "71lI|"},
	{"homoglyph2", "2Z"},
	{"homoglyph3", "6G"},
	{"homoglyph4", ":;"},
	{"homoglyph5", "^`'"},
	{"homoglyph6", "!|"},
	{"homoglyph7", "<({[]})>"},
	{"homoglyph8", "~-"},
	{"slashes", "/\\"},
	{"brackets", "[]{}()"},
	{"punctuation", "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	{"all", "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"},
	{"allprint", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	{"allprintnoquote", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!#$%&()*+,-./:;<=>?@[\\]^_`{|}~"},
	{"allprintnospace", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	{"allprintnospacequote", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!#$%&()*+,-./:;<=>?@[\\]^_`{|}~"},
	{"allprintnospacequotebracket", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!#$%&()*+,-./:;<=>?@[\\]^_`{|}~[]{}()"},
	{"allprintnospacequotebracketpunctuation", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!#$%&()*+,-./:;<=>?@[\\]^_`{|}~[]{}()!\"'"},
	{"allprintnospacequotebracketpunctuationslashes", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!#$%&()*+,-.:;<=>?@[\\]^_`{|}~[]{}"},
	{"allprintnospacequotebracketpunctuationslashesshell", "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ#$%&()*+,-.:;<=>?@^_{|}~"},
}

// Registry holds the built-in character sets. It is immutable after
// construction; build it once at startup and pass it by value.
type Registry struct {
	sets  map[string]Set
	order []string
}

// NewRegistry constructs the registry of built-in sets.
func NewRegistry() Registry {
	reg := Registry{sets: make(map[string]Set, len(define))}
	for _, def := range define {
		reg.sets[def.name] = newSet(def.name, def.chars)
		reg.order = append(reg.order, def.name)
	}
	return reg
}

// Lookup returns the set registered under id.
func (reg Registry) Lookup(id string) (Set, bool) {
	s, ok := reg.sets[id]
	return s, ok
}

// Names returns all registered set ids in definition order.
func (reg Registry) Names() []string {
	return append([]string(nil), reg.order...)
}

// Resolve computes the effective set for a request: union of the allowed
// sets, minus excluded graphemes, plus forced graphemes. Forced graphemes are
// always present, even when outside the allowed union or listed as excluded.
//
// The result is rejected with ErrEmptyCharset before any randomness is drawn
// if nothing remains.
func (reg Registry) Resolve(allowed []string, excluded []rune, forced []rune) (Set, error) {
	var effective Set
	for _, id := range allowed {
		s, ok := reg.sets[id]
		if !ok {
			return Set{}, fmt.Errorf("%w: %q", errors.ErrUnknownSet, id)
		}
		effective = effective.Union(s)
	}

	effective = effective.Difference(excluded)

	for _, r := range forced {
		if !effective.Contains(r) {
			effective.runes = append(effective.runes, r)
		}
	}

	if effective.Len() == 0 {
		return Set{}, errors.ErrEmptyCharset
	}
	return effective, nil
}
