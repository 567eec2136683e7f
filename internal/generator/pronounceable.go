package generator

import (
	"math"

	"github.com/PolarWolf314/tuatara/internal/random"
	"github.com/PolarWolf314/tuatara/internal/secure"
)

// Phonetic classes for pronounceable generation. The reduced alphabets cap
// entropy per grapheme in exchange for readability; the strength estimate
// below reflects the reduced sizes, never the full printable alphabet.
var (
	pronounceConsonants = []rune("bcdfghjklmnpqrstvwxyz")
	pronounceVowels     = []rune("aeiou")
)

// generatePronounceable runs a two-state consonant/vowel machine. By default
// the states alternate strictly; a positive Looseness N gives every step a
// 1-in-N chance of repeating the previous class, which breaks the purely
// mechanical cadence.
func generatePronounceable(src random.Source, req Request) (*Secret, error) {
	out := make([]rune, 0, req.Length)
	bits := 0.0
	consonant := true

	for i := 0; i < req.Length; i++ {
		class := pronounceVowels
		if consonant {
			class = pronounceConsonants
		}
		idx, err := src.IntN(len(class))
		if err != nil {
			return nil, err
		}
		out = append(out, class[idx])
		bits += math.Log2(float64(len(class)))

		flip := true
		if req.Looseness > 0 {
			stay, err := src.IntN(req.Looseness)
			if err != nil {
				return nil, err
			}
			flip = stay != 0
		}
		if flip {
			consonant = !consonant
		}
	}

	sec := &Secret{Value: secure.FromRunes(out), EntropyBits: bits, Mode: ModePronounceable}
	zeroRunes(out)
	return sec, nil
}
