// Package strength estimates entropy and classifies secret strength.
package strength

import (
	"math"
	"strings"

	"github.com/PolarWolf314/tuatara/internal/generator"
)

// Category buckets an entropy estimate.
type Category int

const (
	Weak Category = iota
	Moderate
	Strong
	VeryStrong
)

func (c Category) String() string {
	switch c {
	case Weak:
		return "weak"
	case Moderate:
		return "moderate"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very-strong"
	default:
		return "unknown"
	}
}

// Report is the outcome of scoring one secret.
type Report struct {
	EntropyBits float64
	Category    Category
	Suggestions []string
}

// Classify maps entropy bits to a category: <28 weak, 28-59 moderate,
// 60-127 strong, 128+ very strong.
func Classify(bits float64) Category {
	switch {
	case bits < 28:
		return Weak
	case bits < 60:
		return Moderate
	case bits < 128:
		return Strong
	default:
		return VeryStrong
	}
}

// Evaluate scores a generated secret. Suggestions are emitted for weak and
// moderate results only, in a deterministic order.
func Evaluate(sec *generator.Secret) Report {
	report := Report{
		EntropyBits: sec.EntropyBits,
		Category:    Classify(sec.EntropyBits),
	}
	if report.Category >= Strong {
		return report
	}

	switch sec.Mode {
	case generator.ModeDiceware:
		report.Suggestions = append(report.Suggestions,
			"add more words to the passphrase",
			"avoid reusing a passphrase drawn from a single public wordlist",
		)
	case generator.ModePronounceable:
		report.Suggestions = append(report.Suggestions,
			"increase the length",
			"prefer character or diceware mode when maximum strength matters",
		)
	default:
		report.Suggestions = append(report.Suggestions,
			"increase the length",
			"broaden the allowed character classes",
		)
	}
	return report
}

// Observed estimates the strength of an arbitrary value from its visible
// character classes, with penalties for sequential runs, triple repeats,
// and well-known words.
func Observed(value string) Report {
	length := len([]rune(value))
	if length == 0 {
		return Report{Category: Weak, Suggestions: []string{"increase the length"}}
	}

	classes := observedClasses(value)
	alphabet := 0
	for _, size := range classes {
		alphabet += size
	}

	bits := float64(length) * math.Log2(float64(alphabet))
	if hasSequentialRun(value) {
		bits *= 0.8
	}
	if hasTripleRepeat(value) {
		bits *= 0.9
	}
	if containsCommonWord(value) {
		bits *= 0.7
	}

	report := Report{EntropyBits: bits, Category: Classify(bits)}
	if report.Category >= Strong {
		return report
	}

	report.Suggestions = append(report.Suggestions, "increase the length")
	if len(classes) < 3 {
		report.Suggestions = append(report.Suggestions, "mix more character classes")
	}
	if containsCommonWord(value) {
		report.Suggestions = append(report.Suggestions, "avoid common words and keyboard sequences")
	}
	return report
}

// observedClasses returns the alphabet size of each character class present.
func observedClasses(value string) map[rune]int {
	classes := make(map[rune]int)
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			classes['a'] = 26
		case r >= 'A' && r <= 'Z':
			classes['A'] = 26
		case r >= '0' && r <= '9':
			classes['0'] = 10
		default:
			classes['!'] = 33
		}
	}
	return classes
}

func hasSequentialRun(value string) bool {
	runes := []rune(value)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i]+1 == runes[i+1] && runes[i+1]+1 == runes[i+2] {
			return true
		}
	}
	return false
}

func hasTripleRepeat(value string) bool {
	runes := []rune(value)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			return true
		}
	}
	return false
}

var commonWords = []string{"password", "123456", "qwerty", "admin", "letmein"}

func containsCommonWord(value string) bool {
	lower := strings.ToLower(value)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
