// Package mutate applies deterministic, seedable edit operations to an
// existing secret.
package mutate

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
	logger "github.com/PolarWolf314/tuatara/internal/logging"
	"github.com/PolarWolf314/tuatara/internal/random"
	"github.com/PolarWolf314/tuatara/internal/secure"
)

// Op is a mutation operation kind.
type Op int

const (
	// OpReplace swaps one grapheme for another from its inferred class.
	OpReplace Op = iota
	// OpSwap exchanges two adjacent graphemes.
	OpSwap
	// OpInsert places one random grapheme at a random position.
	OpInsert
	// OpLengthen appends graphemes drawn from the original generation set.
	OpLengthen
)

func (o Op) String() string {
	switch o {
	case OpReplace:
		return "replace"
	case OpSwap:
		return "swap"
	case OpInsert:
		return "insert"
	case OpLengthen:
		return "lengthen"
	default:
		return "unknown"
	}
}

// ParseOp parses an operation name.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(s) {
	case "replace":
		return OpReplace, nil
	case "swap":
		return OpSwap, nil
	case "insert":
		return OpInsert, nil
	case "lengthen":
		return OpLengthen, nil
	default:
		return 0, fmt.Errorf("%w: unknown mutation operation %q", errors.ErrInvalidRequest, s)
	}
}

// Spec describes one mutation run.
type Spec struct {
	Op       Op
	Strength int // number of sequential edits; each edit is applied, never skipped
	Increase int // graphemes appended per lengthen edit (default 1)

	// Seed makes the full edit sequence reproducible. Test and demo use only.
	Seed *uint64
}

// Engine mutates secrets against a charset registry. Base, when set, is the
// effective set the input was generated from; insert and lengthen draw from
// it, and replace falls back to it before the full printable set.
type Engine struct {
	Registry charset.Registry
	Base     charset.Set
	Log      logger.Logger
}

// New returns a mutation engine over the given registry.
func New(reg charset.Registry, log logger.Logger) *Engine {
	return &Engine{Registry: reg, Log: log}
}

// Mutate applies spec.Strength sequential edits to value and returns the
// result. Identical (value, spec, seed) triples always produce identical
// output.
func (e *Engine) Mutate(value string, spec Spec) (secure.Secret, error) {
	if value == "" {
		return nil, errors.ErrEmptyInput
	}
	if spec.Strength < 1 {
		return nil, fmt.Errorf("%w: mutation strength must be at least 1", errors.ErrInvalidRequest)
	}
	increase := spec.Increase
	if increase < 1 {
		increase = 1
	}

	var src random.Source
	if spec.Seed != nil {
		src = random.Seeded(*spec.Seed)
	} else {
		src = random.OS()
	}

	runes := []rune(value)
	for edit := 0; edit < spec.Strength; edit++ {
		var err error
		switch spec.Op {
		case OpReplace:
			err = e.replace(src, runes)
		case OpSwap:
			err = e.swap(src, runes)
		case OpInsert:
			runes, err = e.insert(src, runes)
		case OpLengthen:
			runes, err = e.lengthen(src, runes, increase)
		default:
			err = fmt.Errorf("%w: unknown mutation operation %d", errors.ErrInvalidRequest, spec.Op)
		}
		if err != nil {
			zeroRunes(runes)
			return nil, err
		}
	}

	out := secure.FromRunes(runes)
	zeroRunes(runes)
	return out, nil
}

// replace redraws one grapheme from its inferred class, never reproducing
// the original grapheme.
func (e *Engine) replace(src random.Source, runes []rune) error {
	idx, err := src.IntN(len(runes))
	if err != nil {
		return err
	}
	pool := e.classOf(runes[idx]).Difference([]rune{runes[idx]})
	if pool.Len() == 0 {
		pool = e.fallback().Difference([]rune{runes[idx]})
	}
	pick, err := src.IntN(pool.Len())
	if err != nil {
		return err
	}
	runes[idx] = pool.At(pick)
	return nil
}

func (e *Engine) swap(src random.Source, runes []rune) error {
	if len(runes) < 2 {
		return fmt.Errorf("%w: secret too short to swap", errors.ErrInvalidRequest)
	}
	idx, err := src.IntN(len(runes) - 1)
	if err != nil {
		return err
	}
	runes[idx], runes[idx+1] = runes[idx+1], runes[idx]
	return nil
}

func (e *Engine) insert(src random.Source, runes []rune) ([]rune, error) {
	pos, err := src.IntN(len(runes) + 1)
	if err != nil {
		return runes, err
	}
	pool := e.base()
	pick, err := src.IntN(pool.Len())
	if err != nil {
		return runes, err
	}
	runes = append(runes, 0)
	copy(runes[pos+1:], runes[pos:])
	runes[pos] = pool.At(pick)
	return runes, nil
}

func (e *Engine) lengthen(src random.Source, runes []rune, increase int) ([]rune, error) {
	pool := e.base()
	for i := 0; i < increase; i++ {
		pick, err := src.IntN(pool.Len())
		if err != nil {
			return runes, err
		}
		runes = append(runes, pool.At(pick))
	}
	return runes, nil
}

// classOf guesses the class a grapheme was generated from.
func (e *Engine) classOf(r rune) charset.Set {
	for _, id := range []string{"digit", "lowerletter", "upperletter", "punctuation"} {
		if set, ok := e.Registry.Lookup(id); ok && set.Contains(r) {
			return set
		}
	}
	return e.fallback()
}

func (e *Engine) base() charset.Set {
	if e.Base.Len() > 0 {
		return e.Base
	}
	return e.fallback()
}

func (e *Engine) fallback() charset.Set {
	all, _ := e.Registry.Lookup("allprint")
	return all
}

func zeroRunes(rs []rune) {
	for i := range rs {
		rs[i] = 0
	}
}
