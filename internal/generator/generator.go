// Package generator turns a resolved generation request into secrets.
//
// A Request selects one of four modes: character (draw every position from
// one effective set), pattern (per-position sets from a compiled template),
// diceware (whole words from a verified wordlist), and pronounceable
// (alternating phonetic classes). Validation happens in full before any
// randomness is drawn, and generation is all-or-nothing per secret.
package generator

import (
	"context"
	"fmt"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
	logger "github.com/PolarWolf314/tuatara/internal/logging"
	"github.com/PolarWolf314/tuatara/internal/pattern"
	"github.com/PolarWolf314/tuatara/internal/random"
	"github.com/PolarWolf314/tuatara/internal/secure"
	"github.com/PolarWolf314/tuatara/internal/wordlist"
)

// Mode selects the generation strategy.
type Mode int

const (
	ModeCharacter Mode = iota
	ModePattern
	ModeDiceware
	ModePronounceable
)

func (m Mode) String() string {
	switch m {
	case ModeCharacter:
		return "character"
	case ModePattern:
		return "pattern"
	case ModeDiceware:
		return "diceware"
	case ModePronounceable:
		return "pronounceable"
	default:
		return "unknown"
	}
}

// SeparatorKind distinguishes a fixed separator grapheme from one drawn
// fresh for every gap.
type SeparatorKind int

const (
	SeparatorFixed SeparatorKind = iota
	SeparatorRandom
)

// Separator describes how diceware words are joined.
type Separator struct {
	Kind     SeparatorKind
	Grapheme rune // meaningful for SeparatorFixed only
}

// ParseSeparator accepts either the literal "random" or a single grapheme.
func ParseSeparator(value string) (*Separator, error) {
	if value == "random" {
		return &Separator{Kind: SeparatorRandom}, nil
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		return &Separator{Kind: SeparatorFixed, Grapheme: r}, nil
	}
	return nil, fmt.Errorf("%w: got %q", errors.ErrInvalidSeparator, value)
}

// DefaultAllowed is the character-mode set selection used when a request
// names no sets.
var DefaultAllowed = []string{"digit", "lowerletter", "upperletter", "symbol1", "symbol2"}

// Request is a fully resolved generation request. The calling layer is
// responsible for flag parsing and profile merging; the engine only
// validates and generates.
type Request struct {
	Mode        Mode
	Length      int // graphemes per secret, or words per passphrase
	Count       int
	Allowed     []string
	Excluded    []rune
	Forced      []rune
	AvoidRepeat bool
	Separator   *Separator
	Pattern     string
	Looseness   int // pronounceable: 1-in-N chance to repeat a class; 0 = strict

	// Seed switches every draw to the deterministic source. Test and demo
	// use only, never for production secrets.
	Seed *uint64
}

// Secret is one generated value with its entropy estimate. Call Value.Zero
// once the secret has been printed or handed off.
type Secret struct {
	Value       secure.Secret
	EntropyBits float64
	Mode        Mode
}

// Engine generates secrets against an immutable charset registry.
type Engine struct {
	Registry charset.Registry
	Words    *wordlist.List // required for diceware mode
	Log      logger.Logger
}

// New returns an Engine over the given registry.
func New(reg charset.Registry, log logger.Logger) *Engine {
	return &Engine{Registry: reg, Log: log}
}

// maxWorkers bounds the pool used when generating several secrets at once.
const maxWorkers = 4

// plan carries everything resolved during validation so that generation
// itself cannot fail a precondition halfway through.
type plan struct {
	effective charset.Set
	compiled  pattern.Compiled
	separator Separator
	sepSet    charset.Set
}

// Generate validates req and produces req.Count secrets. With count > 1 the
// secrets are generated on a bounded worker pool; each secret's draws stay
// sequential, and a seeded request derives an independent substream per
// index so concurrency never reorders entropy.
func (e *Engine) Generate(ctx context.Context, req Request) ([]*Secret, error) {
	pl, err := e.plan(req)
	if err != nil {
		return nil, err
	}

	if req.Count == 1 {
		sec, err := e.generateOne(pl, req, 0)
		if err != nil {
			return nil, err
		}
		return []*Secret{sec}, nil
	}

	results := make([]*Secret, req.Count)
	sem := make(chan struct{}, maxWorkers)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := 0; i < req.Count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			sec, err := e.generateOne(pl, req, i)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			results[i] = sec
		}(i)
	}
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		// All-or-nothing: drop and zero anything produced before the failure.
		for _, sec := range results {
			if sec != nil {
				sec.Value.Zero()
			}
		}
		return nil, firstErr
	}
	return results, nil
}

func (e *Engine) plan(req Request) (plan, error) {
	if req.Count < 1 {
		return plan{}, fmt.Errorf("%w: count must be at least 1", errors.ErrInvalidRequest)
	}
	if req.Length < 1 && req.Mode != ModePattern {
		return plan{}, fmt.Errorf("%w: length must be at least 1", errors.ErrInvalidRequest)
	}

	switch req.Mode {
	case ModeCharacter:
		allowed := req.Allowed
		if len(allowed) == 0 {
			allowed = DefaultAllowed
		}
		effective, err := e.Registry.Resolve(allowed, req.Excluded, req.Forced)
		if err != nil {
			return plan{}, err
		}
		if req.AvoidRepeat && req.Length > effective.Len() {
			return plan{}, fmt.Errorf("%w: need %d, have %d", errors.ErrInsufficientUnique, req.Length, effective.Len())
		}
		return plan{effective: effective}, nil

	case ModePattern:
		if req.Pattern == "" {
			return plan{}, fmt.Errorf("%w: pattern mode requires a template", errors.ErrInvalidRequest)
		}
		compiled, err := pattern.Compile(req.Pattern, e.Registry, req.Excluded, req.Forced)
		if err != nil {
			return plan{}, err
		}
		return plan{compiled: compiled}, nil

	case ModeDiceware:
		if e.Words == nil || e.Words.Len() == 0 {
			return plan{}, fmt.Errorf("%w: no wordlist loaded", errors.ErrInvalidRequest)
		}
		sep := Separator{Kind: SeparatorFixed, Grapheme: ' '}
		if req.Separator != nil {
			sep = *req.Separator
		}
		pl := plan{separator: sep}
		if sep.Kind == SeparatorRandom {
			sepSet, err := e.Registry.Resolve([]string{"symbol1"}, nil, nil)
			if err != nil {
				return plan{}, err
			}
			pl.sepSet = sepSet
		}
		return pl, nil

	case ModePronounceable:
		if req.Looseness < 0 {
			return plan{}, fmt.Errorf("%w: looseness cannot be negative", errors.ErrInvalidRequest)
		}
		return plan{}, nil

	default:
		return plan{}, fmt.Errorf("%w: unknown mode %d", errors.ErrInvalidRequest, req.Mode)
	}
}

func (e *Engine) source(req Request, index int) random.Source {
	if req.Seed != nil {
		return random.SeededIndex(*req.Seed, uint64(index))
	}
	return random.OS()
}

func (e *Engine) generateOne(pl plan, req Request, index int) (*Secret, error) {
	src := e.source(req, index)
	switch req.Mode {
	case ModeCharacter:
		return generateCharacter(src, pl.effective, req)
	case ModePattern:
		return generatePattern(src, pl.compiled, req)
	case ModeDiceware:
		return e.generateDiceware(src, pl, req)
	default:
		return generatePronounceable(src, req)
	}
}

// generateCharacter draws every position independently from the effective
// set. Avoid-repeat narrows a per-secret working set as graphemes are used.
func generateCharacter(src random.Source, effective charset.Set, req Request) (*Secret, error) {
	working := effective
	out := make([]rune, 0, req.Length)
	bits := 0.0

	for i := 0; i < req.Length; i++ {
		idx, err := src.IntN(working.Len())
		if err != nil {
			return nil, err
		}
		r := working.At(idx)
		out = append(out, r)
		bits += math.Log2(float64(working.Len()))
		if req.AvoidRepeat {
			working = working.Difference([]rune{r})
		}
	}

	sec := &Secret{Value: secure.FromRunes(out), EntropyBits: bits, Mode: ModeCharacter}
	zeroRunes(out)
	return sec, nil
}

// generatePattern draws each position from its compiled class set.
func generatePattern(src random.Source, compiled pattern.Compiled, req Request) (*Secret, error) {
	used := []rune(nil)
	out := make([]rune, 0, compiled.Length())
	bits := 0.0

	for _, pos := range compiled.Positions {
		working := pos
		if req.AvoidRepeat {
			working = working.Difference(used)
			if working.Len() == 0 {
				return nil, fmt.Errorf("%w: pattern position exhausted", errors.ErrInsufficientUnique)
			}
		}
		idx, err := src.IntN(working.Len())
		if err != nil {
			return nil, err
		}
		r := working.At(idx)
		out = append(out, r)
		bits += math.Log2(float64(working.Len()))
		if req.AvoidRepeat {
			used = append(used, r)
		}
	}

	sec := &Secret{Value: secure.FromRunes(out), EntropyBits: bits, Mode: ModePattern}
	zeroRunes(out)
	return sec, nil
}

func zeroRunes(rs []rune) {
	for i := range rs {
		rs[i] = 0
	}
}
