// Package pattern compiles secret templates into per-position character sets.
//
// Each template token names a semantic class:
//
//	L l  letter (upper or lower)
//	U u  upper-case letter
//	D d  digit
//	S s  symbol
//	A a  letter or digit
//	X x  any printable character
//
// Every position draws independently from its class's set, so "LLDDS" yields
// two letters, two digits, and one symbol.
package pattern

import (
	"fmt"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/errors"
)

// Compiled is the ordered list of per-position sets for a template.
type Compiled struct {
	Template  string
	Positions []charset.Set
}

// Length returns the number of positions in the compiled pattern.
func (c Compiled) Length() int { return len(c.Positions) }

// classSets resolves the class alphabets once per compilation.
type classSets struct {
	letter charset.Set
	upper  charset.Set
	digit  charset.Set
	symbol charset.Set
	alnum  charset.Set
	any    charset.Set
}

func resolveClasses(reg charset.Registry) classSets {
	lower, _ := reg.Lookup("lowerletter")
	upper, _ := reg.Lookup("upperletter")
	digit, _ := reg.Lookup("digit")
	symbol, _ := reg.Lookup("punctuation")
	all, _ := reg.Lookup("allprint")

	letter := lower.Union(upper)
	return classSets{
		letter: letter,
		upper:  upper,
		digit:  digit,
		symbol: symbol,
		alnum:  letter.Union(digit),
		any:    all,
	}
}

// Compile maps the template to per-position sets, applying the request's
// excluded graphemes to every position. It fails with ErrUnknownToken for an
// unrecognized template character and ErrEmptyClass when exclusions leave a
// position with nothing to draw from.
//
// Forced-include graphemes must be drawable somewhere: Compile rejects a
// forced grapheme that no position's set contains.
func Compile(template string, reg charset.Registry, excluded []rune, forced []rune) (Compiled, error) {
	classes := resolveClasses(reg)

	compiled := Compiled{Template: template}
	for _, token := range template {
		var class charset.Set
		switch token {
		case 'L', 'l':
			class = classes.letter
		case 'U', 'u':
			class = classes.upper
		case 'D', 'd':
			class = classes.digit
		case 'S', 's':
			class = classes.symbol
		case 'A', 'a':
			class = classes.alnum
		case 'X', 'x':
			class = classes.any
		default:
			return Compiled{}, fmt.Errorf("%w: %q", errors.ErrUnknownToken, token)
		}

		class = class.Difference(excluded)
		if class.Len() == 0 {
			return Compiled{}, fmt.Errorf("%w: token %q", errors.ErrEmptyClass, token)
		}
		compiled.Positions = append(compiled.Positions, class)
	}

	for _, r := range forced {
		drawable := false
		for _, pos := range compiled.Positions {
			if pos.Contains(r) {
				drawable = true
				break
			}
		}
		if !drawable {
			return Compiled{}, fmt.Errorf("%w: forced character %q fits no pattern position", errors.ErrInvalidRequest, r)
		}
	}

	return compiled, nil
}
