package generator

import (
	"math"
	"strings"

	"github.com/PolarWolf314/tuatara/internal/random"
	"github.com/PolarWolf314/tuatara/internal/secure"
)

// generateDiceware assembles a passphrase of req.Length words. Each word is
// a uniform draw over the whole list; with a random separator, the joining
// symbol is drawn fresh for every gap, never reused.
func (e *Engine) generateDiceware(src random.Source, pl plan, req Request) (*Secret, error) {
	var b strings.Builder
	for i := 0; i < req.Length; i++ {
		if i > 0 {
			sep, err := e.drawSeparator(src, pl)
			if err != nil {
				return nil, err
			}
			b.WriteRune(sep)
		}
		idx, err := src.IntN(e.Words.Len())
		if err != nil {
			return nil, err
		}
		b.WriteString(e.Words.Word(idx))
	}

	bits := float64(req.Length) * math.Log2(float64(e.Words.Len()))
	return &Secret{
		Value:       secure.FromString(b.String()),
		EntropyBits: bits,
		Mode:        ModeDiceware,
	}, nil
}

func (e *Engine) drawSeparator(src random.Source, pl plan) (rune, error) {
	if pl.separator.Kind == SeparatorFixed {
		return pl.separator.Grapheme, nil
	}
	idx, err := src.IntN(pl.sepSet.Len())
	if err != nil {
		return 0, err
	}
	return pl.sepSet.At(idx), nil
}
