// Package random provides uniform index sampling for secret generation.
//
// Two sources are available: an OS-backed source reading crypto/rand, and a
// seeded source for reproducible output. Both draw indices with rejection
// sampling over the smallest covering power of two, so no bound ever suffers
// modulo bias.
//
// The seeded source is NOT suitable for production secrets. It exists for
// tests and reproducible demos only; the default everywhere is the OS source.
package random

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"golang.org/x/crypto/hkdf"
)

// Source yields uniformly distributed indices from a random byte stream.
type Source interface {
	// IntN returns a uniform index in [0, bound). bound must be positive.
	IntN(bound int) (int, error)
}

type readerSource struct {
	r io.Reader
}

// OS returns the default source, backed by the operating system CSPRNG.
func OS() Source {
	return &readerSource{r: rand.Reader}
}

// Seeded returns a deterministic source derived from seed. Output is
// reproducible across runs and platforms. Test and demo use only.
func Seeded(seed uint64) Source {
	return SeededIndex(seed, 0)
}

// SeededIndex returns a deterministic source for the substream identified by
// index. Substreams of the same seed are mutually independent, which lets
// concurrent workers draw reproducibly without sharing a stream.
func SeededIndex(seed uint64, index uint64) Source {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], seed)

	info := fmt.Sprintf("tuatara/v1 substream %d", index)
	kdf := hkdf.New(sha256.New, key[:], nil, []byte(info))

	var streamKey [32]byte
	// The HKDF output length is far below the RFC 5869 limit; Read cannot fail.
	if _, err := io.ReadFull(kdf, streamKey[:]); err != nil {
		panic(fmt.Sprintf("hkdf expand failed: %v", err))
	}

	return &readerSource{r: &keystream{key: streamKey}}
}

// IntN draws a uniform index in [0, bound) by rejection sampling: read just
// enough bits to cover bound, mask, and retry until the value lands inside.
func (s *readerSource) IntN(bound int) (int, error) {
	if bound <= 0 {
		return 0, fmt.Errorf("random: bound must be positive, got %d", bound)
	}
	if bound == 1 {
		return 0, nil
	}

	bitLen := bits.Len(uint(bound - 1))
	byteLen := (bitLen + 7) / 8
	mask := uint64(1)<<bitLen - 1

	buf := make([]byte, byteLen)
	for {
		if _, err := io.ReadFull(s.r, buf); err != nil {
			return 0, fmt.Errorf("random: failed to read entropy: %w", err)
		}
		var v uint64
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
		v &= mask
		if v < uint64(bound) {
			return int(v), nil
		}
	}
}

// keystream produces an unlimited deterministic byte stream by hashing a
// 32-byte key with an incrementing block counter.
type keystream struct {
	key     [32]byte
	counter uint64
	buf     []byte
}

func (k *keystream) Read(p []byte) (int, error) {
	for len(k.buf) < len(p) {
		var block [40]byte
		copy(block[:32], k.key[:])
		binary.BigEndian.PutUint64(block[32:], k.counter)
		k.counter++
		sum := sha256.Sum256(block[:])
		k.buf = append(k.buf, sum[:]...)
	}
	n := copy(p, k.buf)
	k.buf = k.buf[n:]
	return n, nil
}
