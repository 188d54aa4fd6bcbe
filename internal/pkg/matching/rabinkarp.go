package matching

import (
	"math/bits"

	"github.com/endorses/patmatch/internal/pkg/constants"
	"github.com/endorses/patmatch/internal/pkg/simd"
)

// RollingHash is a polynomial fingerprint over a fixed-length window:
//
//	h(s[0..w)) = s[0]*base^(w-1) + s[1]*base^(w-2) + ... + s[w-1]  (mod modulus)
//
// Sliding the window by one byte is O(1) via Roll.
type RollingHash struct {
	base    uint64
	modulus uint64
	window  int

	// pow is base^(window-1) mod modulus, the weight of the outgoing byte.
	pow uint64
}

// NewRollingHash returns a rolling hash for windows of the given length. A zero
// base or modulus selects constants.DefaultHashBase or constants.LargePrime.
func NewRollingHash(base, modulus uint64, window int) *RollingHash {
	if base == 0 {
		base = constants.DefaultHashBase
	}
	if modulus == 0 {
		modulus = constants.LargePrime
	}

	h := &RollingHash{
		base:    base % modulus,
		modulus: modulus,
		window:  window,
	}

	pow := uint64(1) % modulus
	for i := 1; i < window; i++ {
		pow = mulMod(pow, h.base, modulus)
	}
	h.pow = pow
	return h
}

// Window returns the window length the hash was built for.
func (h *RollingHash) Window() int {
	return h.window
}

// Hash fingerprints the first length bytes of seq.
func (h *RollingHash) Hash(seq []byte, length int) uint64 {
	var sum uint64
	for i := 0; i < length && i < len(seq); i++ {
		sum = (mulMod(sum, h.base, h.modulus) + uint64(seq[i])%h.modulus) % h.modulus
	}
	return sum
}

// Roll drops outgoing from the front of the window hashed as old and appends
// incoming at the back.
func (h *RollingHash) Roll(old uint64, outgoing, incoming byte) uint64 {
	drop := mulMod(uint64(outgoing)%h.modulus, h.pow, h.modulus)
	old = (old + h.modulus - drop) % h.modulus
	return (mulMod(old, h.base, h.modulus) + uint64(incoming)%h.modulus) % h.modulus
}

// mulMod returns a*b mod m without overflow. a and b must already be < m.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// RabinKarp is a pattern compiled for Rabin-Karp search.
type RabinKarp struct {
	pattern     []byte
	hash        *RollingHash
	patternHash uint64
}

// RabinKarpOption configures a RabinKarp matcher.
type RabinKarpOption func(*rabinKarpOptions)

type rabinKarpOptions struct {
	base    uint64
	modulus uint64
}

// WithHash overrides the base and modulus of the rolling hash. Small moduli
// are valid; they only increase the number of verified collisions.
func WithHash(base, modulus uint64) RabinKarpOption {
	return func(o *rabinKarpOptions) {
		o.base = base
		o.modulus = modulus
	}
}

// NewRabinKarp copies pattern and fingerprints it.
func NewRabinKarp(pattern []byte, opts ...RabinKarpOption) *RabinKarp {
	o := rabinKarpOptions{
		base:    constants.DefaultHashBase,
		modulus: constants.LargePrime,
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := append([]byte(nil), pattern...)
	h := NewRollingHash(o.base, o.modulus, len(p))
	return &RabinKarp{
		pattern:     p,
		hash:        h,
		patternHash: h.Hash(p, len(p)),
	}
}

// Search returns every start offset of the compiled pattern in text. Equal
// fingerprints are always confirmed byte for byte before being reported.
func (rk *RabinKarp) Search(text []byte) []int {
	n, m := len(text), len(rk.pattern)
	if !searchable(n, m) {
		return nil
	}

	var positions []int
	windowHash := rk.hash.Hash(text, m)
	for i := 0; i <= n-m; i++ {
		if windowHash == rk.patternHash && simd.BytesEqual(text[i:i+m], rk.pattern) {
			positions = append(positions, i)
		}
		if i < n-m {
			windowHash = rk.hash.Roll(windowHash, text[i], text[i+m])
		}
	}
	return positions
}

// SearchRabinKarp fingerprints pattern with the default hash and scans text.
func SearchRabinKarp(text, pattern []byte) []int {
	return NewRabinKarp(pattern).Search(text)
}
