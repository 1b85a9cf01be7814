package shortcode

import (
	"fmt"
	"unicode/utf8"
)

// Preset alphabets.
const (
	// Base62Alphabet is the default primary alphabet: a-z, A-Z, 0-9.
	Base62Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Shuffled62Alphabet is the default secondary alphabet. It is a fixed
	// permutation of Base62Alphabet and must never change, otherwise codes
	// issued under it stop decoding to the same values.
	Shuffled62Alphabet = "GwdAtHJ0PoWC63yK8Lu7XEOaeq19DcFxZ5MTNlzrisjhB4bIfVYQgnS2mUkpvR"

	// Base58Alphabet is the Bitcoin alphabet which excludes 0, O, I, and l.
	Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

	// Crockford32Alphabet is the lowercase Crockford base32 digit set,
	// which excludes i, l, o and u.
	Crockford32Alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

	// Base36Alphabet is digits followed by lowercase letters.
	Base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	Base62      = MustAlphabet(Base62Alphabet)
	Shuffled62  = MustAlphabet(Shuffled62Alphabet)
	Base58      = MustAlphabet(Base58Alphabet)
	Crockford32 = MustAlphabet(Crockford32Alphabet)
	Base36      = MustAlphabet(Base36Alphabet)
)

var presets = map[string]*Alphabet{
	"base62":      Base62,
	"shuffled62":  Shuffled62,
	"base58":      Base58,
	"crockford32": Crockford32,
	"base36":      Base36,
}

// Preset returns a named preset alphabet.
func Preset(name string) (*Alphabet, bool) {
	a, ok := presets[name]
	return a, ok
}

// PresetNames returns the preset names in a stable order.
func PresetNames() []string {
	return []string{"base62", "shuffled62", "base58", "crockford32", "base36"}
}

// Alphabet is an ordered set of distinct symbols. A symbol's position is
// its digit value. Each symbol is a single Unicode code point.
type Alphabet struct {
	s       string
	symbols []rune
	ascii   [utf8.RuneSelf]int32
	other   map[rune]int
}

// NewAlphabet validates s and builds its symbol lookup tables.
// s must be valid UTF-8 and contain at least two distinct code points.
func NewAlphabet(s string) (*Alphabet, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidAlphabet
	}
	symbols := []rune(s)
	if len(symbols) < 2 {
		return nil, fmt.Errorf("%w: got %d symbols", ErrAlphabetTooShort, len(symbols))
	}

	a := &Alphabet{s: s, symbols: symbols}
	for i := range a.ascii {
		a.ascii[i] = -1
	}
	for i, r := range symbols {
		if _, dup := a.Index(r); dup {
			return nil, fmt.Errorf("%w: %q at position %d", ErrDuplicateSymbol, r, i)
		}
		if r < utf8.RuneSelf {
			a.ascii[r] = int32(i)
			continue
		}
		if a.other == nil {
			a.other = make(map[rune]int)
		}
		a.other[r] = i
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on an invalid alphabet.
func MustAlphabet(s string) *Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols, which is the base.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

func (a *Alphabet) String() string {
	return a.s
}

// Symbol returns the symbol for digit value i.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// Index returns the digit value of r.
func (a *Alphabet) Index(r rune) (int, bool) {
	if r >= 0 && r < utf8.RuneSelf {
		i := a.ascii[r]
		return int(i), i >= 0
	}
	i, ok := a.other[r]
	return i, ok
}

// Contains reports whether r is one of the alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.Index(r)
	return ok
}

// Equal reports whether both alphabets hold the same symbols in the same order.
func (a *Alphabet) Equal(b *Alphabet) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.s == b.s
}
