// Package shortcode maps non-negative integers to short codes over a
// configurable alphabet and back. The mapping is plain positional
// notation: the integer (plus an optional offset) is written in base N,
// where N is the number of symbols in the active alphabet.
package shortcode

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"
)

// Codec encodes and decodes short codes. A Codec is immutable; the With*
// methods return a modified copy, so a single Codec may be shared freely.
type Codec struct {
	primary      *Alphabet
	secondary    *Alphabet
	useSecondary bool
	offset       int64
	strict       bool
}

// New returns a Codec for cfg. Empty alphabets select the defaults.
func New(cfg Config) (*Codec, error) {
	c := &Codec{
		primary:      Base62,
		secondary:    Shuffled62,
		useSecondary: cfg.UseSecondary,
		offset:       cfg.Offset,
		strict:       cfg.Strict,
	}
	if cfg.Alphabet != "" {
		a, err := NewAlphabet(cfg.Alphabet)
		if err != nil {
			return nil, err
		}
		c.primary = a
	}
	if cfg.SecondaryAlphabet != "" {
		a, err := NewAlphabet(cfg.SecondaryAlphabet)
		if err != nil {
			return nil, fmt.Errorf("secondary: %w", err)
		}
		c.secondary = a
	}
	return c, nil
}

// Default returns a Codec with the default alphabets and no offset.
func Default() *Codec {
	return &Codec{primary: Base62, secondary: Shuffled62}
}

// Must panics if err is not nil
func Must(c *Codec, err error) *Codec {
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec) clone() *Codec {
	cp := *c
	return &cp
}

// WithAlphabet returns a copy of c with the primary alphabet replaced.
func (c *Codec) WithAlphabet(s string) (*Codec, error) {
	a, err := NewAlphabet(s)
	if err != nil {
		return nil, err
	}
	cp := c.clone()
	cp.primary = a
	return cp, nil
}

// WithSecondaryAlphabet returns a copy of c with the secondary alphabet replaced.
func (c *Codec) WithSecondaryAlphabet(s string) (*Codec, error) {
	a, err := NewAlphabet(s)
	if err != nil {
		return nil, fmt.Errorf("secondary: %w", err)
	}
	cp := c.clone()
	cp.secondary = a
	return cp, nil
}

// UseSecondary returns a copy of c with the secondary alphabet active
// (or inactive). The offset is unchanged.
func (c *Codec) UseSecondary(on bool) *Codec {
	cp := c.clone()
	cp.useSecondary = on
	return cp
}

// WithOffset returns a copy of c using the given offset. Negative offsets
// are allowed; values that fall below zero after applying them are
// rejected by Encode and Decode.
func (c *Codec) WithOffset(offset int64) *Codec {
	cp := c.clone()
	cp.offset = offset
	return cp
}

// WithStrict returns a copy of c that rejects codes with a leading zero
// symbol when decoding.
func (c *Codec) WithStrict(on bool) *Codec {
	cp := c.clone()
	cp.strict = on
	return cp
}

// Alphabet returns the active alphabet.
func (c *Codec) Alphabet() *Alphabet {
	if c.useSecondary {
		return c.secondary
	}
	return c.primary
}

func (c *Codec) Base() int {
	return c.Alphabet().Len()
}

func (c *Codec) Offset() int64 {
	return c.offset
}

// Config returns the configuration c was built from.
func (c *Codec) Config() Config {
	return Config{
		Alphabet:          c.primary.String(),
		SecondaryAlphabet: c.secondary.String(),
		UseSecondary:      c.useSecondary,
		Offset:            c.offset,
		Strict:            c.strict,
	}
}

// Encode returns the short code for value. It fails with ErrInvalidInput
// if value or value + offset is negative, and with ErrOverflow if
// value + offset does not fit in an int64.
func (c *Codec) Encode(value int64) (string, error) {
	if value < 0 {
		return "", c.invalidInput(strconv.FormatInt(value, 10))
	}
	n := value + c.offset
	if c.offset > 0 && n < value {
		return "", fmt.Errorf("%w: %d + %d", ErrOverflow, value, c.offset)
	}
	if n < 0 {
		return "", c.invalidInput(strconv.FormatInt(value, 10))
	}

	a := c.Alphabet()
	if n == 0 {
		return string(a.Symbol(0)), nil
	}
	base := int64(a.Len())
	var buf [63]rune // base 2 needs at most 63 digits for an int64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = a.Symbol(int(n % base))
		n /= base
	}
	return string(buf[i:]), nil
}

// MustEncode is like Encode but panics on error.
func (c *Codec) MustEncode(value int64) string {
	s, err := c.Encode(value)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode returns the value encoded by s. Every symbol of s must belong to
// the active alphabet (ErrInvalidCharacter), the result must fit in an
// int64 (ErrOverflow) and must not be negative once the offset is
// subtracted (ErrNegativeResult).
func (c *Codec) Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrEmptyString
	}
	a := c.Alphabet()
	base := int64(a.Len())

	var n int64
	pos := 0
	for i := 0; i < len(s); pos++ {
		r, size := utf8.DecodeRuneInString(s[i:])
		d, ok := a.Index(r)
		if !ok || (r == utf8.RuneError && size == 1) {
			return 0, &InvalidCharacterError{Symbol: r, Pos: pos, Input: s}
		}
		if c.strict && i == 0 && d == 0 && len(s) > size {
			return 0, fmt.Errorf("%w: %q", ErrNonCanonical, s)
		}
		if n > (math.MaxInt64-int64(d))/base {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		n = n*base + int64(d)
		i += size
	}

	v := n - c.offset
	if c.offset < 0 && v < n {
		return 0, fmt.Errorf("%w: %q with offset %d", ErrOverflow, s, c.offset)
	}
	if v < 0 {
		return 0, &NegativeResultError{Input: s, Offset: c.offset}
	}
	return v, nil
}

// IsValid reports whether s decodes without error.
func (c *Codec) IsValid(s string) bool {
	_, err := c.Decode(s)
	return err == nil
}

// EncodeBig is the arbitrary precision form of Encode.
func (c *Codec) EncodeBig(value *big.Int) (string, error) {
	if value == nil || value.Sign() < 0 {
		return "", c.invalidInput(value.String())
	}
	n := new(big.Int).Add(value, big.NewInt(c.offset))
	if n.Sign() < 0 {
		return "", c.invalidInput(value.String())
	}

	a := c.Alphabet()
	if n.Sign() == 0 {
		return string(a.Symbol(0)), nil
	}
	base := big.NewInt(int64(a.Len()))
	var digits []rune
	d := new(big.Int)
	for n.Sign() > 0 {
		n.QuoRem(n, base, d)
		digits = append(digits, a.Symbol(int(d.Int64())))
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}

// DecodeBig is the arbitrary precision form of Decode. It never fails
// with ErrOverflow.
func (c *Codec) DecodeBig(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrEmptyString
	}
	a := c.Alphabet()
	base := big.NewInt(int64(a.Len()))

	n := new(big.Int)
	d := new(big.Int)
	pos := 0
	for i := 0; i < len(s); pos++ {
		r, size := utf8.DecodeRuneInString(s[i:])
		v, ok := a.Index(r)
		if !ok || (r == utf8.RuneError && size == 1) {
			return nil, &InvalidCharacterError{Symbol: r, Pos: pos, Input: s}
		}
		if c.strict && i == 0 && v == 0 && len(s) > size {
			return nil, fmt.Errorf("%w: %q", ErrNonCanonical, s)
		}
		n.Mul(n, base)
		n.Add(n, d.SetInt64(int64(v)))
		i += size
	}

	n.Sub(n, big.NewInt(c.offset))
	if n.Sign() < 0 {
		return nil, &NegativeResultError{Input: s, Offset: c.offset}
	}
	return n, nil
}

func (c *Codec) invalidInput(value string) error {
	return &InvalidInputError{Value: value, Offset: c.offset}
}
