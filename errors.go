package shortcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter is returned when decoding a string containing a
	// symbol that is not in the active alphabet.
	ErrInvalidCharacter = errors.New("shortcode: invalid character")
	// ErrNegativeResult is returned when a decoded value minus the offset is
	// below zero.
	ErrNegativeResult = errors.New("shortcode: negative result")
	// ErrInvalidInput is returned when encoding a value that cannot be
	// represented, i.e. value < 0 or value + offset < 0.
	ErrInvalidInput = errors.New("shortcode: invalid input")
	ErrOverflow     = errors.New("shortcode: value overflows int64")
	ErrEmptyString  = errors.New("shortcode: empty string")
	// ErrNonCanonical is returned in strict mode for codes with a leading
	// zero symbol.
	ErrNonCanonical = errors.New("shortcode: non-canonical code")

	ErrAlphabetTooShort = errors.New("shortcode: alphabet needs at least 2 symbols")
	ErrDuplicateSymbol  = errors.New("shortcode: duplicate symbol in alphabet")
	ErrInvalidAlphabet  = errors.New("shortcode: alphabet is not valid UTF-8")
)

// InvalidCharacterError reports the offending symbol and input of a
// failed decode.
type InvalidCharacterError struct {
	Symbol rune
	Pos    int
	Input  string
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("shortcode: invalid character %q at position %d in %q", e.Symbol, e.Pos, e.Input)
}

func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// NegativeResultError reports a decoded string that could not have been
// produced under the offset in use.
type NegativeResultError struct {
	Input  string
	Offset int64
}

func (e *NegativeResultError) Error() string {
	return fmt.Sprintf("shortcode: %q decodes below zero with offset %d", e.Input, e.Offset)
}

func (e *NegativeResultError) Is(target error) bool {
	return target == ErrNegativeResult
}

// InvalidInputError reports a value that cannot be encoded under the
// offset in use.
type InvalidInputError struct {
	Value  string
	Offset int64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("shortcode: cannot encode %s with offset %d", e.Value, e.Offset)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
