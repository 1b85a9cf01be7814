package shortcode

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultCodec is used by ID and by the package level Encode and Decode.
// Set it once at startup, before encoding or parsing IDs.
var DefaultCodec = Default()

// SetDefaultCodec replaces DefaultCodec with a Codec built from cfg.
func SetDefaultCodec(cfg Config) error {
	c, err := New(cfg)
	if err != nil {
		return err
	}
	DefaultCodec = c
	return nil
}

// Encode encodes value with DefaultCodec.
func Encode(value int64) (string, error) {
	return DefaultCodec.Encode(value)
}

// Decode decodes s with DefaultCodec.
func Decode(s string) (int64, error) {
	return DefaultCodec.Decode(s)
}

var (
	_ fmt.Stringer             = ID(0)
	_ driver.Valuer            = ID(0)
	_ sql.Scanner              = (*ID)(nil)
	_ encoding.TextMarshaler   = ID(0)
	_ encoding.TextUnmarshaler = (*ID)(nil)
	_ json.Marshaler           = ID(0)
	_ json.Unmarshaler         = (*ID)(nil)
)

type Format string

const (
	FormatShortCode Format = "shortcode"
	FormatDecimal   Format = "decimal"
)

// ID is a database row identifier. Databases store the raw int64; text
// and JSON carry its short code under DefaultCodec.
type ID int64

const Nil ID = 0

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) IsNil() bool {
	return id == Nil
}

// EncodeWith returns the short code of id under c.
func (id ID) EncodeWith(c *Codec) (string, error) {
	return c.Encode(int64(id))
}

// Code returns the short code of id under DefaultCodec.
func (id ID) Code() (string, error) {
	return id.EncodeWith(DefaultCodec)
}

// String returns the short code of id under DefaultCodec.
//
// IDs the codec cannot encode are written in decimal instead. Parse reads
// the decimal form back for negative IDs, as long as '-' is not a symbol of
// the active alphabet. A non-negative ID that falls below zero once the
// offset is applied is rendered as plain digits, which Parse would read as
// a short code; use ParseDecimal for those.
func (id ID) String() string {
	return id.Format(FormatShortCode)
}

// Format renders id as a short code or as a decimal number.
func (id ID) Format(f Format) string {
	if f == FormatShortCode {
		if s, err := id.Code(); err == nil {
			return s
		}
	}
	return strconv.FormatInt(int64(id), 10)
}

// ParseWith decodes a short code into an ID using c. Negative decimals,
// as written by String for IDs without a code, are accepted when '-' is
// not in the active alphabet.
func ParseWith(c *Codec, s string) (ID, error) {
	n, err := c.Decode(s)
	if err == nil {
		return ID(n), nil
	}
	if strings.HasPrefix(s, "-") && !c.Alphabet().Contains('-') {
		if v, perr := strconv.ParseInt(s, 10, 64); perr == nil {
			return ID(v), nil
		}
	}
	return Nil, err
}

// Parse decodes a short code into an ID using DefaultCodec.
func Parse(s string) (ID, error) {
	return ParseWith(DefaultCodec, s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseDecimal parses the decimal form of an ID, e.g. a row id taken from
// a log line, so it can be re-rendered with String.
func ParseDecimal(s string) (ID, error) {
	if s == "" {
		return Nil, ErrEmptyString
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Nil, fmt.Errorf("shortcode: invalid decimal %q: %w", s, err)
	}
	return ID(n), nil
}

func (id ID) MarshalText() ([]byte, error) {
	s, err := id.Code()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalJSON writes the short code as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	s, err := id.Code()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts a short code string, a bare integer (the raw row
// id) or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*id = Nil
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("shortcode: invalid JSON string: %w", err)
		}
		return id.UnmarshalText([]byte(s))
	default:
		v, err := ParseDecimal(string(b))
		if err != nil {
			return fmt.Errorf("shortcode: invalid JSON value %s", b)
		}
		*id = v
		return nil
	}
}

// Value stores the raw row id.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan reads a bigint column, or a text column holding short codes.
func (id *ID) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*id = Nil
	case int64:
		*id = ID(v)
	case ID:
		*id = v
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	default:
		return fmt.Errorf("shortcode: cannot scan %T into ID", src)
	}
	return nil
}
