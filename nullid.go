package shortcode

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
)

// NullID is an optional ID: NULL in the database, null in JSON and an
// empty string in text. A valid NullID carries its short code.
type NullID struct {
	ID    ID
	Valid bool
}

var (
	_ driver.Valuer    = NullID{}
	_ sql.Scanner      = (*NullID)(nil)
	_ json.Marshaler   = NullID{}
	_ json.Unmarshaler = (*NullID)(nil)
)

// NullIDFrom returns a valid NullID holding id.
func NullIDFrom(id ID) NullID {
	return NullID{ID: id, Valid: true}
}

// NullIDFromPtr returns a NullID that is valid when id is not nil.
func NullIDFromPtr(id *ID) NullID {
	if id == nil {
		return NullID{}
	}
	return NullIDFrom(*id)
}

// Ptr returns a pointer to the ID, or nil when n is not valid.
func (n NullID) Ptr() *ID {
	if !n.Valid {
		return nil
	}
	id := n.ID
	return &id
}

// Code returns the short code of a valid NullID and "" otherwise.
func (n NullID) Code() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return n.ID.Code()
}

// set records the outcome of decoding into n.ID.
func (n *NullID) set(err error) error {
	if err != nil {
		*n = NullID{}
		return err
	}
	n.Valid = true
	return nil
}

func (n NullID) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return int64(n.ID), nil
}

func (n *NullID) Scan(src interface{}) error {
	if src == nil {
		*n = NullID{}
		return nil
	}
	return n.set(n.ID.Scan(src))
}

func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.ID.MarshalJSON()
}

func (n *NullID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullID{}
		return nil
	}
	return n.set(n.ID.UnmarshalJSON(b))
}

// MarshalText writes the short code, or nothing for an invalid NullID.
func (n NullID) MarshalText() ([]byte, error) {
	s, err := n.Code()
	return []byte(s), err
}

// UnmarshalText treats empty input as NULL.
func (n *NullID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*n = NullID{}
		return nil
	}
	return n.set(n.ID.UnmarshalText(b))
}
