package codec

import (
	"errors"
	"fmt"
)

// Type is the one-byte tag that declares how a column's values are stored
type Type byte

// Column type tags as written in the file header
const (
	TypeString  Type = 0x01
	TypeInt8    Type = 0x11
	TypeUint8   Type = 0x12
	TypeInt16   Type = 0x13
	TypeInt32   Type = 0x14
	TypeFloat64 Type = 0x21
)

const (
	// Variable is returned by Len for types whose width is found by scanning for a terminator
	Variable = -1

	// MaxStringLen is the number of payload bytes kept when a string is read
	MaxStringLen = 99

	// Terminator ends every string value and column name
	Terminator byte = 0x00
)

// ErrUnknownType is returned for a tag that is not in the type table
var ErrUnknownType = errors.New("unknown column type")

var typeTable = map[Type]struct {
	name  string
	width int
}{
	TypeString:  {"String", Variable},
	TypeInt8:    {"Int8", 1},
	TypeUint8:   {"Uint8", 1},
	TypeInt16:   {"Int16", 2},
	TypeInt32:   {"Int32", 4},
	TypeFloat64: {"Float64", 8},
}

// Len returns the encoded width of the type in bytes, or Variable for strings.
// An unrecognized tag is an error rather than a zero-width column, since a
// wrong width desynchronizes every row that follows.
func (t Type) Len() (int, error) {
	entry, ok := typeTable[t]
	if !ok {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownType, byte(t))
	}
	return entry.width, nil
}

// Valid reports whether t is a known type tag
func (t Type) Valid() bool {
	_, ok := typeTable[t]
	return ok
}

// Fixed reports whether t has a constant encoded width
func (t Type) Fixed() bool {
	entry, ok := typeTable[t]
	return ok && entry.width != Variable
}

func (t Type) String() string {
	if entry, ok := typeTable[t]; ok {
		return entry.name
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(t))
}
