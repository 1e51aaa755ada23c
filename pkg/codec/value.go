package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Reader is the subset of *bufio.Reader the codec consumes values from
type Reader interface {
	io.Reader
	io.ByteReader
	Discard(n int) (discarded int, err error)
}

// Value is a single decoded field, tagged with its column type.
// Numerics are held as raw bits: sign-extended for the Int types and
// IEEE-754 for Float64.
type Value struct {
	typ  Type
	bits uint64
	str  string
}

// Int8Value creates an Int8 value
func Int8Value(v int8) Value { return Value{typ: TypeInt8, bits: uint64(int64(v))} }

// Uint8Value creates a Uint8 value
func Uint8Value(v uint8) Value { return Value{typ: TypeUint8, bits: uint64(v)} }

// Int16Value creates an Int16 value
func Int16Value(v int16) Value { return Value{typ: TypeInt16, bits: uint64(int64(v))} }

// Int32Value creates an Int32 value
func Int32Value(v int32) Value { return Value{typ: TypeInt32, bits: uint64(int64(v))} }

// Float64Value creates a Float64 value
func Float64Value(v float64) Value { return Value{typ: TypeFloat64, bits: math.Float64bits(v)} }

// StringValue creates a String value
func StringValue(v string) Value { return Value{typ: TypeString, str: v} }

// Type returns the column type the value was decoded as
func (v Value) Type() Type { return v.typ }

// Int returns the value of a signed integer type
func (v Value) Int() int64 { return int64(v.bits) }

// Uint returns the value of an unsigned integer type
func (v Value) Uint() uint64 { return v.bits }

// Float returns the value of a Float64
func (v Value) Float() float64 { return math.Float64frombits(v.bits) }

// Str returns the value of a String
func (v Value) Str() string { return v.str }

// Format renders the canonical text of the value. Value matching compares
// these strings, so the rendering must stay fixed: base-10 integers and
// Float64 with exactly six fractional digits.
func (v Value) Format() string {
	switch v.typ {
	case TypeInt8, TypeInt16, TypeInt32:
		return strconv.FormatInt(v.Int(), 10)
	case TypeUint8:
		return strconv.FormatUint(v.Uint(), 10)
	case TypeFloat64:
		return formatFloat(v.Float())
	case TypeString:
		return v.str
	default:
		return ""
	}
}

func (v Value) String() string { return v.Format() }

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// Decode reads one value of type t and returns it with the number of bytes
// consumed. A read that obtains no bytes at all returns io.EOF; a read that
// stops part way through the value returns io.ErrUnexpectedEOF.
func Decode(r Reader, t Type) (Value, int, error) {
	width, err := t.Len()
	if err != nil {
		return Value{}, 0, err
	}

	if width == Variable {
		s, n, err := readString(r)
		if err != nil {
			return Value{}, n, err
		}
		return StringValue(s), n, nil
	}

	var buf [8]byte
	n, err := io.ReadFull(r, buf[:width])
	if err != nil {
		return Value{}, n, err
	}
	return fromBytes(t, buf[:width]), n, nil
}

// Skip advances past one value of type t without materializing it and
// returns the number of bytes consumed. Short reads are reported the same
// way as Decode.
func Skip(r Reader, t Type) (int, error) {
	width, err := t.Len()
	if err != nil {
		return 0, err
	}

	if width == Variable {
		n := 0
		for {
			b, err := r.ReadByte()
			if err != nil {
				return n, shortRead(n, err)
			}
			n++
			if b == Terminator {
				return n, nil
			}
		}
	}

	n, err := r.Discard(width)
	if err != nil {
		return n, shortRead(n, err)
	}
	return n, nil
}

// readString reads up to and including the terminator. Bytes past
// MaxStringLen are consumed but dropped so the reader stays aligned.
func readString(r io.ByteReader) (string, int, error) {
	var sb strings.Builder
	n := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", n, shortRead(n, err)
		}
		n++
		if b == Terminator {
			return sb.String(), n, nil
		}
		if sb.Len() < MaxStringLen {
			sb.WriteByte(b)
		}
	}
}

func shortRead(n int, err error) error {
	if n > 0 && errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func fromBytes(t Type, b []byte) Value {
	switch t {
	case TypeInt8:
		return Int8Value(int8(b[0]))
	case TypeUint8:
		return Uint8Value(b[0])
	case TypeInt16:
		return Int16Value(int16(binary.LittleEndian.Uint16(b)))
	case TypeInt32:
		return Int32Value(int32(binary.LittleEndian.Uint32(b)))
	case TypeFloat64:
		return Float64Value(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	}
	return Value{typ: t}
}

// Append encodes v in its on-disk form and appends it to buf.
// Format: fixed types are little-endian, strings are raw bytes plus 0x00.
func Append(buf []byte, v Value) ([]byte, error) {
	switch v.typ {
	case TypeInt8, TypeUint8:
		return append(buf, byte(v.bits)), nil
	case TypeInt16:
		return binary.LittleEndian.AppendUint16(buf, uint16(v.bits)), nil
	case TypeInt32:
		return binary.LittleEndian.AppendUint32(buf, uint32(v.bits)), nil
	case TypeFloat64:
		return binary.LittleEndian.AppendUint64(buf, v.bits), nil
	case TypeString:
		if strings.IndexByte(v.str, Terminator) >= 0 {
			return nil, fmt.Errorf("string value contains terminator byte")
		}
		buf = append(buf, v.str...)
		return append(buf, Terminator), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownType, byte(v.typ))
	}
}

// Parse converts text into a value of type t. It accepts the canonical
// form produced by Format as well as any other base-10 rendering.
func Parse(t Type, text string) (Value, error) {
	switch t {
	case TypeInt8:
		x, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return Value{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Int8Value(int8(x)), nil
	case TypeUint8:
		x, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return Value{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Uint8Value(uint8(x)), nil
	case TypeInt16:
		x, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return Value{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Int16Value(int16(x)), nil
	case TypeInt32:
		x, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Int32Value(int32(x)), nil
	case TypeFloat64:
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %s: %w", t, err)
		}
		return Float64Value(x), nil
	case TypeString:
		return StringValue(text), nil
	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", ErrUnknownType, byte(t))
	}
}
