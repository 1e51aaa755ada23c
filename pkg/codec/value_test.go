package codec

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(b []byte) *bufio.Reader {
	return bufio.NewReader(bytes.NewReader(b))
}

func TestValue_Format(t *testing.T) {
	testCases := []struct {
		name  string
		value Value
		want  string
	}{
		{"negative int8", Int8Value(-5), "-5"},
		{"int8 min", Int8Value(math.MinInt8), "-128"},
		{"uint8", Uint8Value(5), "5"},
		{"uint8 max", Uint8Value(255), "255"},
		{"int16", Int16Value(-32768), "-32768"},
		{"int32", Int32Value(2147483647), "2147483647"},
		{"zero", Int32Value(0), "0"},
		{"float64", Float64Value(3.14), "3.140000"},
		{"float64 negative", Float64Value(-0.5), "-0.500000"},
		{"float64 nan", Float64Value(math.NaN()), "nan"},
		{"float64 inf", Float64Value(math.Inf(1)), "inf"},
		{"float64 -inf", Float64Value(math.Inf(-1)), "-inf"},
		{"string", StringValue("bob@chicago.com"), "bob@chicago.com"},
		{"empty string", StringValue(""), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Format())
			assert.Equal(t, tc.want, tc.value.String())
		})
	}
}

func TestDecode_FixedWidth(t *testing.T) {
	testCases := []struct {
		name  string
		typ   Type
		data  []byte
		want  string
		width int
	}{
		{"int8", TypeInt8, []byte{0xFB}, "-5", 1},
		{"uint8", TypeUint8, []byte{0xFB}, "251", 1},
		{"int16 little endian", TypeInt16, []byte{0x34, 0x12}, "4660", 2},
		{"int16 negative", TypeInt16, []byte{0xFF, 0xFF}, "-1", 2},
		{"int32", TypeInt32, []byte{0x78, 0x56, 0x34, 0x12}, "305419896", 4},
		{"float64", TypeFloat64, []byte{0x1F, 0x85, 0xEB, 0x51, 0xB8, 0x1E, 0x09, 0x40}, "3.140000", 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, n, err := Decode(newReader(tc.data), tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.width, n)
			assert.Equal(t, tc.typ, v.Type())
			assert.Equal(t, tc.want, v.Format())
		})
	}
}

func TestDecode_String(t *testing.T) {
	r := newReader([]byte("ann@x.com\x00next\x00"))

	v, n, err := Decode(r, TypeString)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", v.Str())
	assert.Equal(t, 10, n)

	v, n, err = Decode(r, TypeString)
	require.NoError(t, err)
	assert.Equal(t, "next", v.Str())
	assert.Equal(t, 5, n)

	_, n, err = Decode(r, TypeString)
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, n)
}

func TestDecode_StringTruncatedToMax(t *testing.T) {
	long := strings.Repeat("a", 150)
	r := newReader([]byte(long + "\x00" + "\x07"))

	v, n, err := Decode(r, TypeString)
	require.NoError(t, err)
	assert.Len(t, v.Str(), MaxStringLen)
	assert.Equal(t, 151, n)

	// the reader must be positioned after the terminator
	next, _, err := Decode(r, TypeUint8)
	require.NoError(t, err)
	assert.Equal(t, "7", next.Format())
}

func TestDecode_ShortReads(t *testing.T) {
	t.Run("empty input is EOF", func(t *testing.T) {
		_, n, err := Decode(newReader(nil), TypeInt32)
		assert.Equal(t, io.EOF, err)
		assert.Zero(t, n)
	})

	t.Run("partial fixed value", func(t *testing.T) {
		_, n, err := Decode(newReader([]byte{0x01, 0x02}), TypeInt32)
		assert.Equal(t, io.ErrUnexpectedEOF, err)
		assert.Equal(t, 2, n)
	})

	t.Run("unterminated string", func(t *testing.T) {
		_, n, err := Decode(newReader([]byte("abc")), TypeString)
		assert.Equal(t, io.ErrUnexpectedEOF, err)
		assert.Equal(t, 3, n)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := Decode(newReader([]byte{0x01}), Type(0x99))
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func TestSkip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	data = append(data, "hello\x00"...)
	data = append(data, 0x2A)
	r := newReader(data)

	n, err := Skip(r, TypeInt32)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = Skip(r, TypeString)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	v, _, err := Decode(r, TypeUint8)
	require.NoError(t, err)
	assert.Equal(t, "42", v.Format())

	n, err = Skip(r, TypeInt16)
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, n)
}

func TestSkip_ShortReads(t *testing.T) {
	n, err := Skip(newReader([]byte{0x01}), TypeFloat64)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.Equal(t, 1, n)

	n, err = Skip(newReader([]byte("no terminator")), TypeString)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.Equal(t, 13, n)

	_, err = Skip(newReader([]byte{0x01}), Type(0x00))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestSkip_AgreesWithDecode(t *testing.T) {
	values := []Value{
		Int8Value(-1),
		Uint8Value(200),
		Int16Value(1234),
		Int32Value(-99999),
		Float64Value(2.5),
		StringValue(""),
		StringValue(strings.Repeat("x", 120)),
	}

	for _, v := range values {
		encoded, err := Append(nil, v)
		require.NoError(t, err)

		_, decoded, err := Decode(newReader(encoded), v.Type())
		require.NoError(t, err)
		skipped, err := Skip(newReader(encoded), v.Type())
		require.NoError(t, err)

		assert.Equal(t, len(encoded), decoded, "decode width for %s", v.Type())
		assert.Equal(t, len(encoded), skipped, "skip width for %s", v.Type())
	}
}

func TestRoundTrip_CanonicalText(t *testing.T) {
	testCases := []struct {
		typ  Type
		text string
	}{
		{TypeInt8, "-5"},
		{TypeInt8, "127"},
		{TypeUint8, "0"},
		{TypeUint8, "255"},
		{TypeInt16, "-32768"},
		{TypeInt32, "-2147483648"},
		{TypeFloat64, "3.140000"},
		{TypeFloat64, "-1234.500000"},
		{TypeString, "bob@chicago.com"},
		{TypeString, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.typ.String()+"/"+tc.text, func(t *testing.T) {
			v, err := Parse(tc.typ, tc.text)
			require.NoError(t, err)

			encoded, err := Append(nil, v)
			require.NoError(t, err)

			decoded, n, err := Decode(newReader(encoded), tc.typ)
			require.NoError(t, err)
			assert.Equal(t, len(encoded), n)
			assert.Equal(t, tc.text, decoded.Format())
		})
	}
}

func TestFloat64_BitExact(t *testing.T) {
	for _, f := range []float64{3.14, -0.0, math.SmallestNonzeroFloat64, math.MaxFloat64, 1.0 / 3.0} {
		encoded, err := Append(nil, Float64Value(f))
		require.NoError(t, err)

		v, _, err := Decode(newReader(encoded), TypeFloat64)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(f), math.Float64bits(v.Float()))
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(TypeInt8, "128")
	assert.Error(t, err)

	_, err = Parse(TypeUint8, "-1")
	assert.Error(t, err)

	_, err = Parse(TypeInt32, "3.5")
	assert.Error(t, err)

	_, err = Parse(TypeFloat64, "pi")
	assert.Error(t, err)

	_, err = Parse(Type(0x42), "1")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestAppend_Errors(t *testing.T) {
	_, err := Append(nil, StringValue("a\x00b"))
	assert.Error(t, err)

	_, err = Append(nil, Value{})
	assert.ErrorIs(t, err, ErrUnknownType)
}
