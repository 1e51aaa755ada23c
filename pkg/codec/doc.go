// Package codec provides the column type table and the per-type value codec
// for MiniDB (.mdb) files.
//
// An .mdb file carries no row delimiters or length prefixes. The only way to
// find where a row ends is to add up the encoded width of every column, so
// the table in this package is the contract between the writer and every
// reader of the format.
//
// # Type Table
//
//	Tag   Type     Width
//	0x01  String   variable, terminated by 0x00
//	0x11  Int8     1
//	0x12  Uint8    1
//	0x13  Int16    2
//	0x14  Int32    4
//	0x21  Float64  8
//
// Fixed-width values are stored little-endian. Strings are raw bytes
// followed by a 0x00 terminator; at most MaxStringLen (99) bytes are kept
// when a string is decoded, the remainder up to the terminator is consumed
// and dropped.
//
// An unknown tag is reported as ErrUnknownType. It is never treated as a
// zero-width column.
//
// # Canonical Text
//
// Value.Format renders the text that value lookups compare against:
//
//	Int8(-5)       "-5"
//	Uint8(5)       "5"
//	Float64(3.14)  "3.140000"
//	String("abc")  "abc"
//
// Matching is textual, not numeric: "3.140000" matches a stored 3.14 while
// "3.14" does not.
//
// # Usage
//
//	r := bufio.NewReader(file)
//	v, n, err := codec.Decode(r, codec.TypeInt32)
//	if err != nil {
//	    return err // io.EOF, io.ErrUnexpectedEOF or ErrUnknownType
//	}
//	fmt.Println(v.Format(), n)
//
// Decode and Skip report the number of bytes they consumed. A read that gets
// nothing returns io.EOF and a read that stops inside a value returns
// io.ErrUnexpectedEOF, so callers can tell a clean end of file from a
// truncated one without consulting an end-of-file flag.
package codec
