package query

import (
	"fmt"
)

// ColumnValue is one entry of a column listing
type ColumnValue struct {
	Index int    // Ordinal position of the row, starting at 0
	Value string // Canonical text of the value
}

// FormatVersion renders a header version byte as major.minor. The byte is
// hex-coded decimal like the type tags: the high nibble is the major version
// and the low nibble the minor, so 0x11 is v1.1.
func FormatVersion(v byte) string {
	return fmt.Sprintf("v%d.%d", v>>4, v&0x0f)
}
