package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultDumpWidth is the number of bytes shown per dump line
const DefaultDumpWidth = 24

// DumpFile writes a hex view of the file at path to w and returns the number
// of bytes dumped.
func DumpFile(path string, w io.Writer, width int) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	defer file.Close()

	return Dump(file, w, width)
}

// Dump writes src as lines of width bytes: lowercase hex pairs padded to a
// full line, then " | " and the printable ASCII bytes with "." for the rest.
// A failed read from src is returned as ErrFileUnavailable; write errors are
// returned unchanged.
func Dump(src io.Reader, w io.Writer, width int) (int64, error) {
	if width <= 0 {
		width = DefaultDumpWidth
	}

	out := bufio.NewWriter(w)
	buf := make([]byte, width)
	var hexLine, textLine strings.Builder
	var total int64

	for {
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			hexLine.Reset()
			textLine.Reset()
			for _, b := range buf[:n] {
				fmt.Fprintf(&hexLine, "%02x ", b)
				if b >= 32 && b <= 126 {
					textLine.WriteByte(b)
				} else {
					textLine.WriteByte('.')
				}
			}
			hexLine.WriteString(strings.Repeat(" ", (width-n)*3))

			if _, werr := fmt.Fprintf(out, "%s | %s\n", hexLine.String(), textLine.String()); werr != nil {
				return total, werr
			}
			total += int64(n)
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return total, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
		}
	}

	return total, out.Flush()
}
