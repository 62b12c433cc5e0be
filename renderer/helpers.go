package renderer

import (
	"bytes"
	"io"
)

// ConditionalBlock renders a report section into a buffer and copies it to w
// only when block returns true. A yearly summary uses it to drop its Giving
// section when nothing was ever given.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}
