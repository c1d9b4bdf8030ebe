package ocr

import "strings"

// Op is one insert operation of a rich-text delta document.
type Op struct {
	Insert string `json:"insert"`
}

// Delta is the minimal structured-text representation consumed by the
// client's rich-text editor.
type Delta struct {
	Ops []Op `json:"ops"`
}

// BuildDelta wraps each newline-separated segment of the text as an
// insert operation terminated by a newline.
func BuildDelta(text string) Delta {
	lines := strings.Split(text, "\n")
	ops := make([]Op, 0, len(lines))
	for _, line := range lines {
		ops = append(ops, Op{Insert: line + "\n"})
	}
	return Delta{Ops: ops}
}
