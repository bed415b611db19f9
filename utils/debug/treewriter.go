// Package debug has helpers producing human readable diagnostic dumps.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label with quoted value, empty values are left bare.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Element writes element subtree: tag with attributes on one line, non
// blank text as quoted block beneath.
func (tw TreeWriter) Element(depth int, e *etree.Element) {
	if e == nil {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(e.FullTag())
	for _, a := range e.Attr {
		fmt.Fprintf(tw.w, " %s=%s", a.FullKey(), strconv.Quote(a.Value))
	}
	tw.w.WriteByte('\n')
	if text := strings.TrimSpace(e.Text()); text != "" {
		tw.TextBlock(depth+1, "text", text)
	}
	for _, c := range e.ChildElements() {
		tw.Element(depth+1, c)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
