// Package mermaid holds the text-level operations on diagram documents: the
// header contract check and the font-size annotation pass. The diagram
// grammar is never fully parsed; only node-declaration lines are recognized.
package mermaid

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/George5562/Repomap/internal/types"
)

// Header is the literal every diagram document must begin with.
const Header = "flowchart TD"

// HasHeader reports whether the document starts with the required header
// literal (ignoring leading whitespace only).
func HasHeader(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), Header)
}

// Font-size policy: linear interpolation between the two thresholds.
const (
	minLines = 100
	maxLines = 500
	minFont  = 10.0
	maxFont  = 20.0
)

// FontSize maps a file's line count to a pixel font size. Exactly linear
// between the thresholds, clamped outside them.
func FontSize(lines int) float64 {
	if lines <= minLines {
		return minFont
	}
	if lines >= maxLines {
		return maxFont
	}
	return minFont + float64(lines-minLines)/float64(maxLines-minLines)*(maxFont-minFont)
}

// Node declarations look like `    home(["Home.tsx"])` or `    cfg{Config}`:
// leading whitespace, an identifier, an opening bracket, then a label that
// may be quoted. Everything else (edges, styles, subgraph lines) is left
// untouched.
var reNode = regexp.MustCompile(`^(\s+)([A-Za-z_][A-Za-z0-9_]*)\s*(\(\[|\[\[|\(\(|\[|\{)\s*"?([^"\]\)\}]+?)"?\s*(\]\)|\]\]|\)\)|\]|\})`)

// AnnotateFontSizes scans diagramText line by line and, for each node whose
// label resolves as a basename in lineCounts, inserts a style line binding
// the node id to its computed font size directly after the declaration.
// The transform preserves every original line byte-for-byte and in order,
// and is idempotent: a node already followed by the exact style line is
// skipped.
func AnnotateFontSizes(diagramText string, lineCounts map[string]int) string {
	lines := strings.Split(diagramText, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		m := reNode.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent, id, label := m[1], m[2], m[4]
		count, ok := lineCounts[path.Base(strings.TrimSpace(label))]
		if !ok {
			continue
		}
		style := indent + "style " + id + " font-size:" + formatPx(FontSize(count)) + ";"
		if i+1 < len(lines) && lines[i+1] == style {
			continue
		}
		out = append(out, style)
	}
	return strings.Join(out, "\n")
}

func formatPx(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64) + "px"
}

// EnsureClassDefs appends a classDef line for every catalog role the model
// left undefined, so ":::role" classes always resolve when the diagram is
// rendered. Already-present definitions are untouched.
func EnsureClassDefs(diagramText string, roles []types.RoleDef) string {
	out := strings.TrimRight(diagramText, "\n")
	for _, r := range roles {
		if strings.Contains(diagramText, "classDef "+r.Role+" ") {
			continue
		}
		out += fmt.Sprintf("\n    classDef %s fill:%s;", r.Role, r.Color)
	}
	return out + "\n"
}
