// Package repopack consumes the Repomix-style XML dump of a codebase: one
// <file path="..."> block per analyzed file, bodies prefixed with line
// numbers. The dump is not well-formed XML (file bodies are unescaped), so
// it is scanned line by line instead of fed to an XML decoder.
package repopack

import (
	"bufio"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/George5562/Repomap/internal/types"
)

// Pack is the parsed dump: file records in document order plus raw bodies
// keyed by path, kept for the structure-extraction prompt.
type Pack struct {
	Files  []types.FileRecord
	Bodies map[string]string
}

var (
	reFileOpen = regexp.MustCompile(`^<file\s+path="([^"]+)"\s*>$`)
	reLineNum  = regexp.MustCompile(`^\s*(\d+)\s*[:|]`)
)

// Parse scans the dump and extracts, per file, the path attribute and the
// highest line-number prefix in the block.
func Parse(r io.Reader) (*Pack, error) {
	p := &Pack{Bodies: map[string]string{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		cur     string
		maxLine int
		body    strings.Builder
	)
	flush := func() {
		if cur == "" {
			return
		}
		p.Files = append(p.Files, types.FileRecord{Path: cur, MaxLine: maxLine})
		p.Bodies[cur] = body.String()
		cur, maxLine = "", 0
		body.Reset()
	}
	for sc.Scan() {
		line := sc.Text()
		// Tags are matched against the whole trimmed line: dumps of dumps
		// carry "<file ...>" and "</file>" inside numbered body lines, which
		// must not open or close a block.
		if m := reFileOpen.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			cur = m[1]
			continue
		}
		if strings.TrimSpace(line) == "</file>" {
			flush()
			continue
		}
		if cur == "" {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
		if m := reLineNum.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxLine {
				maxLine = n
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush() // unterminated trailing block
	return p, nil
}

// LineCounts keys the per-file line counts by basename, matching the labels
// the diagram prompt asks for. Basenames collide across directories; the
// larger count wins so the annotation stays deterministic.
func (p *Pack) LineCounts() map[string]int {
	counts := make(map[string]int, len(p.Files))
	for _, f := range p.Files {
		base := path.Base(f.Path)
		if f.MaxLine > counts[base] {
			counts[base] = f.MaxLine
		}
	}
	return counts
}
