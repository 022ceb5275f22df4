package repopack

import (
	"strings"
	"testing"

	"github.com/George5562/Repomap/internal/tester"
)

const sampleDump = `<repository>
<file path="src/Home.tsx">
1: import React from "react";
2: export function Home() {}
</file>
<file path="src/components/Header.tsx">
1: import React from "react";
2: export function Header() {}
300: // trailing line
</file>
<file path="lib/Header.tsx">
1: export {};
</file>
</repository>
`

func TestParse_MaxLinePerFile(t *testing.T) {
	p, err := Parse(strings.NewReader(sampleDump))
	tester.NoErr(t, err)
	tester.Eq(t, len(p.Files), 3)
	tester.Eq(t, p.Files[0].Path, "src/Home.tsx")
	tester.Eq(t, p.Files[0].MaxLine, 2)
	tester.Eq(t, p.Files[1].Path, "src/components/Header.tsx")
	tester.Eq(t, p.Files[1].MaxLine, 300)
}

func TestParse_BodiesKept(t *testing.T) {
	p, err := Parse(strings.NewReader(sampleDump))
	tester.NoErr(t, err)
	body := p.Bodies["src/Home.tsx"]
	tester.Contains(t, body, "export function Home")
}

func TestLineCounts_BasenameCollisionLargerWins(t *testing.T) {
	p, err := Parse(strings.NewReader(sampleDump))
	tester.NoErr(t, err)
	counts := p.LineCounts()
	// src/components/Header.tsx (300) beats lib/Header.tsx (1).
	tester.Eq(t, counts["Header.tsx"], 300)
	tester.Eq(t, counts["Home.tsx"], 2)
}

func TestParse_PipeSeparatedLineNumbers(t *testing.T) {
	dump := "<file path=\"a.go\">\n  1 | package a\n 42 | func A() {}\n</file>\n"
	p, err := Parse(strings.NewReader(dump))
	tester.NoErr(t, err)
	tester.Eq(t, p.Files[0].MaxLine, 42)
}

func TestParse_EmbeddedClosingTagKept(t *testing.T) {
	// A source file may itself contain Repomix output; its numbered body
	// lines must not close the enclosing block.
	dump := "<file path=\"fixture.txt\">\n" +
		"1: <file path=\"inner.go\">\n" +
		"2: 1: package inner\n" +
		"3: </file>\n" +
		"9: done\n" +
		"</file>\n"
	p, err := Parse(strings.NewReader(dump))
	tester.NoErr(t, err)
	tester.Eq(t, len(p.Files), 1)
	tester.Eq(t, p.Files[0].Path, "fixture.txt")
	tester.Eq(t, p.Files[0].MaxLine, 9)
	tester.Contains(t, p.Bodies["fixture.txt"], "3: </file>")
}

func TestParse_UnterminatedBlock(t *testing.T) {
	dump := "<file path=\"a.go\">\n1: package a\n"
	p, err := Parse(strings.NewReader(dump))
	tester.NoErr(t, err)
	tester.Eq(t, len(p.Files), 1)
	tester.Eq(t, p.Files[0].MaxLine, 1)
}
