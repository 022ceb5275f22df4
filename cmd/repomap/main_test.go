package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/George5562/Repomap/internal/repopack"
	"github.com/George5562/Repomap/internal/safeio"
	"github.com/George5562/Repomap/internal/tester"
)

func TestLoadDump_FromXMLFile(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "repomix.xml")
	fixture := "<file path=\"src/App.tsx\">\n1: export function App() {}\n</file>\n"
	tester.NoErr(t, os.WriteFile(xmlPath, []byte(fixture), 0o644))

	out, err := safeio.NewSafeFS(filepath.Join(dir, "out"))
	tester.NoErr(t, err)

	dump, err := loadDump(context.Background(), "", xmlPath, out)
	tester.NoErr(t, err)
	tester.Eq(t, string(dump), fixture)

	// The dump bytes must feed straight into the parser.
	pack, err := repopack.Parse(bytes.NewReader(dump))
	tester.NoErr(t, err)
	tester.Eq(t, len(pack.Files), 1)
	tester.Eq(t, pack.Files[0].Path, "src/App.tsx")
	tester.Eq(t, pack.LineCounts()["App.tsx"], 1)
}

func TestLoadDump_RequiresSource(t *testing.T) {
	out, err := safeio.NewSafeFS(t.TempDir())
	tester.NoErr(t, err)

	_, err = loadDump(context.Background(), "", "", out)
	tester.True(t, err != nil, "neither --repo nor --xml must be an error")
}

func TestLoadDump_MissingXMLFile(t *testing.T) {
	out, err := safeio.NewSafeFS(t.TempDir())
	tester.NoErr(t, err)

	_, err = loadDump(context.Background(), "", filepath.Join(t.TempDir(), "nope.xml"), out)
	tester.True(t, err != nil)
}
