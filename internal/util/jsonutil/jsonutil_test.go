package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/George5562/Repomap/internal/types"
)

func TestDecodeRelaxed_Direct(t *testing.T) {
	var v map[string]any
	require.NoError(t, DecodeRelaxed([]byte(`{"a":1}`), &v))
	require.Equal(t, float64(1), v["a"])
}

func TestDecodeRelaxed_Fenced(t *testing.T) {
	raw := "```json\n{\"diagram\":\"flowchart TD\"}\n```"
	var v types.DiagramOut
	require.NoError(t, DecodeRelaxed([]byte(raw), &v))
	require.Equal(t, "flowchart TD", v.Diagram)
}

func TestDecodeRelaxed_ProseAroundJSON(t *testing.T) {
	raw := "Here is the structure you asked for:\n{\"diagram\":\"flowchart TD\"}\nLet me know if you need more."
	var v types.DiagramOut
	require.NoError(t, DecodeRelaxed([]byte(raw), &v))
	require.Equal(t, "flowchart TD", v.Diagram)
}

func TestDecodeRelaxed_Scrubbed(t *testing.T) {
	// Trailing commas, bare keys, comments: only the third strategy recovers.
	raw := "```\n// model note\n{files: [{path: \"a.ts\", imports: [],},], directories: [\"src\",], /* done */}\n```"
	var v types.CodeStructure
	require.NoError(t, DecodeRelaxed([]byte(raw), &v))
	require.Len(t, v.Files, 1)
	require.Equal(t, "a.ts", v.Files[0].Path)
	require.Equal(t, []string{"src"}, v.Directories)
}

func TestDecodeRelaxed_Garbage(t *testing.T) {
	var v types.CodeStructure
	require.ErrorIs(t, DecodeRelaxed([]byte("total nonsense, no braces"), &v), ErrUnrecoverable)
}

func TestDecodeOrDefault_KeepsDefault(t *testing.T) {
	v := types.CodeStructure{Files: []types.StructFile{}, Directories: []string{}}
	DecodeOrDefault([]byte("garbage"), &v, "test")
	require.NotNil(t, v.Files)
	require.Empty(t, v.Files)
	require.NotNil(t, v.Directories)
}

func TestRoundTrip_Contracts(t *testing.T) {
	p := types.ChangeProposal{
		NewNodes:    []types.ProposedNode{{ID: "search", Label: "Search.tsx", Role: "component"}},
		NewEdges:    []types.ProposedEdge{{From: "app", To: "search", Relationship: "renders", Proposed: true}},
		Explanation: "adds search",
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	var got types.ChangeProposal
	require.NoError(t, DecodeRelaxed(b, &got))
	require.Equal(t, p, got)

	d := types.DiagramOut{Diagram: "flowchart TD\n    a[b]"}
	b, err = json.Marshal(d)
	require.NoError(t, err)
	var gotD types.DiagramOut
	require.NoError(t, DecodeRelaxed(b, &gotD))
	require.Equal(t, d, gotD)
}

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"edge": "a --> b"})
	require.NoError(t, err)
	require.Equal(t, `{"edge":"a --> b"}`, string(b))
}
