// Package prompt renders the instruction text for each pipeline phase.
// Builders are pure: identical inputs yield byte-identical prompts, which
// keeps the pipeline testable without live network calls.
package prompt

import (
	"strings"

	"github.com/George5562/Repomap/internal/types"
	"github.com/George5562/Repomap/internal/util/jsonutil"
)

// catalogBlock embeds the full role catalog and relationship verb list so
// the model's vocabulary is constrained by construction rather than by
// post-hoc filtering.
func catalogBlock() string {
	roles, _ := jsonutil.MarshalNoEscape(types.Roles)
	var sb strings.Builder
	sb.WriteString("[ROLE CATALOG]\n")
	sb.Write(roles)
	sb.WriteString("\n\n[RELATIONSHIP VERBS]\n")
	sb.WriteString(strings.Join(types.RelationshipVerbs, ", "))
	sb.WriteString("\n")
	return sb.String()
}

// Structure instructs the model to extract the file/import/export model from
// the raw XML dump.
func Structure() string {
	return `You are a senior software architect.
From the provided Repomix XML dump of a codebase, extract its structure.

Return STRICT JSON ONLY:
{
  "files": [{"path":"string","imports":["string"],"exports":["string"],"relationships":[{"type":"string","target":"string"}]}],
  "directories": ["string"]
}

Constraints:
- Paths are repository-relative.
- relationship type must be one of the relationship verbs below.
- Exclude vendored and generated files.

` + catalogBlock()
}

// Diagram instructs the model to render a Mermaid flowchart from the
// extracted structure.
func Diagram() string {
	return diagramContract(`From the provided code structure, render a Mermaid flowchart of the codebase.`)
}

// DiagramFromXML is the consolidated single-call variant: same output
// contract, raw XML as input instead of the extracted structure.
func DiagramFromXML() string {
	return diagramContract(`From the provided Repomix XML dump, render a Mermaid flowchart of the codebase.`)
}

func diagramContract(lead string) string {
	return `You are a senior software architect.
` + lead + `

Return STRICT JSON ONLY:
{
  "diagram": "string"
}

The diagram MUST:
- begin with the exact line "flowchart TD"
- declare one classDef per role in the catalog below, using the role name as the class name and its color as fill
- group nodes into subgraphs per directory
- declare one node per file: identifier, basename as quoted label, shape brackets per the file's role, ":::role" class
- label every edge with a relationship verb from the list below

` + catalogBlock()
}

// Proposal instructs the model to plan a feature against the structure and
// the current diagram.
func Proposal(featureRequest string) string {
	return `You are a senior software architect.
A feature has been requested for the codebase described by the provided structure and current diagram:

[FEATURE REQUEST]
` + featureRequest + `

Propose the new nodes and edges that implement it.

Return STRICT JSON ONLY:
{
  "newNodes": [{"id":"string","label":"string","role":"string"}],
  "newEdges": [{"from":"string","to":"string","relationship":"string","proposed":true}],
  "explanation": "string"
}

Constraints:
- role must be a member of the role catalog below.
- relationship should be a verb from the list below.
- proposed must be true on every edge.

` + catalogBlock()
}

// Integrate instructs the model to merge an accepted change proposal into
// the existing diagram.
func Integrate() string {
	return diagramContract(`Merge the provided change proposal into the provided base diagram.
Keep every existing node and edge; add the proposed nodes and edges, styling proposed edges with dashed links.`)
}
