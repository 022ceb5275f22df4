package types

// Role catalog --------------------------------------------------------------------

// RoleDef classifies a source file's function and drives its visual shape
// and color in the rendered diagram.
type RoleDef struct {
	Role  string `json:"role"`
	Shape string `json:"shape"`
	Color string `json:"color"`
}

// Roles is the closed catalog of node roles. Every role value appearing in a
// diagram or change proposal must be a member of this set.
var Roles = []RoleDef{
	{Role: "page", Shape: "stadium", Color: "#4F8EF7"},
	{Role: "component", Shape: "rect", Color: "#7ED321"},
	{Role: "service", Shape: "subroutine", Color: "#F5A623"},
	{Role: "config", Shape: "hexagon", Color: "#9B9B9B"},
	{Role: "context", Shape: "circle", Color: "#BD10E0"},
	{Role: "model", Shape: "rhombus", Color: "#D0021B"},
}

// RoleSet returns the legal role names for membership checks.
func RoleSet() map[string]bool {
	set := make(map[string]bool, len(Roles))
	for _, r := range Roles {
		set[r.Role] = true
	}
	return set
}

// RelationshipVerbs is the closed set of edge labels. Advisory in prompts;
// the proposal schema tolerates off-catalog verbs (see schema package).
var RelationshipVerbs = []string{
	"uses",
	"calls",
	"renders",
	"fetches from",
	"provides data to",
	"imports",
	"configures",
}

// Source analysis -----------------------------------------------------------------

// FileRecord is one analyzed file from the Repomix dump. MaxLine is the
// highest line-number prefix seen in the file's block and stands in for the
// file's length.
type FileRecord struct {
	Path    string `json:"path"`
	MaxLine int    `json:"max_line"`
}

// Intermediate structure (XML-parse phase output) ----------------------------------

type Relationship struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

type StructFile struct {
	Path          string         `json:"path"`
	Imports       []string       `json:"imports"`
	Exports       []string       `json:"exports"`
	Relationships []Relationship `json:"relationships"`
}

// CodeStructure is the parsed file/import/export/relationship model produced
// from the source analysis and consumed by diagram generation. Built once per
// run and held in memory; persistence is the caller's choice.
type CodeStructure struct {
	Files       []StructFile `json:"files"`
	Directories []string     `json:"directories"`
}

// Diagram phase output -------------------------------------------------------------

// DiagramOut is the single-field contract for diagram-producing phases.
// The text must begin with mermaid.Header; the pipeline checks that
// separately from schema validation.
type DiagramOut struct {
	Diagram string `json:"diagram"`
}

// Change proposal ------------------------------------------------------------------

type ProposedNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Role  string `json:"role"`
}

type ProposedEdge struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Relationship string `json:"relationship"`
	Proposed     bool   `json:"proposed"`
}

// ChangeProposal describes the nodes and edges to add for a requested
// feature, plus a free-text rationale.
type ChangeProposal struct {
	NewNodes    []ProposedNode `json:"newNodes"`
	NewEdges    []ProposedEdge `json:"newEdges"`
	Explanation string         `json:"explanation"`
}
