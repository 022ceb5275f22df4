// Package schema checks decoded model output against the two fixed
// contracts before anything downstream consumes it. Validation is
// all-or-nothing at the document level; the only repair performed is
// normalizing missing collections to empty ones.
package schema

import (
	"fmt"

	"github.com/George5562/Repomap/internal/types"
)

// ValidateDiagram enforces the diagram contract: a single non-empty text
// field. The header literal is the pipeline's contract check, not ours.
func ValidateDiagram(out types.DiagramOut) error {
	if out.Diagram == "" {
		return fmt.Errorf("schema: diagram text is empty")
	}
	return nil
}

// ValidateStructure normalizes nil collections and rejects entries without a
// path.
func ValidateStructure(cs *types.CodeStructure) error {
	if cs.Files == nil {
		cs.Files = []types.StructFile{}
	}
	if cs.Directories == nil {
		cs.Directories = []string{}
	}
	for i := range cs.Files {
		f := &cs.Files[i]
		if f.Path == "" {
			return fmt.Errorf("schema: structure file %d has no path", i)
		}
		if f.Imports == nil {
			f.Imports = []string{}
		}
		if f.Exports == nil {
			f.Exports = []string{}
		}
		if f.Relationships == nil {
			f.Relationships = []types.Relationship{}
		}
	}
	return nil
}

// ValidateProposal enforces the change-proposal contract. Node roles must be
// members of the role catalog. Edge relationships may be any non-empty
// string: rejecting otherwise-useful proposals over an off-catalog verb is a
// looseness the design accepts.
func ValidateProposal(p *types.ChangeProposal) error {
	if p.NewNodes == nil {
		p.NewNodes = []types.ProposedNode{}
	}
	if p.NewEdges == nil {
		p.NewEdges = []types.ProposedEdge{}
	}
	roles := types.RoleSet()
	for i, n := range p.NewNodes {
		if n.ID == "" || n.Label == "" {
			return fmt.Errorf("schema: proposal node %d is missing id or label", i)
		}
		if !roles[n.Role] {
			return fmt.Errorf("schema: proposal node %q has unknown role %q", n.ID, n.Role)
		}
	}
	for i, e := range p.NewEdges {
		if e.From == "" || e.To == "" || e.Relationship == "" {
			return fmt.Errorf("schema: proposal edge %d is missing from, to or relationship", i)
		}
	}
	return nil
}
