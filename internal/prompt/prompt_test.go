package prompt

import (
	"testing"

	"github.com/George5562/Repomap/internal/tester"
	"github.com/George5562/Repomap/internal/types"
)

func TestPrompts_Deterministic(t *testing.T) {
	tester.Eq(t, Structure(), Structure())
	tester.Eq(t, Diagram(), Diagram())
	tester.Eq(t, DiagramFromXML(), DiagramFromXML())
	tester.Eq(t, Integrate(), Integrate())
	tester.Eq(t, Proposal("add search"), Proposal("add search"))
	tester.True(t, Proposal("add search") != Proposal("add login"))
}

func TestPrompts_EmbedCatalogs(t *testing.T) {
	for _, p := range []string{Structure(), Diagram(), DiagramFromXML(), Proposal("x"), Integrate()} {
		for _, r := range types.Roles {
			tester.Contains(t, p, r.Role)
		}
		for _, v := range types.RelationshipVerbs {
			tester.Contains(t, p, v)
		}
	}
}

func TestDiagramPrompt_StatesHeaderContract(t *testing.T) {
	tester.Contains(t, Diagram(), `"flowchart TD"`)
	tester.Contains(t, DiagramFromXML(), `"flowchart TD"`)
	tester.Contains(t, Integrate(), `"flowchart TD"`)
}

func TestProposalPrompt_CarriesRequest(t *testing.T) {
	p := Proposal("add a dark-mode toggle")
	tester.Contains(t, p, "add a dark-mode toggle")
	tester.Contains(t, p, "newNodes")
	tester.Contains(t, p, "newEdges")
}
