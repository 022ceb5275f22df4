package pipeline

import (
	"context"

	"github.com/George5562/Repomap/internal/llm"
	"github.com/George5562/Repomap/internal/prompt"
	"github.com/George5562/Repomap/internal/schema"
	"github.com/George5562/Repomap/internal/types"
	"github.com/George5562/Repomap/internal/util/jsonutil"
)

// F0 plans a requested feature as a change proposal against the current
// structure and diagram.
type F0 struct{ LLM llm.LLMClient }

func (p *F0) Run(ctx context.Context, cs types.CodeStructure, baseDiagram, featureRequest string) (types.ChangeProposal, error) {
	ctx = llm.WithPhase(ctx, "proposal")
	input := map[string]any{"structure": cs, "diagram": baseDiagram}
	raw, err := p.LLM.GenerateJSON(ctx, prompt.Proposal(featureRequest), input)
	if err != nil {
		return types.ChangeProposal{}, err
	}
	out := types.ChangeProposal{
		NewNodes: []types.ProposedNode{},
		NewEdges: []types.ProposedEdge{},
	}
	jsonutil.DecodeOrDefault(raw, &out, "proposal")
	if err := schema.ValidateProposal(&out); err != nil {
		return types.ChangeProposal{}, err
	}
	return out, nil
}
