package pipeline

import (
	"context"

	"github.com/George5562/Repomap/internal/llm"
	"github.com/George5562/Repomap/internal/prompt"
	"github.com/George5562/Repomap/internal/schema"
	"github.com/George5562/Repomap/internal/types"
	"github.com/George5562/Repomap/internal/util/jsonutil"
)

// F1 merges an accepted change proposal into the base diagram and emits the
// updated diagram text. The base run has already persisted its output by the
// time this phase starts; the two runs share no transaction.
type F1 struct{ LLM llm.LLMClient }

func (p *F1) Run(ctx context.Context, baseDiagram string, proposal types.ChangeProposal) (string, error) {
	ctx = llm.WithPhase(ctx, "integrate")
	input := map[string]any{"diagram": baseDiagram, "proposal": proposal}
	raw, err := p.LLM.GenerateJSON(ctx, prompt.Integrate(), input)
	if err != nil {
		return "", err
	}
	var out types.DiagramOut
	jsonutil.DecodeOrDefault(raw, &out, "integrate")
	if err := schema.ValidateDiagram(out); err != nil {
		return "", err
	}
	return out.Diagram, checkHeader(out.Diagram)
}
