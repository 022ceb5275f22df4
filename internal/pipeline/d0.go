package pipeline

import (
	"context"
	"fmt"

	"github.com/George5562/Repomap/internal/llm"
	"github.com/George5562/Repomap/internal/mermaid"
	"github.com/George5562/Repomap/internal/prompt"
	"github.com/George5562/Repomap/internal/schema"
	"github.com/George5562/Repomap/internal/types"
	"github.com/George5562/Repomap/internal/util/jsonutil"
)

// D0 renders the Mermaid diagram from the extracted structure.
type D0 struct{ LLM llm.LLMClient }

func (p *D0) Run(ctx context.Context, cs types.CodeStructure) (string, error) {
	return p.generate(ctx, prompt.Diagram(), map[string]any{"structure": cs})
}

// RunFromXML is the consolidated variant: one model call straight from the
// XML dump, same contract. An alternate prompt for the same pipeline shape.
func (p *D0) RunFromXML(ctx context.Context, xmlDump string) (string, error) {
	return p.generate(ctx, prompt.DiagramFromXML(), map[string]any{"xml": xmlDump})
}

func (p *D0) generate(ctx context.Context, promptText string, input any) (string, error) {
	ctx = llm.WithPhase(ctx, "diagram")
	raw, err := p.LLM.GenerateJSON(ctx, promptText, input)
	if err != nil {
		return "", err
	}
	var out types.DiagramOut
	jsonutil.DecodeOrDefault(raw, &out, "diagram")
	if err := schema.ValidateDiagram(out); err != nil {
		return "", err
	}
	return out.Diagram, checkHeader(out.Diagram)
}

// checkHeader is the diagram-specific contract check. Violations are hard
// failures; the pipeline never repairs or re-prompts automatically.
func checkHeader(diagram string) error {
	if !mermaid.HasHeader(diagram) {
		return fmt.Errorf("pipeline: diagram does not start with %q", mermaid.Header)
	}
	return nil
}
