// Package pipeline orchestrates the model-mediated phases. Each phase runs
// BuildPrompt -> Invoke -> Decode -> Validate (plus the header contract
// check for diagram phases) and is independent of the others; retries live
// inside the Model Client, never here.
package pipeline

import (
	"context"

	"github.com/George5562/Repomap/internal/llm"
	"github.com/George5562/Repomap/internal/prompt"
	"github.com/George5562/Repomap/internal/schema"
	"github.com/George5562/Repomap/internal/types"
	"github.com/George5562/Repomap/internal/util/jsonutil"
)

// S0 extracts the intermediate code structure from the raw XML dump.
type S0 struct{ LLM llm.LLMClient }

func (p *S0) Run(ctx context.Context, xmlDump string) (types.CodeStructure, error) {
	ctx = llm.WithPhase(ctx, "structure")
	raw, err := p.LLM.GenerateJSON(ctx, prompt.Structure(), map[string]any{"xml": xmlDump})
	if err != nil {
		return types.CodeStructure{}, err
	}
	// A response that cannot be decoded degrades to the empty structure;
	// a partially useless diagram beats a crashed run.
	out := types.CodeStructure{Files: []types.StructFile{}, Directories: []string{}}
	jsonutil.DecodeOrDefault(raw, &out, "structure")
	if err := schema.ValidateStructure(&out); err != nil {
		return types.CodeStructure{}, err
	}
	return out, nil
}
