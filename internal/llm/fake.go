package llm

import (
	"context"
	"encoding/json"
)

// FakeClient returns deterministic, minimal JSON payloads per phase for
// offline runs and tests.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	var obj any
	switch PhaseFrom(ctx) {
	case "structure":
		obj = map[string]any{
			"files": []any{
				map[string]any{
					"path":    "src/App.tsx",
					"imports": []string{"src/components/Header.tsx"},
					"exports": []string{"App"},
					"relationships": []any{
						map[string]any{"type": "renders", "target": "src/components/Header.tsx"},
					},
				},
				map[string]any{
					"path":          "src/components/Header.tsx",
					"imports":       []string{},
					"exports":       []string{"Header"},
					"relationships": []any{},
				},
			},
			"directories": []string{"src", "src/components"},
		}
	case "diagram", "integrate":
		obj = map[string]any{
			"diagram": "flowchart TD\n" +
				"    subgraph src\n" +
				"        app([\"App.tsx\"]):::page\n" +
				"        header[\"Header.tsx\"]:::component\n" +
				"    end\n" +
				"    app -->|renders| header\n",
		}
	case "proposal":
		obj = map[string]any{
			"newNodes": []any{
				map[string]any{"id": "search", "label": "Search.tsx", "role": "component"},
			},
			"newEdges": []any{
				map[string]any{"from": "app", "to": "search", "relationship": "renders", "proposed": true},
			},
			"explanation": "fake proposal",
		}
	default:
		obj = map[string]any{}
	}
	b, _ := json.Marshal(obj)
	return json.RawMessage(b), nil
}
