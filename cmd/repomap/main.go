package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/George5562/Repomap/internal/llm"
	"github.com/George5562/Repomap/internal/mermaid"
	"github.com/George5562/Repomap/internal/pipeline"
	"github.com/George5562/Repomap/internal/repopack"
	"github.com/George5562/Repomap/internal/safeio"
	"github.com/George5562/Repomap/internal/types"
	"github.com/George5562/Repomap/internal/util/jsonutil"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		repo         string
		xmlPath      string
		outDir       string
		provider     string
		model        string
		feature      string
		consolidated bool
		noCache      bool
		timeout      time.Duration
		maxAttempts  int
	)

	cmd := &cobra.Command{
		Use:   "repomap",
		Short: "Generate a Mermaid diagram of a codebase from its Repomix dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			out, err := safeio.NewSafeFS(outDir)
			if err != nil {
				return err
			}

			dump, err := loadDump(ctx, repo, xmlPath, out)
			if err != nil {
				return err
			}
			pack, err := repopack.Parse(bytes.NewReader(dump))
			if err != nil {
				return err
			}
			log.Printf("parsed %d files from dump", len(pack.Files))

			cli, err := newClient(ctx, provider, model, timeout, maxAttempts, noCache)
			if err != nil {
				return err
			}
			defer cli.Close()

			counts := pack.LineCounts()
			xmlText := string(dump)

			// Base diagram run. Durable before any feature work starts.
			diagram, structure, err := generateBase(ctx, cli, xmlText, consolidated)
			if err != nil {
				return err
			}
			diagram = mermaid.EnsureClassDefs(diagram, types.Roles)
			diagram = mermaid.AnnotateFontSizes(diagram, counts)
			if err := out.WriteFile("diagram.mmd", []byte(diagram)); err != nil {
				return err
			}
			log.Printf("wrote %s", filepath.Join(out.Root(), "diagram.mmd"))

			if feature == "" {
				return nil
			}

			// Feature flow: proposal, then an independent integration run.
			f0 := pipeline.F0{LLM: cli}
			proposal, err := f0.Run(ctx, structure, diagram, feature)
			if err != nil {
				return err
			}
			pj, err := jsonutil.MarshalIndentNoEscape(proposal, "", "  ")
			if err != nil {
				return err
			}
			if err := out.WriteFile("proposal.json", pj); err != nil {
				return err
			}
			log.Printf("wrote %s", filepath.Join(out.Root(), "proposal.json"))

			f1 := pipeline.F1{LLM: cli}
			updated, err := f1.Run(ctx, diagram, proposal)
			if err != nil {
				return err
			}
			updated = mermaid.EnsureClassDefs(updated, types.Roles)
			updated = mermaid.AnnotateFontSizes(updated, counts)
			if err := out.WriteFile("diagram-updated.mmd", []byte(updated)); err != nil {
				return err
			}
			log.Printf("wrote %s", filepath.Join(out.Root(), "diagram-updated.mmd"))
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository root to analyze (runs repomix)")
	cmd.Flags().StringVar(&xmlPath, "xml", "", "existing Repomix XML dump (skips the subprocess)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().StringVar(&provider, "provider", "openrouter", "model provider: openrouter, gemini or fake")
	cmd.Flags().StringVar(&model, "model", "anthropic/claude-3.5-sonnet", "model identifier")
	cmd.Flags().StringVarP(&feature, "feature", "f", "", "natural-language feature request to plan into the diagram")
	cmd.Flags().BoolVar(&consolidated, "consolidated", false, "single model call per diagram instead of the two-stage pipeline")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-run response cache")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "per-attempt request timeout")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "attempts per model call")
	return cmd
}

// loadDump returns the XML dump bytes, either read from an existing file or
// produced by running repomix against the repository root.
func loadDump(ctx context.Context, repo, xmlPath string, out *safeio.SafeFS) ([]byte, error) {
	switch {
	case xmlPath != "":
		return os.ReadFile(xmlPath)
	case repo != "":
		return repopack.Runner{}.Run(ctx, repo, filepath.Join(out.Root(), "repomix.xml"))
	default:
		return nil, fmt.Errorf("either --repo or --xml is required")
	}
}

func newClient(ctx context.Context, provider, model string, timeout time.Duration, maxAttempts int, noCache bool) (llm.LLMClient, error) {
	var (
		inner llm.LLMClient
		err   error
	)
	switch provider {
	case "openrouter":
		inner, err = llm.NewOpenRouterClient(llm.OpenRouterConfig{
			Model:   model,
			Timeout: timeout,
			Referer: "https://github.com/George5562/Repomap",
			Title:   "Repomap",
		})
	case "gemini":
		inner, err = llm.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), model)
	case "fake":
		inner = llm.NewFakeClient()
	default:
		err = fmt.Errorf("unknown provider %q", provider)
	}
	if err != nil {
		return nil, err
	}
	mws := []llm.Middleware{llm.WithLogging(nil), llm.Retry(maxAttempts, 2*time.Second)}
	if !noCache {
		mws = append([]llm.Middleware{llm.WithCache(64)}, mws...)
	}
	return llm.Wrap(inner, mws...), nil
}

func generateBase(ctx context.Context, cli llm.LLMClient, xmlText string, consolidated bool) (string, types.CodeStructure, error) {
	d0 := pipeline.D0{LLM: cli}
	if consolidated {
		diagram, err := d0.RunFromXML(ctx, xmlText)
		return diagram, types.CodeStructure{}, err
	}
	s0 := pipeline.S0{LLM: cli}
	structure, err := s0.Run(ctx, xmlText)
	if err != nil {
		return "", types.CodeStructure{}, err
	}
	diagram, err := d0.Run(ctx, structure)
	return diagram, structure, err
}
