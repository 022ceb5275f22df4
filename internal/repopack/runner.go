package repopack

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Runner invokes the external repomix binary as a black box to produce the
// XML dump for a repository root.
type Runner struct {
	Binary string // default "repomix"
}

// Run writes the dump to outFile and returns its contents.
func (r Runner) Run(ctx context.Context, repoRoot, outFile string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "repomix"
	}
	abs, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, bin,
		"--style", "xml",
		"--output-show-line-numbers",
		"--output", outFile,
		abs,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("repopack: %s failed: %v: %s", bin, err, stderr.String())
	}
	return os.ReadFile(outFile)
}
