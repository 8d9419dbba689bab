// Package analysis invokes the external regression process. The process
// is an opaque collaborator: variables and a CSV path go in, a block of
// plain text comes out. Nothing here parses statistical output.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"urbangpt/logging"
)

// Runner is the external-process port. Implementations take the resolved
// variables and return the raw textual result; the orchestrator can be
// tested against a fake without a real statistics engine.
type Runner interface {
	Run(ctx context.Context, csvPath string, independent []string, dependent string) (string, error)
}

const (
	scriptOLS         = "ols.py"
	scriptOLSMultiple = "ols_mul.py"
)

// ScriptRunner runs the regression scripts as blocking subprocesses.
// One independent variable selects simple OLS; several select the
// multiple-regression script with the names joined by comma. No timeout is
// enforced: a hung process stalls its turn until the client abandons it.
type ScriptRunner struct {
	python     string
	scriptsDir string
	log        *logging.Logger
}

func NewScriptRunner(python, scriptsDir string, log *logging.Logger) *ScriptRunner {
	return &ScriptRunner{python: python, scriptsDir: scriptsDir, log: log}
}

// Run invokes the regression script with positional arguments
// (script, csvPath, independent(s), dependent). Non-zero exit or any
// stderr output is a hard failure for the turn.
func (r *ScriptRunner) Run(ctx context.Context, csvPath string, independent []string, dependent string) (string, error) {
	if len(independent) == 0 {
		return "", fmt.Errorf("no independent variable")
	}

	script := scriptOLS
	if len(independent) > 1 {
		script = scriptOLSMultiple
	}
	independentArg := strings.Join(independent, ",")

	cmd := exec.CommandContext(ctx, r.python,
		filepath.Join(r.scriptsDir, script), csvPath, independentArg, dependent)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Printf("analysis: running %s %s (independent=%s dependent=%s)", script, csvPath, independentArg, dependent)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("regression script failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", fmt.Errorf("regression script wrote to stderr: %s", msg)
	}

	return stdout.String(), nil
}
