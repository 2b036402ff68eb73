// Package hook executes a user-supplied shell command for each accepted
// finding, with the finding serialized as JSON on stdin.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jsminer/jsminer/internal/scan"
)

// Runner executes a shell command for each finding.
type Runner struct {
	cmd   string
	quiet bool
}

// NewRunner creates a hook runner. cmd is the shell command to execute.
func NewRunner(cmd string, quiet bool) *Runner {
	return &Runner{cmd: cmd, quiet: quiet}
}

// Run executes the hook command with the finding as JSON on stdin.
// The command runs with a 30-second timeout. Errors are logged but
// do not halt the scan.
func (r *Runner) Run(f scan.Finding) {
	data, err := json.Marshal(f)
	if err != nil {
		log.Error().Err(err).Msg("hook marshal error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shell, args := shellCommand()
	// Replace {type}, {value}, {severity}, {source}, {category}
	// placeholders in the command.
	expanded := r.cmd
	expanded = strings.ReplaceAll(expanded, "{type}", f.Type)
	expanded = strings.ReplaceAll(expanded, "{value}", f.Value)
	expanded = strings.ReplaceAll(expanded, "{severity}", f.Severity)
	expanded = strings.ReplaceAll(expanded, "{source}", f.Source)
	expanded = strings.ReplaceAll(expanded, "{category}", f.Category)
	expanded = strings.ReplaceAll(expanded, "{confidence}", fmt.Sprintf("%.2f", f.Confidence))

	cmd := exec.CommandContext(ctx, shell, append(args, expanded)...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		if !r.quiet {
			log.Warn().Err(err).Str("type", f.Type).Msg("hook command failed")
		}
		return
	}

	if len(output) > 0 && !r.quiet {
		fmt.Fprintf(os.Stderr, "[hook] %s", output)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
