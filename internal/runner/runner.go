package runner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jsminer/jsminer/internal/config"
	"github.com/jsminer/jsminer/internal/hook"
	"github.com/jsminer/jsminer/internal/output"
	"github.com/jsminer/jsminer/internal/rules"
	"github.com/jsminer/jsminer/internal/scan"
	"github.com/jsminer/jsminer/pkg/version"
)

// Run executes the full mining pipeline: resolve seeds, drain the frontier
// with the worker pool, then render the console report and any export file.
func Run(ctx context.Context, opts *config.Options) error {
	setupLogging(opts)

	if err := rules.ValidateTable(); err != nil {
		return errors.Wrap(err, "rule table")
	}

	seeds, err := resolveSeeds(opts)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		printBanner(opts, len(seeds))
	}

	scanner, err := scan.NewScanner(opts)
	if err != nil {
		return errors.Wrap(err, "creating scanner")
	}

	if opts.OnFindingCmd != "" {
		hookRunner := hook.NewRunner(opts.OnFindingCmd, opts.Quiet)
		scanner.OnFinding = hookRunner.Run
	}

	progress := output.NewProgress(opts.Quiet)
	scanner.Progress = progress

	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()
	if pauser != nil {
		scanner.SetPauser(pauser)
		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "[*] Press Enter or Space to pause/resume\n")
		}
	}

	progress.Start()
	res := scanner.Run(ctx, seeds)
	progress.Stop()

	if ctx.Err() != nil && !opts.Quiet {
		fmt.Fprintf(os.Stderr, "\n[!] Scan interrupted, reporting partial results\n")
	}

	return writeReports(opts, res)
}

// resolveSeeds builds the seed targets from -u, -l, and -f.
func resolveSeeds(opts *config.Options) ([]scan.Target, error) {
	var seeds []scan.Target

	addURL := func(raw string) {
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			raw = "https://" + raw
		}
		addr := scan.NormalizeAddress(raw)
		if addr == "" {
			log.Warn().Str("url", raw).Msg("skipping unparsable seed URL")
			return
		}
		seeds = append(seeds, scan.Target{Kind: scan.ClassifyURL(addr), Address: addr})
	}

	if opts.URL != "" {
		addURL(opts.URL)
	}

	if opts.URLsFile != "" {
		f, err := os.Open(opts.URLsFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening URL list")
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			addURL(line)
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "reading URL list")
		}
	}

	if opts.LocalFile != "" {
		seeds = append(seeds, scan.Target{Kind: scan.KindFile, Address: opts.LocalFile})
	}

	if len(seeds) == 0 {
		return nil, errors.New("no scannable seeds (-u, -l, or -f)")
	}
	return seeds, nil
}

func writeReports(opts *config.Options, res *scan.Result) error {
	// JSON to stdout replaces the console report so the output stays
	// machine-parsable.
	if opts.ForceJSON && opts.OutputFile == "" {
		w, err := output.NewJSONWriter("")
		if err != nil {
			return err
		}
		return w.Write(res)
	}

	console := output.NewTextWriter(os.Stdout, opts.NoColor, opts.Quiet, opts.Verbose)
	if err := console.Write(res); err != nil {
		return err
	}

	if opts.OutputFile != "" {
		w, err := output.NewWriter(opts.OutputFile, opts.ForceJSON)
		if err != nil {
			return errors.Wrap(err, "creating report writer")
		}
		if err := w.Write(res); err != nil {
			w.Close()
			return errors.Wrap(err, "writing report")
		}
		if err := w.Close(); err != nil {
			return err
		}
		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "[+] Report written to %s\n", opts.OutputFile)
		}
	}
	return nil
}

func setupLogging(opts *config.Options) {
	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	if opts.Quiet {
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: opts.NoColor})
}

func printBanner(opts *config.Options, seedCount int) {
	const (
		cyan  = "\033[36m"
		white = "\033[97m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)

	c, w, d, rs := cyan, white, dim, reset
	if opts.NoColor {
		c, w, d, rs = "", "", "", ""
	}

	fmt.Fprintf(os.Stderr, `
%s       _                _                     %s
%s      (_)____ ____ ___ (_)___  ___  _____    %s
%s     / / ___// __ '__ \/ / __ \/ _ \/ ___/   %s
%s    / (__  )/ / / / / / / / / /  __/ /      %s
%s __/ /____//_/ /_/ /_/_/_/ /_/\___/_/       %s %sv%s%s
%s/___/                                        %s
%s    JavaScript Secret & Endpoint Miner       %s
`,
		c, rs,
		c, rs,
		c, rs,
		c, rs,
		c, rs, d, version.Version, rs,
		c, rs,
		w, rs,
	)

	categories := make([]string, 0, 3)
	if opts.Secrets {
		categories = append(categories, "secrets")
	}
	if opts.Endpoints {
		categories = append(categories, "endpoints")
	}
	if opts.URLs {
		categories = append(categories, "urls")
	}

	fmt.Fprintf(os.Stderr, "%s  ──────────────────────────────────────%s\n", d, rs)
	if opts.URL != "" {
		fmt.Fprintf(os.Stderr, "  %sTarget:%s      %s%s%s\n", d, rs, w, opts.URL, rs)
	}
	if opts.URLsFile != "" {
		fmt.Fprintf(os.Stderr, "  %sURL list:%s    %s%s%s\n", d, rs, w, opts.URLsFile, rs)
	}
	if opts.LocalFile != "" {
		fmt.Fprintf(os.Stderr, "  %sLocal file:%s  %s%s%s\n", d, rs, w, opts.LocalFile, rs)
	}
	fmt.Fprintf(os.Stderr, "  %sSeeds:%s       %s%d%s\n", d, rs, w, seedCount, rs)
	fmt.Fprintf(os.Stderr, "  %sWorkers:%s     %s%d%s\n", d, rs, w, opts.Concurrency, rs)
	fmt.Fprintf(os.Stderr, "  %sCategories:%s  %s%s%s\n", d, rs, w, strings.Join(categories, ", "), rs)
	fmt.Fprintf(os.Stderr, "%s  ──────────────────────────────────────%s\n\n", d, rs)
}
