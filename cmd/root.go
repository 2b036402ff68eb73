package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jsminer/jsminer/internal/config"
	"github.com/jsminer/jsminer/internal/runner"
	"github.com/jsminer/jsminer/pkg/version"
)

var (
	opts = *config.Default()

	noEndpoints bool
	noSecrets   bool
	noURLs      bool
	maxJSSizeMB int
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"INPUT", []string{"url", "urls-file", "file"}},
	{"EXTRACTION", []string{"no-endpoints", "no-secrets", "no-urls", "max-js-size"}},
	{"RATE-LIMIT", []string{"concurrency", "delay", "timeout", "adaptive-throttle"}},
	{"HTTP", []string{"user-agent", "proxy"}},
	{"OUTPUT", []string{"output", "json", "quiet", "no-color", "verbose"}},
	{"HOOKS", []string{"on-finding"}},
}

var rootCmd = &cobra.Command{
	Use:     "jsminer -u <url> [flags]",
	Short:   "Mine JavaScript files for secrets, endpoints, and sensitive URLs",
	Version: version.Version,
	Long: `jsminer discovers the JavaScript an application ships to the browser and
mines it for hardcoded secrets, API endpoints, and sensitive URLs. Feed it
a page, a script URL, a URL list, or a local bundle; it crawls out the
scripts, scans them against a curated rule set, and confidence-scores
every hit to cut triage noise.`,
	Example: `  jsminer -u https://example.com
  jsminer -u https://example.com/static/app.js -o findings.json
  jsminer -l urls.txt -c 20 --delay 1s
  jsminer -f ./dist/bundle.js --json
  jsminer -u https://example.com --no-endpoints --no-urls
  jsminer -u https://example.com -o report.html
  jsminer -u https://example.com --on-finding "notify-send '{type}: {value}'"`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		bindEnv(cmd.Flags())

		opts.Endpoints = !noEndpoints
		opts.Secrets = !noSecrets
		opts.URLs = !noURLs
		opts.MaxBodySize = int64(maxJSSizeMB) * 1024 * 1024

		if err := opts.Validate(); err != nil {
			if opts.URL == "" && opts.URLsFile == "" && opts.LocalFile == "" {
				_ = cmd.Help()
				fmt.Fprintln(os.Stderr)
			}
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Input
	f.StringVarP(&opts.URL, "url", "u", "", "Target URL (web page or direct .js file)")
	f.StringVarP(&opts.URLsFile, "urls-file", "l", "", "File with one URL per line")
	f.StringVarP(&opts.LocalFile, "file", "f", "", "Local JavaScript file to scan")

	// Extraction
	f.BoolVar(&noEndpoints, "no-endpoints", false, "Skip API endpoint extraction")
	f.BoolVar(&noSecrets, "no-secrets", false, "Skip secret and API key extraction")
	f.BoolVar(&noURLs, "no-urls", false, "Skip sensitive URL extraction")
	f.IntVar(&maxJSSizeMB, "max-js-size", 10, "Maximum script size to scan in MB")

	// Rate limiting
	f.IntVarP(&opts.Concurrency, "concurrency", "c", opts.Concurrency, "Number of concurrent fetch workers")
	f.DurationVar(&opts.Delay, "delay", opts.Delay, "Delay between fetches per worker")
	f.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Fetch timeout per attempt")
	f.BoolVar(&opts.AdaptiveThrottle, "adaptive-throttle", false, "Auto back-off on 429/503 responses")

	// HTTP
	f.StringVar(&opts.UserAgent, "user-agent", opts.UserAgent, "Custom User-Agent string")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP/SOCKS proxy URL")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Report file path (.html for HTML, else JSON)")
	f.BoolVar(&opts.ForceJSON, "json", false, "Force JSON output regardless of extension")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Findings only, no banner or summary")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Show source, context, and debug logging")

	// Hooks
	f.StringVar(&opts.OnFindingCmd, "on-finding", "", "Shell command to run per finding (receives JSON on stdin)")

	viper.SetEnvPrefix("JSMINER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Custom help: categorized flags like httpx.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprint(w, helpBanner(cmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindEnv fills flags the user did not set from JSMINER_* environment
// variables, so CI runs can configure the scan without arguments.
func bindEnv(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		if !viper.IsSet(f.Name) {
			return
		}
		_ = f.Value.Set(viper.GetString(f.Name))
	})
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf(`
       _                _
      (_)____ ____ ___ (_)___  ___  _____
     / / ___// __ '__ \/ / __ \/ _ \/ ___/
    / (__  )/ / / / / / / / / /  __/ /
 __/ /____//_/ /_/ /_/_/_/ /_/\___/_/   %s
/___/

`, ver)
}
