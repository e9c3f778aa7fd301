// Package cli implements the cobra-based CLI commands for character-collector.
//
// The root command performs a collection run. Subcommands (merge) are
// defined in their own files within this package. This file defines the
// root command, its flags and the shared error and verbose output helpers.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, a JSON report replaces the bare character sequence.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, resolution and option decisions are traced to stderr.
	verbose bool

	// quiet mirrors --suppress for the final error line printed by Execute.
	quiet bool
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike a pure command group, the root command does real work: running it
// with --input flags collects characters from the inputs.
func NewRootCommand() *cobra.Command {
	flags := &collectFlags{}
	quiet = false

	rootCmd := &cobra.Command{
		Use:   "character-collector",
		Short: "Collect the unique characters used by a set of text files",
		Long: `character-collector reads text files, collects every distinct Unicode
character they contain (line terminators excluded) and prints the characters
once each, sorted by code point.

Typical use is building the glyph list for a font subset.

Inputs may be files, directories or glob patterns ("**" matches any number
of directories). Files whose first 1024 bytes are not valid UTF-8 are
treated as binary and skipped.

Examples:
  character-collector -i README.md
  character-collector -i docs -r -o chars.txt
  character-collector -i "src/**/*.txt" --exclude-dir node_modules -r
  character-collector -c collector.yaml --json`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, flags)
		},
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output a JSON report instead of the bare sequence")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	registerCollectFlags(rootCmd, flags)

	rootCmd.AddCommand(NewMergeCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors (bad flags, for instance) exit with
// ExitGeneralError.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			// The collector has already reported an empty input list as a
			// warning; only the JSON caller still needs an error object.
			if !errors.Is(cliErr, model.ErrNoInputFiles) || jsonOutput {
				printError(cliErr.Message, cliErr.Err)
			}
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
//
// Text errors are dropped when --suppress is in effect. JSON errors are
// always written, since a machine caller has no other way to learn why
// the run failed.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if quiet {
		return
	}
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for trace output that helps users
// understand which files were resolved and which options took effect.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
