// collect.go implements the collection run performed by the
// root command.
//
// A run proceeds in five steps: merge the options file (if any) with the
// flags, validate the result, resolve inputs to a file list, scan the
// files, and write the sorted sequence (or a JSON report).

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ZiYueCommentary/character-collector/internal/collector"
	"github.com/ZiYueCommentary/character-collector/internal/config"
	"github.com/ZiYueCommentary/character-collector/internal/model"
	"github.com/ZiYueCommentary/character-collector/internal/resolve"
)

// collectFlags holds the flag values for a collection run.
// These are bound to cobra flags in registerCollectFlags.
type collectFlags struct {
	// inputs lists file paths, directory paths or glob patterns.
	inputs []string

	// output is the destination file. Empty means standard output.
	output string

	// recursive descends into subdirectories of directory inputs.
	recursive bool

	// silence suppresses informational messages.
	silence bool

	// suppress suppresses warnings and errors.
	suppress bool

	// configPath is an optional YAML or JSONC options file.
	configPath string

	// excludeDirs lists directory names skipped during recursion.
	excludeDirs []string
}

// registerCollectFlags binds the collection flags to cmd.
func registerCollectFlags(cmd *cobra.Command, flags *collectFlags) {
	f := cmd.Flags()
	f.StringArrayVarP(&flags.inputs, "input", "i", nil,
		"Input file, directory or glob pattern (repeatable)")
	f.StringVarP(&flags.output, "output", "o", "",
		"Output file (default: standard output)")
	f.BoolVarP(&flags.recursive, "recursive", "r", false,
		"Recurse into subdirectories of directory inputs")
	f.BoolVarP(&flags.silence, "silence", "s", false,
		"Suppress informational messages")
	f.BoolVarP(&flags.suppress, "suppress", "S", false,
		"Suppress warnings and errors")
	f.StringVarP(&flags.configPath, "config", "c", "",
		"Options file (.yaml, .yml, .json or .jsonc)")
	f.StringArrayVar(&flags.excludeDirs, "exclude-dir", nil,
		"Directory name to skip while recursing (repeatable)")
}

// mergeOptions overlays explicitly set flags onto base, which holds the
// options file values (or zero Options without a file).
//
// Flag inputs are appended after file inputs. Every other flag replaces the
// file value only when changed reports it was given on the command line.
func mergeOptions(base *config.Options, flags *collectFlags, changed func(name string) bool) *config.Options {
	opts := *base
	opts.Inputs = append(append([]string(nil), base.Inputs...), flags.inputs...)

	if changed("output") {
		opts.Output = flags.output
	}
	if changed("recursive") {
		opts.Recursive = flags.recursive
	}
	if changed("silence") {
		opts.Silence = flags.silence
	}
	if changed("suppress") {
		opts.Suppress = flags.suppress
	}
	if changed("exclude-dir") {
		opts.ExcludeDirs = append([]string(nil), flags.excludeDirs...)
	}
	return &opts
}

// loadOptions builds the effective options for a run from the optional
// options file and the command-line flags.
func loadOptions(cmd *cobra.Command, flags *collectFlags) (*config.Options, error) {
	base := &config.Options{}
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		VerboseLog("Loaded options from %s (%d inputs)", flags.configPath, len(loaded.Inputs))
		base = loaded
	}

	opts := mergeOptions(base, flags, cmd.Flags().Changed)

	if errs := config.Validate(opts); len(errs) > 0 {
		joined := make([]error, 0, len(errs))
		for i := range errs {
			joined = append(joined, &errs[i])
		}
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid options", errors.Join(joined...))
	}

	if len(opts.Inputs) == 0 {
		return nil, model.NewCLIError(model.ExitGeneralError,
			"no inputs given: pass --input or set inputs in the options file")
	}
	return opts, nil
}

// runCollect is the main logic function for the root command.
func runCollect(cmd *cobra.Command, flags *collectFlags) error {
	VerboseLog("Flags: %s", describeFlags(cmd))

	// Step 1: Build the effective options. --suppress must already hold for
	// errors raised while loading them.
	quiet = flags.suppress
	opts, err := loadOptions(cmd, flags)
	if err != nil {
		return err
	}
	quiet = opts.Suppress

	reporter := &collector.ConsoleReporter{
		InfoOut:          cmd.ErrOrStderr(),
		WarnOut:          cmd.ErrOrStderr(),
		SuppressInfo:     opts.Silence,
		SuppressWarnings: opts.Suppress,
	}

	// Step 2: Resolve inputs to an ordered, de-duplicated file list.
	resolver := resolve.New(resolve.Options{
		Recursive:   opts.Recursive,
		ExcludeDirs: opts.ExcludeDirs,
	}, reporter.Warn)
	files := resolver.Resolve(opts.Inputs)
	VerboseLog("Resolved %d files from %d inputs (recursive: %t)", len(files), len(opts.Inputs), opts.Recursive)

	// Step 3: Scan every file and fold the characters together.
	result, err := collector.New(reporter).Run(cmd.Context(), files)
	if err != nil {
		return err
	}
	for _, rec := range result.Records {
		VerboseLog("File %s", rec)
	}
	VerboseLog("Collected %d characters: %d processed, %d skipped, %d unreadable",
		len(result.Characters), result.Processed(), result.Skipped(), result.Unreadable())
	VerboseLog("Sequence: %s", result)

	// Step 4: Write the sequence to the output file, if one was given.
	if opts.Output != "" {
		if err := collector.WriteFile(opts.Output, result.Characters, reporter); err != nil {
			return err
		}
		VerboseLog("Wrote %d characters to %s", len(result.Characters), opts.Output)
	}

	// Step 5: Print the report or the bare sequence.
	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		report := newReport(result.Characters)
		report.Output = opts.Output
		report.Files = &fileCountsJSON{
			Processed:  result.Processed(),
			Skipped:    result.Skipped(),
			Unreadable: result.Unreadable(),
		}
		return writeReport(out, report)
	}
	if opts.Output == "" {
		if err := collector.WriteSequence(out, result.Characters); err != nil {
			return model.WrapCLIError(model.ExitOutputFailed, "failed to write to standard output", err)
		}
	}
	return nil
}

// describeFlags lists the flags given on the command line, for verbose
// tracing.
func describeFlags(cmd *cobra.Command) string {
	set := []string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		set = append(set, fmt.Sprintf("--%s=%s", f.Name, f.Value.String()))
	})
	return fmt.Sprint(set)
}
