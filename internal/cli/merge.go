// merge.go implements the "character-collector merge" command.
//
// The merge command combines two previously collected character sequences
// into one sorted, de-duplicated sequence. It lets a caller collect files
// in separate runs (or on separate machines) and fold the results later.

package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ZiYueCommentary/character-collector/internal/charset"
	"github.com/ZiYueCommentary/character-collector/internal/collector"
	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// mergeFlags holds the flag values for the merge command.
type mergeFlags struct {
	// files treats both arguments as paths to sequence files.
	files bool

	// output is the destination file. Empty means standard output.
	output string
}

// NewMergeCommand creates the "merge" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewMergeCommand() *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "merge <previous> <new>",
		Short: "Merge two character sequences",
		Long: `Merge two character sequences into one sorted sequence without duplicates.

By default both arguments are the sequences themselves. With --files they
are paths to files holding sequences, such as the output of earlier runs.
Line terminators in those files are ignored.

Examples:
  character-collector merge cab bad
  character-collector merge --files old.txt new.txt -o all.txt`,

		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, flags, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&flags.files, "files", false, "Treat the arguments as sequence file paths")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: standard output)")

	return cmd
}

// runMerge is the main logic function for the merge command.
func runMerge(cmd *cobra.Command, flags *mergeFlags, prev, next string) error {
	if flags.files {
		var err error
		if prev, err = readSequenceFile(prev); err != nil {
			return err
		}
		if next, err = readSequenceFile(next); err != nil {
			return err
		}
	}

	merged := []rune(charset.Merge(prev, next))
	VerboseLog("Merged %d and %d characters into %d",
		utf8.RuneCountInString(prev), utf8.RuneCountInString(next), len(merged))

	reporter := &collector.ConsoleReporter{WarnOut: cmd.ErrOrStderr()}
	if flags.output != "" {
		if err := collector.WriteFile(flags.output, merged, reporter); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		report := newReport(merged)
		report.Output = flags.output
		return writeReport(out, report)
	}
	if flags.output == "" {
		if err := collector.WriteSequence(out, merged); err != nil {
			return model.WrapCLIError(model.ExitOutputFailed, "failed to write to standard output", err)
		}
	}
	return nil
}

// lineTerminators strips CR and LF, which never belong to a collected
// sequence but are commonly appended by editors.
var lineTerminators = strings.NewReplacer("\r", "", "\n", "")

// readSequenceFile reads a sequence file written by an earlier run.
func readSequenceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read sequence file %s", path), err)
	}
	if !utf8.Valid(data) {
		return "", model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("sequence file %s is not valid UTF-8", path))
	}
	return lineTerminators.Replace(string(data)), nil
}
