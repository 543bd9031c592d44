package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codesniff/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file|directory]...",
	Short: "Apply sniff fixes until the files stop changing",
	Long: `Fix runs the sniffs in fix mode pass after pass until no fix applies,
writes the fixed files back and reports what remains. With --dry-run the
files are left untouched and a diff is printed instead`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSniffs(cmd, args, driver.ModeFix)
	},
}

func init() {
	addRunFlags(fixCmd)
	fixCmd.Flags().Bool("dry-run", false, "print a diff instead of writing files")
	fixCmd.Flags().Int("max-passes", 0, "maximum fix passes per file (0=config or 50)")
}

func printFixSummary(out io.Writer, results []driver.FileResult, dryRun bool) {
	var fixed, unstable int
	for i := range results {
		r := &results[i]
		if r.Fixed() != "" {
			fixed++
		}
		if r.Unstable() {
			unstable++
			fmt.Fprintf(out, "%s: fixes did not stabilize after %d passes (%s)\n", r.Path, r.Fix.Passes, r.Fix.Outcome)
		}
	}
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(out, "%s %d of %d files", verb, fixed, len(results))
	if unstable > 0 {
		fmt.Fprintf(out, ", %d unstable", unstable)
	}
	fmt.Fprintln(out)
}
