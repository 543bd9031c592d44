package main

import (
	"fmt"
	"io"

	"codesniff/internal/driver"
	"codesniff/internal/observ"
)

// printTimings prints the phases of a single file, or totals over many.
func printTimings(out io.Writer, results []driver.FileResult) {
	if out == nil {
		return
	}
	if len(results) == 1 && results[0].Timing != nil {
		fmt.Fprint(out, results[0].Timing.Summary())
		return
	}
	var totals observ.Totals
	for i := range results {
		if t := results[i].Timing; t != nil {
			totals.Add(*t)
		}
	}
	fmt.Fprint(out, totals.Report().Summary())
}
