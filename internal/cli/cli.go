// Package cli implements the fitstats command line
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jengzang/fit-session-stats/internal/report"
	"github.com/jengzang/fit-session-stats/internal/service"
)

// Usage is printed when the argument count is wrong
const Usage = "Usage: fitstats <Directory>"

// Run analyzes the directory named by args and writes the text report to stdout.
// args excludes the program name. It returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, svc *service.SessionService) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, Usage)
		return 0
	}

	// A statistics failure still yields the per-session lines
	r, err := svc.AnalyzeDirectory(ctx, args[0])
	if r != nil {
		if werr := report.WriteReport(stdout, r); werr != nil {
			fmt.Fprintf(stderr, "error: %v\n", werr)
			return 1
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
