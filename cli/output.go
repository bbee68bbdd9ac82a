// ABOUTME: Shared output helpers for CLI commands
// ABOUTME: Tabular writers and small formatting helpers
package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// stdout is where commands print; tests replace it.
var stdout io.Writer = os.Stdout

func newTable(headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	line, rule := "", ""
	for i, h := range headers {
		if i > 0 {
			line += "\t"
			rule += "\t"
		}
		line += h
		for range h {
			rule += "-"
		}
	}
	_, _ = fmt.Fprintln(w, line)
	_, _ = fmt.Fprintln(w, rule)
	return w
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// requireID returns the single positional id argument.
func requireID(args []string, what string) (string, error) {
	if len(args) < 1 || args[0] == "" {
		return "", fmt.Errorf("%s ID required", what)
	}
	return args[0], nil
}
