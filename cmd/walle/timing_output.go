package main

import (
	"fmt"
	"io"
	"strings"

	"walle/internal/observ"
)

// printTimings writes one line: "<label>: parse 0.3 ms, sema 0.1 ms (total 0.4 ms)".
func printTimings(out io.Writer, label string, report observ.Report) {
	if len(report.Phases) == 0 {
		return
	}
	parts := make([]string, 0, len(report.Phases))
	for _, p := range report.Phases {
		part := fmt.Sprintf("%s %.1f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			part += " [" + p.Note + "]"
		}
		parts = append(parts, part)
	}
	fmt.Fprintf(out, "%s: %s (total %.1f ms)\n", label, strings.Join(parts, ", "), report.TotalMS)
}
