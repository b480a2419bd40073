package generator

import (
	"fmt"
	"io"
)

// Report summarizes one generation run. The three path lists are disjoint:
// every file the run touched lands in exactly one, relative to the target
// directory. Skipped means the existing content was already byte-identical.
type Report struct {
	Created  []string
	Modified []string
	Skipped  []string
	Warnings []string
}

// Total returns the number of files the run considered.
func (r *Report) Total() int {
	return len(r.Created) + len(r.Modified) + len(r.Skipped)
}

// Write renders the report in the CLI's list format.
func (r *Report) Write(w io.Writer) {
	sections := []struct {
		label string
		paths []string
	}{
		{"Created", r.Created},
		{"Modified", r.Modified},
		{"Skipped", r.Skipped},
	}

	for _, s := range sections {
		if len(s.paths) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", s.label)
		for _, p := range s.paths {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}
