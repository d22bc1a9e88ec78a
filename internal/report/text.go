package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/roach88/rdftest/internal/testcase"
)

const (
	passMark = "✔"
	failMark = "✖"
)

// WriteText writes a line oriented report of results.
//
// The detailed form lists every test, then the details of each failure.
// Both forms end with the overall pass count and, when tests carry
// specifications, a pass count per specification.
func WriteText(w io.Writer, results []testcase.Result, summaryOnly bool) error {
	var b strings.Builder

	if !summaryOnly {
		var failed []testcase.Result
		for _, r := range results {
			if r.OK {
				fmt.Fprintf(&b, "%s %s (%dms)\n", passMark, r.Name, r.Duration.Milliseconds())
				continue
			}
			failed = append(failed, r)
			fmt.Fprintf(&b, "%s %s\n  %s\n", failMark, r.Name, r.URI)
		}

		for _, r := range failed {
			b.WriteString("\n")
			writeFailure(&b, r)
		}
		b.WriteString("\n")
	}

	passed := countPassed(results)
	mark := passMark
	if passed != len(results) {
		mark = failMark
	}
	fmt.Fprintf(&b, "%s %d / %d tests succeeded!\n", mark, passed, len(results))

	for _, s := range specificationTotals(results) {
		fmt.Fprintf(&b, "  %s: %d / %d\n", s.uri, s.passed, s.total)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFailure(b *strings.Builder, r testcase.Result) {
	fmt.Fprintf(b, "%s %s\n", failMark, r.Name)
	if r.Comment != "" {
		fmt.Fprintf(b, "  Comment: %s\n", oneLine(r.Comment))
	}
	if r.Approval != "" {
		fmt.Fprintf(b, "  Approval: %s\n", r.Approval)
	}
	if r.Detail != "" {
		fmt.Fprintf(b, "  Detail: %s\n", strings.ReplaceAll(strings.TrimRight(r.Detail, "\n"), "\n", "\n    "))
	}
	fmt.Fprintf(b, "  Link: %s\n", r.URI)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countPassed(results []testcase.Result) int {
	n := 0
	for _, r := range results {
		if r.OK {
			n++
		}
	}
	return n
}

type specTotal struct {
	uri    string
	passed int
	total  int
}

func specificationTotals(results []testcase.Result) []specTotal {
	byURI := make(map[string]*specTotal)
	for _, r := range results {
		for _, s := range r.Specifications {
			t, ok := byURI[s]
			if !ok {
				t = &specTotal{uri: s}
				byURI[s] = t
			}
			t.total++
			if r.OK {
				t.passed++
			}
		}
	}

	out := make([]specTotal, 0, len(byURI))
	for _, t := range byURI {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].uri < out[j].uri })
	return out
}
