// Package report prints diagnostic.Diagnostic values to a terminal
// using pterm styling, the way cmd/schemac surfaces compiler output to
// a user (SPEC_FULL.md S4.12).
package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"schemac.dev/schemac/diagnostic"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	okStyleBG    = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	okColorFG    = pterm.FgLightGreen
)

// Print writes one banner line per diagnostic to w, in the order
// given. Expect-kind diagnostics are tagged "Expect", Message-kind
// diagnostics are tagged "Error" -- both are reported as errors, since
// the compiler core has no notion of a warning-level diagnostic
// (spec.md S6.3 defines only Message and Expect kinds).
func Print(w io.Writer, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		printOne(w, d)
	}
}

func printOne(w io.Writer, d diagnostic.Diagnostic) {
	tag := "Error"
	if d.Kind == diagnostic.Expect {
		tag = "Expect"
	}
	fmt.Fprint(w, errorStyleBG.Sprint(" "+tag+" "))
	fmt.Fprintln(w, errorColorFG.Sprint(fmt.Sprintf(" %s: %s", d.Pos, d.Message)))
}

// PrintWarning prints a non-fatal message, styled distinctly from a
// compiler diagnostic. Nothing in the compiler core currently produces
// warnings; this exists for cmd/schemac's own operational messages
// (e.g. an import path that resolved but is unused).
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprint(w, warnStyleBG.Sprint(" Warning "))
	fmt.Fprintln(w, warnColorFG.Sprint(" "+msg))
}

// PrintSummary reports how many files compiled and how many
// diagnostics were produced across the whole run.
func PrintSummary(w io.Writer, fileCount, diagCount int) {
	if diagCount == 0 {
		fmt.Fprint(w, okStyleBG.Sprint(" OK "))
		fmt.Fprintln(w, okColorFG.Sprint(fmt.Sprintf(" %d file(s) compiled cleanly", fileCount)))
		return
	}
	fmt.Fprint(w, errorStyleBG.Sprint(" FAIL "))
	fmt.Fprintln(w, errorColorFG.Sprint(fmt.Sprintf(" %d diagnostic(s) across %d file(s)", diagCount, fileCount)))
}
