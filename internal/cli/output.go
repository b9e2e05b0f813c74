package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warningMark = color.New(color.FgYellow).SprintFunc()
	errorMark   = color.New(color.FgRed).SprintFunc()
	verboseTag  = color.New(color.FgHiBlack).SprintFunc()
)

// printer writes user-facing messages. Warnings and errors go to stderr.
type printer struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool
}

// printWarning prints a warning message
func (p *printer) printWarning(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.stderr, "%s %s\n", warningMark("⚠"), msg)
}

// printErrorMsg prints an error message regardless of quiet mode
func (p *printer) printErrorMsg(msg string) {
	fmt.Fprintf(p.stderr, "%s %s\n", errorMark("✗"), msg)
}

// printError prints an error
func (p *printer) printError(err error) {
	p.printErrorMsg(fmt.Sprintf("Error: %v", err))
}

// printVerbose prints a verbose message (only if verbose is enabled)
func (p *printer) printVerbose(verbose bool, msg string) {
	if !verbose || p.quiet {
		return
	}
	fmt.Fprintf(p.stdout, "%s %s\n", verboseTag("[VERBOSE]"), msg)
}
