package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// palette holds the color functions used for error output. fatih/color
// degrades to plain text automatically when stdout is not a terminal or
// NO_COLOR is set.
type palette struct {
	label    func(...interface{}) string
	message  func(...interface{}) string
	category func(...interface{}) string
	fix      func(...interface{}) string
	usage    func(...interface{}) string
}

var colored = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
}

var plain = palette{
	label:    fmt.Sprint,
	message:  fmt.Sprint,
	category: fmt.Sprint,
	fix:      fmt.Sprint,
	usage:    fmt.Sprint,
}

// FormatError formats a CLIError for the terminal, colored when possible.
func FormatError(err *CLIError) string {
	return format(err, colored)
}

// FormatErrorPlain formats a CLIError without any color codes.
func FormatErrorPlain(err *CLIError) string {
	return format(err, plain)
}

func format(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.fix("•"), step)
		}
	}

	return sb.String()
}

// PrintError prints a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
