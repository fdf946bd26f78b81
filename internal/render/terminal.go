package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/raveheart1/relnote/internal/note"
)

// categoryStyle defines the color and icon for a change group heading.
type categoryStyle struct {
	color *color.Color
	icon  string
}

var categoryStyles = map[note.Category]categoryStyle{
	"breaking":      {color: color.New(color.FgRed, color.Bold), icon: "⚠"},
	"feature":       {color: color.New(color.FgGreen), icon: "✦"},
	"fix":           {color: color.New(color.FgYellow), icon: "⚡"},
	"performance":   {color: color.New(color.FgBlue), icon: "▲"},
	"documentation": {color: color.New(color.FgCyan), icon: "✎"},
	"other":         {color: color.New(color.FgWhite), icon: "·"},
}

var defaultStyle = categoryStyle{color: color.New(color.FgWhite), icon: "·"}

// terminalRenderer writes a styled document for interactive use.
// With Options.Plain it degrades to unstyled text.
type terminalRenderer struct{}

func (terminalRenderer) Render(n note.ReleaseNote, w io.Writer, opts Options) error {
	width := resolveWidth(opts.MaxWidth)

	title := "Release Notes"
	if line := rangeLine(n); line != "" {
		title += " — " + line
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", min(width, len([]rune(title)))))

	if opts.ShowTimestamp && !n.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "generated at %s\n", n.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}

	if n.IsEmpty() {
		fmt.Fprintln(w, "\nNo changes.")
		return nil
	}

	for _, group := range n.Groups {
		if err := writeTerminalGroup(group, w, opts); err != nil {
			return err
		}
	}

	return nil
}

func writeTerminalGroup(group note.ChangeGroup, w io.Writer, opts Options) error {
	style, ok := categoryStyles[group.Category.Normalize()]
	if !ok {
		style = defaultStyle
	}

	heading := group.Category.Title()
	if !opts.Plain {
		heading = style.color.Sprint(style.icon + " " + heading)
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", heading); err != nil {
		return err
	}

	dim := color.New(color.Faint).SprintFunc()
	for _, e := range group.Entries {
		line := "  • "
		if e.Scope != "" {
			line += e.Scope + ": "
		}
		line += e.Description
		refs := "(" + entryRefs(e) + ")"
		if e.Malformed {
			refs += " (unparsed)"
		}
		if opts.Plain {
			line += " " + refs
		} else {
			line += " " + dim(refs)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// resolveWidth returns the usable line width: the explicit maximum when
// set, the terminal width when detectable, 80 otherwise.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
