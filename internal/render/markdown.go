package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/raveheart1/relnote/internal/note"
)

// markdownRenderer produces a GitHub-flavored markdown document with one
// section per change group.
type markdownRenderer struct{}

// markdownEscaper neutralizes characters that would change markdown
// structure inside an entry description. The set is deliberately
// conservative so ordinary prose survives unescaped.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
)

func (markdownRenderer) Render(n note.ReleaseNote, w io.Writer, opts Options) error {
	var b strings.Builder

	b.WriteString("# Release Notes\n")
	if line := rangeLine(n); line != "" {
		b.WriteString("\n_" + line + "_\n")
	}
	if opts.ShowTimestamp && !n.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "\n_Generated at %s_\n", n.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}

	if n.IsEmpty() {
		b.WriteString("\nNo changes.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, group := range n.Groups {
		b.WriteString("\n## " + group.Category.Title() + "\n\n")
		for _, e := range group.Entries {
			b.WriteString(markdownEntry(e))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// markdownEntry formats a single bullet:
//
//	- **scope:** description (id, merged-id) _(unparsed)_
func markdownEntry(e note.ClassifiedEntry) string {
	var b strings.Builder
	b.WriteString("- ")
	if e.Scope != "" {
		b.WriteString("**" + markdownEscaper.Replace(e.Scope) + ":** ")
	}
	b.WriteString(markdownEscaper.Replace(e.Description))
	if e.ID != "" {
		b.WriteString(" (" + markdownEscaper.Replace(entryRefs(e)) + ")")
	}
	if e.Malformed {
		b.WriteString(" _(unparsed)_")
	}
	b.WriteString("\n")
	return b.String()
}
