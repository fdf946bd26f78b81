// Package render serializes a note.ReleaseNote into an output document.
// Formats are pluggable through a registry; rendering is all-or-nothing
// and byte-identical for identical input on repeated invocation.
package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/raveheart1/relnote/internal/note"
)

// Options controls presentation details shared by the built-in formats.
type Options struct {
	// Plain disables colors and icons in terminal output.
	Plain bool
	// ShowTimestamp includes the generation timestamp in the document.
	// Off by default so repeated runs over the same history stay
	// byte-identical.
	ShowTimestamp bool
	// MaxWidth caps the terminal format's rule lines (0 = auto-detect).
	MaxWidth int
}

// Renderer writes a release note document for one output format.
type Renderer interface {
	Render(n note.ReleaseNote, w io.Writer, opts Options) error
}

// UnsupportedFormatError is returned when a requested format is not
// registered. There is never a silent fallback to another format.
type UnsupportedFormatError struct {
	Format           string
	AvailableFormats []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (available: %s)",
		e.Format, strings.Join(e.AvailableFormats, ", "))
}

// Registry maps format names to renderers.
type Registry struct {
	formats map[string]Renderer
}

// NewRegistry returns a registry with the built-in formats registered:
// markdown, terminal, and json.
func NewRegistry() *Registry {
	r := &Registry{formats: make(map[string]Renderer)}
	r.Register("markdown", markdownRenderer{})
	r.Register("terminal", terminalRenderer{})
	r.Register("json", jsonRenderer{})
	return r
}

// Register adds or replaces a renderer under the given name.
func (r *Registry) Register(name string, renderer Renderer) {
	r.formats[strings.ToLower(name)] = renderer
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes the note in the requested format. The document is built
// in memory first so a failing renderer never emits partial output.
// Returns *UnsupportedFormatError for unregistered formats.
func (r *Registry) Render(n note.ReleaseNote, format string, w io.Writer, opts Options) error {
	renderer, ok := r.formats[strings.ToLower(format)]
	if !ok {
		return &UnsupportedFormatError{Format: format, AvailableFormats: r.Names()}
	}

	var buf bytes.Buffer
	if err := renderer.Render(n, &buf, opts); err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderString is a convenience wrapper that renders to a string.
func (r *Registry) RenderString(n note.ReleaseNote, format string, opts Options) (string, error) {
	var b strings.Builder
	if err := r.Render(n, format, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Generate composes the pure pipeline with format selection: it builds
// the ReleaseNote and renders it in one call, failing before any output
// is produced when the format is unknown.
func (r *Registry) Generate(entries []note.RawEntry, opts note.Options, format string, ropts Options) (note.ReleaseNote, string, error) {
	n := note.Generate(entries, opts)
	text, err := r.RenderString(n, format, ropts)
	if err != nil {
		return note.ReleaseNote{}, "", err
	}
	return n, text, nil
}

// entryRefs formats the identifier trail for an entry: its own id plus
// any identifiers merged into it during deduplication.
func entryRefs(e note.ClassifiedEntry) string {
	refs := append([]string{e.ID}, e.MergedIDs...)
	return strings.Join(refs, ", ")
}

// rangeLine describes the history range, or "" when no range was set.
func rangeLine(n note.ReleaseNote) string {
	switch {
	case n.FromRef != "" && n.ToRef != "":
		return fmt.Sprintf("Changes from %s to %s", n.FromRef, n.ToRef)
	case n.ToRef != "":
		return fmt.Sprintf("Changes up to %s", n.ToRef)
	default:
		return ""
	}
}
