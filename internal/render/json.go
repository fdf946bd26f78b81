package render

import (
	"encoding/json"
	"io"

	"github.com/raveheart1/relnote/internal/note"
)

// jsonRenderer emits the note as indented JSON for machine consumers.
// Field order is fixed by the document structs below, so output is
// byte-identical across runs.
type jsonRenderer struct{}

type jsonDocument struct {
	FromRef     string      `json:"from_ref,omitempty"`
	ToRef       string      `json:"to_ref,omitempty"`
	GeneratedAt string      `json:"generated_at,omitempty"`
	Groups      []jsonGroup `json:"groups"`
}

type jsonGroup struct {
	Category string      `json:"category"`
	Title    string      `json:"title"`
	Entries  []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Scope       string   `json:"scope,omitempty"`
	Author      string   `json:"author,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
	Breaking    bool     `json:"breaking,omitempty"`
	Malformed   bool     `json:"malformed,omitempty"`
	Confidence  string   `json:"confidence"`
	MergedIDs   []string `json:"merged_ids,omitempty"`
}

func (jsonRenderer) Render(n note.ReleaseNote, w io.Writer, opts Options) error {
	doc := jsonDocument{
		FromRef: n.FromRef,
		ToRef:   n.ToRef,
		Groups:  make([]jsonGroup, 0, len(n.Groups)),
	}
	if opts.ShowTimestamp && !n.GeneratedAt.IsZero() {
		doc.GeneratedAt = n.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}

	for _, group := range n.Groups {
		jg := jsonGroup{
			Category: string(group.Category),
			Title:    group.Category.Title(),
			Entries:  make([]jsonEntry, 0, len(group.Entries)),
		}
		for _, e := range group.Entries {
			je := jsonEntry{
				ID:          e.ID,
				Description: e.Description,
				Scope:       e.Scope,
				Author:      e.Author,
				Breaking:    e.Breaking,
				Malformed:   e.Malformed,
				Confidence:  e.Confidence.String(),
				MergedIDs:   e.MergedIDs,
			}
			if !e.Timestamp.IsZero() {
				je.Timestamp = e.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00")
			}
			jg.Entries = append(jg.Entries, je)
		}
		doc.Groups = append(doc.Groups, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
