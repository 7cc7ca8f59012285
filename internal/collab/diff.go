package collab

import (
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangePreview is a display-oriented view of one section change with a
// line-based diff. The stored version record keeps full old/new content;
// previews are derived on demand and never persisted.
type ChangePreview struct {
	SectionID string `json:"sectionId"`
	Diff      string `json:"diff"`
}

// PreviewChanges renders a line diff for every change in a version.
func PreviewChanges(changes []domain.SectionChange) []ChangePreview {
	previews := make([]ChangePreview, 0, len(changes))
	for _, ch := range changes {
		old := ""
		if ch.OldContent != nil {
			old = *ch.OldContent
		}
		previews = append(previews, ChangePreview{
			SectionID: ch.SectionID,
			Diff:      lineDiff(old, ch.NewContent),
		})
	}
	return previews
}

// lineDiff produces a unified-style line diff: removed lines prefixed
// with "-", added lines with "+", common lines with a space.
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
			out.WriteString(prefix)
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	return out.String()
}
