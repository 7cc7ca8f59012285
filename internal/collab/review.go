package collab

import (
	"regexp"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
)

// Suggestion is one proposed section rewrite extracted from a batch AI
// review response. Suggestions live only inside a ReviewSession until
// the user applies a selected subset.
type Suggestion struct {
	SectionID        string `json:"sectionId"`
	SectionTitle     string `json:"sectionTitle"`
	OriginalContent  string `json:"originalContent"`
	SuggestedContent string `json:"suggestedContent"`
	Selected         bool   `json:"selected"`
}

// ReviewSession is the serializable state of one interactive review:
// the parsed suggestions plus the prompt that produced them. It carries
// no hidden state, so the parse / toggle / apply workflow also works
// headlessly.
type ReviewSession struct {
	MasterplanID string       `json:"masterplanId"`
	Prompt       string       `json:"prompt"`
	Suggestions  []Suggestion `json:"suggestions"`
}

// suggestionPattern matches one SECTION_ID/SECTION_TITLE/
// SUGGESTED_CONTENT/END_SECTION block. Field values tolerate
// surrounding whitespace and blocks may appear in any order.
var suggestionPattern = regexp.MustCompile(
	`SECTION_ID:[ \t]*(.+)\r?\n[ \t]*SECTION_TITLE:[ \t]*(.+)\r?\n[ \t]*SUGGESTED_CONTENT:[ \t]*\r?\n((?s:.*?))\r?\nEND_SECTION`)

// ParseSuggestions extracts review suggestions from a raw AI response.
// Suggestions naming a section id absent from the masterplan are
// dropped silently: the generation service may hallucinate ids. A
// response yielding zero suggestions is an empty result, not an error.
// All parsed suggestions start selected.
func ParseSuggestions(response string, mp *domain.Masterplan) []Suggestion {
	var out []Suggestion
	for _, match := range suggestionPattern.FindAllStringSubmatch(response, -1) {
		sectionID := strings.TrimSpace(match[1])
		section := mp.SectionByID(sectionID)
		if section == nil {
			continue
		}
		out = append(out, Suggestion{
			SectionID:        sectionID,
			SectionTitle:     strings.TrimSpace(match[2]),
			OriginalContent:  section.Content,
			SuggestedContent: strings.TrimSpace(match[3]),
			Selected:         true,
		})
	}
	return out
}

// Toggle flips the selected flag of the suggestion for sectionID and
// reports whether a matching suggestion existed.
func (s *ReviewSession) Toggle(sectionID string) bool {
	for i := range s.Suggestions {
		if s.Suggestions[i].SectionID == sectionID {
			s.Suggestions[i].Selected = !s.Suggestions[i].Selected
			return true
		}
	}
	return false
}

// SelectedCount returns how many suggestions are currently selected.
func (s *ReviewSession) SelectedCount() int {
	n := 0
	for _, sg := range s.Suggestions {
		if sg.Selected {
			n++
		}
	}
	return n
}

// ApplySelected returns a copy of sections with every selected
// suggestion's content applied. Unselected suggestions and suggestions
// for unknown sections leave the sections untouched.
func (s *ReviewSession) ApplySelected(sections []domain.Section) []domain.Section {
	updated := make([]domain.Section, len(sections))
	copy(updated, sections)

	index := make(map[string]int, len(updated))
	for i, sec := range updated {
		index[sec.ID] = i
	}

	for _, sg := range s.Suggestions {
		if !sg.Selected {
			continue
		}
		if i, ok := index[sg.SectionID]; ok {
			updated[i].Content = sg.SuggestedContent
		}
	}
	return updated
}
