package render

import (
	"fmt"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
)

// renderJira synthesizes Jira-style epics and stories from the
// masterplan's feature section. This format is generative, not a
// faithful transcription: each bulleted feature becomes an epic with
// template user stories and a Gherkin scenario block, and the output
// does not round-trip back into sections. A masterplan with no feature
// section renders to an empty string; a feature section with no bullets
// still yields the headers and the technical-task checklist.
func renderJira(m *domain.Masterplan) string {
	features, ok := extractFeatures(m)
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Epics and User Stories for %s\n\n", m.Title)

	for _, feature := range features {
		lower := strings.ToLower(feature)

		fmt.Fprintf(&b, "## Epic: %s\n\n", feature)
		b.WriteString("### User Stories:\n\n")
		fmt.Fprintf(&b, "* As a user, I want to %s, so that I can improve my workflow\n", lower)
		fmt.Fprintf(&b, "* As an admin, I want to manage %s, so that I can ensure quality\n\n", lower)

		b.WriteString("### Acceptance Criteria (Example):\n\n")
		fmt.Fprintf(&b, "```gherkin\nFeature: %s\n\n", feature)
		b.WriteString("  Scenario: Basic functionality\n")
		b.WriteString("    Given I am logged in as a user\n")
		fmt.Fprintf(&b, "    When I access the %s feature\n", lower)
		b.WriteString("    Then I should be able to perform basic operations\n\n")
		b.WriteString("  Scenario: Advanced usage\n")
		b.WriteString("    Given I am logged in as an admin\n")
		fmt.Fprintf(&b, "    When I configure the %s feature\n", lower)
		b.WriteString("    Then I should see advanced options available\n```\n\n")
	}

	b.WriteString("## Technical Tasks\n\n")
	fmt.Fprintf(&b, "* Set up project structure for %s\n", m.Title)
	b.WriteString("* Create database schema\n")
	b.WriteString("* Implement authentication\n")
	b.WriteString("* Create API endpoints\n")
	b.WriteString("* Develop frontend UI components\n")
	b.WriteString("* Implement integration tests\n")

	return b.String()
}

// extractFeatures locates the section whose title mentions features or
// functionality and returns its bulleted lines. ok reports whether such
// a section exists at all, so callers can tell a missing section apart
// from one with no bullets.
func extractFeatures(m *domain.Masterplan) (features []string, ok bool) {
	var section *domain.Section
	for i := range m.Sections {
		title := strings.ToLower(m.Sections[i].Title)
		if strings.Contains(title, "feature") || strings.Contains(title, "functionality") {
			section = &m.Sections[i]
			break
		}
	}
	if section == nil {
		return nil, false
	}

	for _, line := range strings.Split(section.Content, "\n") {
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
			continue
		}
		// Strip the single bullet marker and its indentation only;
		// a leading "-" or "*" in the text itself stays.
		feature := strings.TrimSpace(strings.TrimLeft(line[1:], " \t"))
		if feature != "" {
			features = append(features, feature)
		}
	}
	return features, true
}
