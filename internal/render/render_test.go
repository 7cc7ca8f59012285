package render

import (
	"strings"
	"testing"
	"time"

	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMasterplan() *domain.Masterplan {
	return &domain.Masterplan{
		ID:             "mp-1",
		ConversationID: "conv-1",
		Title:          "Task Tracker",
		Version:        "1.2",
		UpdatedAt:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Sections: []domain.Section{
			{ID: "section-1", Title: "Project Overview", Level: 1, Content: "A tracker for tasks."},
			{ID: "section-2", Title: "Core Features and Functionality", Level: 2, Content: "- Create tasks\n- Assign owners\nsome prose\n* Track progress"},
			{ID: "section-3", Title: "Next Steps", Level: 2, Content: "Ship it."},
		},
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render(testMasterplan(), domain.Format("docx"))
	var ufe *domain.UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "docx", ufe.Format)
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	mp := testMasterplan()
	before := mp.CloneSections()

	for _, f := range domain.AllFormats {
		_, err := Render(mp, f)
		require.NoError(t, err)
	}

	assert.Equal(t, before, mp.Sections)
}

func TestRenderAll_EmptyFormatList(t *testing.T) {
	out, err := RenderAll(testMasterplan(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := Render(testMasterplan(), domain.FormatMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Task Tracker\n\n*Version 1.2 - Updated: 2026-03-14*\n\n"))
	assert.Contains(t, out, "## Table of Contents\n\n")
	assert.Contains(t, out, "- [Project Overview](#project-overview)\n")
	assert.Contains(t, out, "  - [Core Features and Functionality](#core-features-and-functionality)\n")
	assert.Contains(t, out, "# Project Overview\n\nA tracker for tasks.\n\n")
	assert.Contains(t, out, "## Next Steps\n\nShip it.\n\n")
}

func TestRenderMarkdown_RoundTripTitlesAndLevels(t *testing.T) {
	mp := testMasterplan()
	out, err := Render(mp, domain.FormatMarkdown)
	require.NoError(t, err)

	parsed := sections.Parse(out)
	// The rendered document adds its own title heading and a table of
	// contents heading before the original sections.
	require.Len(t, parsed, len(mp.Sections)+2)
	assert.Equal(t, mp.Title, parsed[0].Title)
	assert.Equal(t, "Table of Contents", parsed[1].Title)

	for i, s := range mp.Sections {
		assert.Equal(t, s.Title, parsed[i+2].Title)
		assert.Equal(t, s.Level, parsed[i+2].Level)
		// The renderer separates each heading from its body with a
		// blank line, which re-parses as a leading newline.
		assert.Equal(t, "\n"+s.Content, parsed[i+2].Content)
	}
}

func TestRenderPDF(t *testing.T) {
	out, err := Render(testMasterplan(), domain.FormatPDF)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Task Tracker</title>")
	assert.Contains(t, out, "Version 1.2 - Updated: 2026-03-14")
	assert.Contains(t, out, `<a href="#section-1">Project Overview</a>`)
	// Sections shift down one level because h1 holds the document title.
	assert.Contains(t, out, `<h2 id="section-1" class="section-title">Project Overview</h2>`)
	assert.Contains(t, out, `<h3 id="section-3" class="section-title">Next Steps</h3>`)
	// Newlines in content become line breaks.
	assert.Contains(t, out, "- Create tasks<br>- Assign owners<br>some prose<br>* Track progress")
}

func TestRenderConfluence(t *testing.T) {
	out, err := Render(testMasterplan(), domain.FormatConfluence)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "h1. Task Tracker\n\n_Version 1.2 - Updated: 2026-03-14_\n\n{toc}\n\n"))
	assert.Contains(t, out, "h2. Project Overview\n\nA tracker for tasks.\n\n")
	assert.Contains(t, out, "h3. Next Steps\n\nShip it.\n\n")
	// Section bodies are carried verbatim.
	assert.Contains(t, out, "- Create tasks\n- Assign owners\nsome prose\n* Track progress")
}

func TestRenderJira(t *testing.T) {
	out, err := Render(testMasterplan(), domain.FormatJira)
	require.NoError(t, err)

	assert.Contains(t, out, "# Epics and User Stories for Task Tracker")
	assert.Contains(t, out, "## Epic: Create tasks")
	assert.Contains(t, out, "## Epic: Assign owners")
	assert.Contains(t, out, "## Epic: Track progress")
	assert.NotContains(t, out, "some prose")
	assert.Contains(t, out, "* As a user, I want to create tasks, so that I can improve my workflow")
	assert.Contains(t, out, "Feature: Create tasks\n")
	assert.Contains(t, out, "Scenario: Basic functionality")
	assert.Contains(t, out, "## Technical Tasks")
	assert.Contains(t, out, "* Set up project structure for Task Tracker")
}

func TestRenderJira_NoFeatureSection(t *testing.T) {
	mp := &domain.Masterplan{
		Title:     "Bare Plan",
		Version:   "1.0",
		UpdatedAt: time.Now().UTC(),
		Sections: []domain.Section{
			{ID: "section-1", Title: "Overview", Level: 1, Content: "nothing bulleted"},
		},
	}

	out, err := Render(mp, domain.FormatJira)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderJira_FeatureSectionWithoutBullets(t *testing.T) {
	mp := &domain.Masterplan{
		Title:     "Sparse Plan",
		Version:   "1.0",
		UpdatedAt: time.Now().UTC(),
		Sections: []domain.Section{
			{ID: "section-1", Title: "Core Features", Level: 2, Content: "prose only, nothing bulleted"},
		},
	}

	out, err := Render(mp, domain.FormatJira)
	require.NoError(t, err)
	assert.Contains(t, out, "# Epics and User Stories for Sparse Plan")
	assert.Contains(t, out, "## Technical Tasks")
	assert.NotContains(t, out, "## Epic:")
}

func TestRenderJira_SingleBulletMarkerStripped(t *testing.T) {
	mp := &domain.Masterplan{
		Title:     "Flags",
		Version:   "1.0",
		UpdatedAt: time.Now().UTC(),
		Sections: []domain.Section{
			{ID: "section-1", Title: "Features", Level: 2, Content: "- --force flag\n* *bold* search"},
		},
	}

	out, err := Render(mp, domain.FormatJira)
	require.NoError(t, err)
	assert.Contains(t, out, "## Epic: --force flag")
	assert.Contains(t, out, "## Epic: *bold* search")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "core-features-and-functionality", slugify("Core Features and Functionality"))
	assert.Equal(t, "next-steps", slugify("Next  Steps"))
	assert.Equal(t, "overview", slugify("Overview"))
}
