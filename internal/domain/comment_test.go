package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two mentions in order", "ping @alice and @bob_2", []string{"alice", "bob_2"}},
		{"no mentions", "nothing to see here", nil},
		{"duplicates preserved", "@sam again @sam", []string{"sam", "sam"}},
		{"mention at start", "@lead please review", []string{"lead"}},
		{"bare at sign ignored", "cost is 5 @ 10 dollars", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.text))
		})
	}
}

func TestValidCommentCategory(t *testing.T) {
	for _, c := range []CommentCategory{CategoryClarification, CategoryRisk, CategoryModification, CategoryTechnical} {
		assert.True(t, ValidCommentCategory(c))
	}
	assert.False(t, ValidCommentCategory("question"))
	assert.False(t, ValidCommentCategory(""))
}
