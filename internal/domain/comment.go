package domain

import (
	"regexp"
	"time"
)

// CommentCategory classifies a comment. The set is closed so switches
// over categories stay exhaustive.
type CommentCategory string

const (
	CategoryClarification CommentCategory = "clarification"
	CategoryRisk          CommentCategory = "risk"
	CategoryModification  CommentCategory = "modification"
	CategoryTechnical     CommentCategory = "technical"
)

// ValidCommentCategory reports whether c is one of the known categories.
func ValidCommentCategory(c CommentCategory) bool {
	switch c {
	case CategoryClarification, CategoryRisk, CategoryModification, CategoryTechnical:
		return true
	}
	return false
}

// Comment is a categorized discussion entry attached to one section of
// one masterplan. Comments are a side channel and are not part of the
// document version history.
type Comment struct {
	ID           string          `json:"id"`
	MasterplanID string          `json:"masterplanId"`
	SectionID    string          `json:"sectionId"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName"`
	Content      string          `json:"content"`
	Category     CommentCategory `json:"category"`
	Mentions     []string        `json:"mentions,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the user names mentioned as @name tokens in
// text, in order of appearance. Duplicates are preserved.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
