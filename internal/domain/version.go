package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SectionChange records one section-level content change inside a
// version. OldContent is nil when the section was newly added;
// NewContent is empty when the section was removed.
type SectionChange struct {
	SectionID  string  `json:"sectionId"`
	OldContent *string `json:"oldContent,omitempty"`
	NewContent string  `json:"newContent"`
}

// Version is an immutable record of the section-level changes committed
// by one save operation. A masterplan's full history lets any prior
// section state be reconstructed by replaying changes forward.
type Version struct {
	ID           string          `json:"id"`
	MasterplanID string          `json:"masterplanId"`
	Version      string          `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName"`
	Changes      []SectionChange `json:"changes"`
}

// BumpVersion increments the minor component of a dotted major.minor
// version string ("1.0" -> "1.1", "1.9" -> "1.10").
func BumpVersion(version string) (string, error) {
	major, minor, err := splitVersion(version)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", major, minor+1), nil
}

func splitVersion(version string) (major, minor int, err error) {
	parts := strings.SplitN(version, ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed version %q: expected major.minor", version)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed version %q: %w", version, err)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed version %q: %w", version, err)
	}
	return major, minor, nil
}
