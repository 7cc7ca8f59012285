package domain

import "fmt"

// NotFoundError reports a lookup miss for a masterplan, version, comment
// or template. It always carries the requested id.
type NotFoundError struct {
	Kind string // "masterplan", "version", "comment", "template", "section"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// UnsupportedFormatError reports an unknown format name passed to the
// renderer.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Format)
}

// ValidationError reports malformed request input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AuthorizationError reports an action attempted without a resolved user
// identity.
type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized: %s requires a signed-in user", e.Action)
}

// VersionConflictError reports that a compare-and-swap commit found the
// masterplan at a different version than the caller read.
type VersionConflictError struct {
	MasterplanID string
	Expected     string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("masterplan %q changed concurrently (expected version %s)", e.MasterplanID, e.Expected)
}
