package domain

// User is the acting identity supplied by the external identity
// collaborator. The core trusts it verbatim and performs no
// authentication of its own.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Resolved reports whether the identity collaborator supplied a user.
func (u User) Resolved() bool {
	return u.ID != ""
}
