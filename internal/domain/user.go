package domain

// User is the canonical local identity. ID is either a federated subject id
// or a locally generated id; it is stable except during an explicit account
// link, which migrates the row (and everything referencing it) to the
// federated id.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

// HasPassword reports whether this account can log in with email+password.
// Federation-only accounts carry an empty hash; that is a valid state, not
// an error.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}
