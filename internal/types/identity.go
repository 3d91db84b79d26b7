package types

// Identity is the caller attached to a request. The zero value is anonymous.
type Identity struct {
	UserID   uint
	Username string
	Email    string
	IsAdmin  bool
}

// Anonymous is the identity of a caller without a valid token
var Anonymous = Identity{}

// Authenticated reports whether the identity belongs to a user
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
