package models

// Credentials are the optional login details accepted by the entry point.
// No login flow exists yet, so they are only checked for presence.
type Credentials struct {
	Email    string
	Password string
}

// IsSet reports whether both email and password were supplied
func (c Credentials) IsSet() bool {
	return c.Email != "" && c.Password != ""
}
