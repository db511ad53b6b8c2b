package external

// PasswordHasher defines minimal hashing operations so the implementation
// can be swapped without touching the registration flow
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// PasswordPolicy validates password strength at registration
type PasswordPolicy interface {
	// Validate returns ErrWeakPassword (possibly wrapped) when the password
	// fails the policy
	Validate(password string) error
}
