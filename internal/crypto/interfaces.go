package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way salted hashes and
// checks candidates against them.
//
// Hashes are self-describing: the algorithm, cost and salt are encoded in the
// returned string, so Verify needs nothing but the stored hash.
type PasswordHasher interface {
	// Hash returns a fresh salted hash of password. Hashing the same password
	// twice yields different strings. Hash does not enforce any password
	// policy; length rules belong to request validation.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed or empty
	// hash never matches and never panics.
	Verify(password, hash string) bool
}
