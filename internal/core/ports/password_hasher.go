package ports

// PasswordHasher turns plain passwords into stored hashes and checks them.
type PasswordHasher interface {
	Hash(plain string) (string, error)

	// Compare returns nil when plain matches hash.
	Compare(hash, plain string) error
}
