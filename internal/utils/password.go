package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an account password at the configured cost.
// The cost comes from config so tests can run with a cheap one.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash. The bcrypt
// comparison is constant-time; any error counts as a mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
