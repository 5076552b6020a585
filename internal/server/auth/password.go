package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// DummyHash returns a bcrypt hash at the same cost as real ones. Checking a
// password against it takes as long as checking against a stored hash, so a
// login for an unknown email costs the same as one with a wrong password.
func DummyHash() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("taskio: no such user")
	})
	return dummyHash
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword reports whether password matches hash. A mismatch is not an
// error; any other bcrypt failure is.
func CheckPassword(hash []byte, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
