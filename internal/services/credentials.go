package services

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches hash. A malformed hash is a mismatch.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck spends the same work as a real comparison. Used when the
// username is unknown so both login failures take equally long.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		hashed, err := bcrypt.GenerateFromPassword([]byte("task-rewards-dummy-password"), bcrypt.DefaultCost)
		if err == nil {
			dummyHash = string(hashed)
		}
	})
	VerifyPassword(dummyHash, password)
}
