package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAPIKey hashes an API key using bcrypt
func HashAPIKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckAPIKey checks if an API key matches a hash. An empty hash never matches.
func CheckAPIKey(key, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}
