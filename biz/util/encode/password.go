package encode

import (
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input limit; longer passwords are truncated before hashing and verifying.
const MaxPasswordBytes = 72

var cost = bcrypt.DefaultCost

func TruncatePassword(password string) string {
	if len(password) <= MaxPasswordBytes {
		return password
	}
	return password[:MaxPasswordBytes]
}

func EncodePassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TruncatePassword(password)), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(TruncatePassword(password))) == nil
}
