package utils

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

var ErrPasswordMismatch = errors.New("password does not match")

func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// CheckPassword returns ErrPasswordMismatch when password does not match the
// encoded hash, and the decoder error when the hash itself is malformed.
func CheckPassword(encodedHash, password string) error {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return err
	}
	if !ok {
		return ErrPasswordMismatch
	}
	return nil
}
