package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login failure. The message is
// deliberately identical for a wrong email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// VerifyCredentials checks a login attempt against the configured
// administrator email and bcrypt password hash. Both comparisons run in
// constant time and both always run, so timing does not reveal whether the
// email matched.
func VerifyCredentials(adminEmail, adminPasswordHash, email, password string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(adminEmail), []byte(email)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(adminPasswordHash), []byte(password))
	if !emailOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
