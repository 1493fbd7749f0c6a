package authn

import (
	"crypto/subtle"
	"errors"
)

// StaticAuthenticator validates credentials against a fixed username to
// password table. It exists for demos and tests; production deployments
// should verify credentials against an identity store holding hashed and
// salted passwords.
type StaticAuthenticator struct {
	users map[string]string
}

func (a *StaticAuthenticator) Authenticate(username, password string) (*User, error) {
	pass, ok := a.users[username]
	if !ok || subtle.ConstantTimeCompare([]byte(pass), []byte(password)) != 1 {
		return nil, errors.New("invalid credentials")
	}

	return &User{Username: username}, nil
}

func NewStaticAuthenticator(users map[string]string) Authenticator {
	return &StaticAuthenticator{users: users}
}
