package authn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthenticator_Authenticate(t *testing.T) {
	authenticator := NewStaticAuthenticator(map[string]string{
		"user1@example.com": "password",
	})

	cases := map[string]struct {
		username      string
		password      string
		expectedError bool
	}{
		"valid credentials": {
			username: "user1@example.com",
			password: "password",
		},
		"wrong password": {
			username:      "user1@example.com",
			password:      "wrong",
			expectedError: true,
		},
		"unknown user": {
			username:      "nobody@example.com",
			password:      "password",
			expectedError: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			user, err := authenticator.Authenticate(tc.username, tc.password)

			if tc.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.username, user.Username)
		})
	}
}
