package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_HasPermission(t *testing.T) {
	store := NewStore()
	store.Grant("alice", "/check/a/b", "read", "set-property")
	store.Grant("alice", "/check/a/b", "remove")
	store.Grant("bob", "/check/*/docs", "read")

	cases := map[string]struct {
		subject       string
		path          string
		action        string
		expectGranted bool
	}{
		"exact path and action": {
			subject:       "alice",
			path:          "/check/a/b",
			action:        "read",
			expectGranted: true,
		},
		"merged grant on same path": {
			subject:       "alice",
			path:          "/check/a/b",
			action:        "remove",
			expectGranted: true,
		},
		"action not granted": {
			subject:       "alice",
			path:          "/check/a/b",
			action:        "add-node",
			expectGranted: false,
		},
		"path not covered by any rule": {
			subject:       "alice",
			path:          "/check/a",
			action:        "read",
			expectGranted: false,
		},
		"wildcard segment matches any single segment": {
			subject:       "bob",
			path:          "/check/team1/docs",
			action:        "read",
			expectGranted: true,
		},
		"wildcard does not span multiple segments": {
			subject:       "bob",
			path:          "/check/team1/sub/docs",
			action:        "read",
			expectGranted: false,
		},
		"unknown subject": {
			subject:       "mallory",
			path:          "/check/a/b",
			action:        "read",
			expectGranted: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			granted, err := store.Session(tc.subject).HasPermission(context.TODO(), tc.path, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.expectGranted, granted)
		})
	}
}
