package casbin

import (
	"context"
	"testing"

	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	policyPath = "testdata/policy.csv"
)

// mockEnforcer is a mock implementation of the casbin.IEnforcer interface used for testing purposes.
type mockEnforcer struct {
	casbin.IEnforcer
	mock.Mock
}

func (e *mockEnforcer) LoadPolicy() error {
	args := e.Called()
	return args.Error(0)
}

func (e *mockEnforcer) Enforce(rvals ...any) (bool, error) {
	args := e.Called(rvals...)
	return args.Bool(0), args.Error(1)
}

func TestSession_HasPermission(t *testing.T) {
	enforcer := new(mockEnforcer)
	enforcer.On("LoadPolicy").Return(nil)
	enforcer.On("Enforce", "alice", "/check/a", "read").Return(true, nil)

	store := &Store{enforcer: enforcer}
	granted, err := store.Session("alice").HasPermission(context.TODO(), "/check/a", "read")

	assert.True(t, granted)
	assert.NoError(t, err)
	enforcer.AssertCalled(t, "Enforce", "alice", "/check/a", "read")
	enforcer.AssertNumberOfCalls(t, "LoadPolicy", 1)
	enforcer.AssertNumberOfCalls(t, "Enforce", 1)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(getConfig(), fileadapter.NewAdapter(policyPath))
	require.NoError(t, err)
	require.NotNil(t, store)

	cases := map[string]struct {
		subject       string
		path          string
		action        string
		expectGranted bool
	}{
		"admin can read under the check root": {
			subject:       "alice",
			path:          "/check/a/b",
			action:        "read",
			expectGranted: true,
		},
		"admin can remove under the check root": {
			subject:       "alice",
			path:          "/check/a",
			action:        "remove",
			expectGranted: true,
		},
		"reader can read": {
			subject:       "bob",
			path:          "/check/a",
			action:        "read",
			expectGranted: true,
		},
		"reader cannot remove": {
			subject:       "bob",
			path:          "/check/a",
			action:        "remove",
			expectGranted: false,
		},
		"unknown subject is denied": {
			subject:       "mallory",
			path:          "/check/a",
			action:        "read",
			expectGranted: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			granted, enforceErr := store.Session(tc.subject).HasPermission(context.TODO(), tc.path, tc.action)
			assert.NoError(t, enforceErr)
			assert.Equal(t, tc.expectGranted, granted)
		})
	}
}

func getConfig() string {
	return `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
`
}
