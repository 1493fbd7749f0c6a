//go:build !casbin || opa

package main

import (
	"log/slog"

	opaauthority "github.com/resourcegate/resourcegate/authority/opa"
	"github.com/resourcegate/resourcegate/internal/api/rest/handlers"
)

// getPolicy returns a hardcoded Rego policy granting user1 full access to
// the check subtree and everyone read access.
func getPolicy() string {
	return `
package authority

default allow := false

allow if {
    input.subject == "user1@example.com"
    startswith(input.path, "/check")
}

allow if {
    input.action == "read"
    startswith(input.path, "/check")
}
`
}

// newSessionOpener initializes an OPA-backed authority store with the embedded policy.
func newSessionOpener(logger *slog.Logger) (handlers.SessionOpener, error) {
	logger.Info("initializing authority store with OPA")

	return opaauthority.NewStore(getPolicy(), "data.authority.allow"), nil
}
