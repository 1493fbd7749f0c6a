// Package casbin provides a Casbin-backed permission authority. A Store is
// built once from a model and a policy adapter; per-call sessions bind a
// subject, mirroring how a repository session carries the caller's identity.
package casbin

import (
	"context"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/resourcegate/resourcegate/gate"
)

// Store holds a Casbin enforcer over an injected policy adapter.
type Store struct {
	enforcer casbin.IEnforcer
}

// NewStore creates a Store using the provided Casbin model configuration and
// policy repository adapter. It returns an error if model creation or
// enforcer initialization fails.
func NewStore(config string, policyRepo persist.Adapter) (*Store, error) {
	m, err := model.NewModelFromString(config)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, policyRepo)
	if err != nil {
		return nil, err
	}

	return &Store{enforcer: enforcer}, nil
}

// Session returns an authority bound to the given subject.
func (s *Store) Session(subject string) gate.Authority {
	return &session{enforcer: s.enforcer, subject: subject}
}

type session struct {
	enforcer casbin.IEnforcer
	subject  string
}

// HasPermission reloads the latest policy and enforces (subject, path, action).
func (s *session) HasPermission(_ context.Context, path, action string) (bool, error) {
	if err := s.enforcer.LoadPolicy(); err != nil {
		return false, err
	}

	return s.enforcer.Enforce(s.subject, path, action)
}
