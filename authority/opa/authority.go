// Package opa provides a permission authority evaluating an Open Policy
// Agent Rego policy. The policy receives {subject, path, action} as input
// and the configured query must evaluate to a boolean.
package opa

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/resourcegate/resourcegate/gate"
)

const (
	moduleName = "authority"
)

// Store holds a Rego policy source and the query resolving the grant.
type Store struct {
	policy string
	query  string
}

// NewStore creates a Store from the given Rego policy source and query,
// for example "data.authority.allow".
func NewStore(policy, query string) *Store {
	return &Store{
		policy: policy,
		query:  query,
	}
}

// Session returns an authority bound to the given subject.
func (s *Store) Session(subject string) gate.Authority {
	return &session{store: s, subject: subject}
}

type session struct {
	store   *Store
	subject string
}

// HasPermission evaluates the policy query for (subject, path, action).
func (s *session) HasPermission(ctx context.Context, path, action string) (bool, error) {
	query, err := rego.New(
		rego.Module(moduleName, s.store.policy),
		rego.Query(s.store.query),
	).PrepareForEval(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to prepare query: %w", err)
	}

	result, err := query.Eval(ctx, rego.EvalInput(map[string]any{
		"subject": s.subject,
		"path":    path,
		"action":  action,
	}))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate query: %w", err)
	}

	if len(result) == 0 || len(result[0].Expressions) == 0 {
		return false, errors.New("no evaluation results returned from policy engine")
	}

	granted, ok := result[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("query %q did not evaluate to a boolean", s.store.query)
	}

	return granted, nil
}
