// Package gate implements a path-rewriting authorization gate: a single
// decision unit that maps a resource path onto a path in a backing
// permission authority and delegates the grant/deny decision to it. An
// external chain evaluator combines the verdicts of one or more such units;
// this package only produces the per-unit verdict.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
)

// DefaultPathPattern matches every resource path.
const DefaultPathPattern = ".*"

// Authority is the backing permission store consulted for the final
// grant/deny decision. Implementations may block on I/O; the gate adds no
// timeout or retry around the query.
type Authority interface {
	// HasPermission reports whether the given action is permitted on the
	// given authority path.
	HasPermission(ctx context.Context, path, action string) (bool, error)
}

// ResourceContext carries the per-call inputs of a decision. It is created
// fresh for every call and discarded once the decision returns.
type ResourceContext struct {
	// RequestID correlates the decision in diagnostic logs.
	RequestID uuid.UUID

	// Path is the absolute, separator-delimited resource path.
	Path string

	// Session is the caller's live connection to the backing authority.
	// A nil session means no authority is bound to this context; the gate
	// then denies (fail closed).
	Session Authority
}

// Config is the immutable construction-time configuration of a gate.
type Config struct {
	// CheckRoot is the authority path against which checks are rooted.
	// Required.
	CheckRoot string

	// Prefix enables deep mapping: when a resource path starts with it,
	// the prefix is substituted by CheckRoot and the remainder is kept.
	// Optional; normalized to end with a path separator.
	Prefix string

	// PathPattern is a regular expression consumed by the upstream chain
	// evaluator to decide whether this unit applies to a resource path at
	// all. The gate itself never evaluates it. Defaults to DefaultPathPattern.
	PathPattern string
}

// Gate is a single decision unit in an access-control chain.
type Gate interface {
	// CanRead decides whether the resource may be read.
	CanRead(ctx context.Context, rc *ResourceContext) GateResult
	// CanCreate decides whether the resource may be created.
	CanCreate(ctx context.Context, rc *ResourceContext) GateResult
	// CanUpdate decides whether the resource may be updated.
	CanUpdate(ctx context.Context, rc *ResourceContext) GateResult
	// CanDelete decides whether the resource may be deleted.
	CanDelete(ctx context.Context, rc *ResourceContext) GateResult
	// CanOrderChildren decides whether the resource's children may be reordered.
	CanOrderChildren(ctx context.Context, rc *ResourceContext) GateResult

	// Decide resolves the verdict for an arbitrary operation. It never
	// returns an error and never panics on authority failure; any failure
	// to consult the authority resolves to Denied.
	Decide(ctx context.Context, op Operation, rc *ResourceContext) GateResult

	// SupportsRestrictions reports whether this gate may restrict the given
	// operation. It always reports true so the chain evaluator never skips
	// this unit as an optimization.
	SupportsRestrictions(op Operation) bool

	// PathPattern exposes the configured path filter for the chain evaluator.
	PathPattern() *regexp.Regexp
}

// accessGate implements Gate. It holds immutable configuration only and is
// safe for concurrent use.
type accessGate struct {
	translator PathTranslator
	pattern    *regexp.Regexp
	logger     *slog.Logger
}

// Option defines configuration options for the gate
type Option func(*accessGate)

// WithLogger sets the logger used for diagnostic records of swallowed
// authority failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *accessGate) {
		g.logger = logger
	}
}

// New creates a Gate from the given configuration. It returns an error when
// CheckRoot is empty or PathPattern does not compile.
func New(cfg Config, options ...Option) (Gate, error) {
	if cfg.CheckRoot == "" {
		return nil, errors.New("check root path cannot be empty")
	}

	patternSrc := cfg.PathPattern
	if patternSrc == "" {
		patternSrc = DefaultPathPattern
	}

	pattern, err := regexp.Compile(patternSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path pattern: %w", err)
	}

	g := &accessGate{
		translator: NewPathTranslator(cfg.CheckRoot, cfg.Prefix),
		pattern:    pattern,
		logger:     slog.Default(),
	}

	for _, option := range options {
		option(g)
	}

	return g, nil
}

func (g *accessGate) CanRead(ctx context.Context, rc *ResourceContext) GateResult {
	return g.Decide(ctx, OperationRead, rc)
}

func (g *accessGate) CanCreate(ctx context.Context, rc *ResourceContext) GateResult {
	return g.Decide(ctx, OperationCreate, rc)
}

func (g *accessGate) CanUpdate(ctx context.Context, rc *ResourceContext) GateResult {
	return g.Decide(ctx, OperationUpdate, rc)
}

func (g *accessGate) CanDelete(ctx context.Context, rc *ResourceContext) GateResult {
	return g.Decide(ctx, OperationDelete, rc)
}

func (g *accessGate) CanOrderChildren(ctx context.Context, rc *ResourceContext) GateResult {
	return g.Decide(ctx, OperationOrderChildren, rc)
}

// Decide maps the operation to its canonical action, rewrites the resource
// path into the authority check path and queries the authority. An absent
// session, an unknown operation and an authority error all resolve to
// Denied; authority errors are recorded at debug level and never propagate,
// so a misbehaving authority cannot crash or stall the chain.
func (g *accessGate) Decide(ctx context.Context, op Operation, rc *ResourceContext) GateResult {
	action := op.Action()
	if action == "" {
		g.logger.DebugContext(ctx, "unknown operation",
			slog.String("operation", string(op)),
			slog.String("request_id", rc.RequestID.String()),
		)
		return Denied
	}

	checkPath := g.translator.Translate(rc.Path)

	if rc.Session == nil {
		g.logger.DebugContext(ctx, "no authority session bound",
			slog.String("path", checkPath),
			slog.String("action", action),
			slog.String("request_id", rc.RequestID.String()),
		)
		return Denied
	}

	granted, err := rc.Session.HasPermission(ctx, checkPath, action)
	if err != nil {
		g.logger.DebugContext(ctx, "could not retrieve permission",
			slog.String("path", checkPath),
			slog.String("action", action),
			slog.String("request_id", rc.RequestID.String()),
			slog.String("error", err.Error()),
		)
		return Denied
	}

	if granted {
		return Granted
	}

	return Denied
}

func (g *accessGate) SupportsRestrictions(Operation) bool {
	return true
}

func (g *accessGate) PathPattern() *regexp.Regexp {
	return g.pattern
}
