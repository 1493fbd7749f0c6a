// Package memory provides an in-process permission authority backed by a
// per-subject path trie. Rules are granted per (subject, path, actions);
// lookup walks the path segments with exact match first and a "*" wildcard
// segment as fallback. Intended for tests, demos and embedding.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/resourcegate/resourcegate/gate"
)

const (
	// WildcardSegment matches any single path segment in a granted rule.
	WildcardSegment = "*"
)

// node is a trie node keyed by path segment; a terminal node carries the
// set of actions granted at that path.
type node struct {
	children map[string]*node
	actions  map[string]bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// insert merges the given actions into the node reached by segments,
// creating intermediate nodes as needed.
func (n *node) insert(segments []string, actions []string) {
	current := n
	for _, s := range segments {
		if current.children[s] == nil {
			current.children[s] = newNode()
		}
		current = current.children[s]
	}

	if current.actions == nil {
		current.actions = make(map[string]bool)
	}
	for _, a := range actions {
		current.actions[a] = true
	}
}

// search walks segments with wildcard fallback and returns the granted
// action set, or nil when no rule covers the path.
func (n *node) search(segments []string) map[string]bool {
	current := n
	for _, s := range segments {
		if current.children[s] != nil {
			current = current.children[s]
			continue
		}

		if current.children[WildcardSegment] != nil {
			current = current.children[WildcardSegment]
			continue
		}

		return nil
	}

	return current.actions
}

// Store is a thread-safe in-memory rule store.
type Store struct {
	mu       sync.RWMutex
	subjects map[string]*node
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{subjects: make(map[string]*node)}
}

// Grant allows the given actions on path for subject. Granting the same
// path twice merges the action sets. Path segments may be the wildcard "*".
func (s *Store) Grant(subject, path string, actions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root := s.subjects[subject]
	if root == nil {
		root = newNode()
		s.subjects[subject] = root
	}

	root.insert(splitPath(path), actions)
}

// Session returns an authority bound to the given subject.
func (s *Store) Session(subject string) gate.Authority {
	return &session{store: s, subject: subject}
}

type session struct {
	store   *Store
	subject string
}

// HasPermission reports whether a rule grants the action on the path. The
// absence of a rule is an ordinary denial, not an error.
func (s *session) HasPermission(_ context.Context, path, action string) (bool, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	root := s.store.subjects[s.subject]
	if root == nil {
		return false, nil
	}

	actions := root.search(splitPath(path))
	return actions[action], nil
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
