package gate

import "strings"

// PathTranslator rewrites a resource path into the authority path whose
// permissions govern it. With no prefix configured (or a path outside the
// prefix) every resource maps to the base path, so one authority node
// governs the whole subtree. With a prefix, the prefix is substituted by
// the base path and the remainder is kept, preserving hierarchy: /foo/a/b
// with prefix /foo/ and base /check maps to /check/a/b.
type PathTranslator struct {
	basePath string
	prefix   string
}

// NewPathTranslator builds a translator for the given authority base path
// and optional prefix. A non-empty prefix is normalized to end with exactly
// one path separator.
func NewPathTranslator(basePath, prefix string) PathTranslator {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return PathTranslator{
		basePath: basePath,
		prefix:   prefix,
	}
}

// Translate returns the authority path to check for resourcePath. The
// remainder after the prefix keeps its leading separator; no .. or .
// segments are normalized, the authority interprets the result literally.
func (t PathTranslator) Translate(resourcePath string) string {
	if t.prefix == "" || !strings.HasPrefix(resourcePath, t.prefix) {
		return t.basePath
	}

	return t.basePath + resourcePath[len(t.prefix)-1:]
}
